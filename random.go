package veilith

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"runtime"
)

// randomBytes returns n bytes from the system CSPRNG
func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// uniformInt returns a uniformly distributed integer in [0, n) using
// rejection sampling, so no value is favored by modulo bias.
func uniformInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("uniformInt: bound must be positive, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}

	// Largest multiple of n not above 2^32 (the number of uint32 values);
	// values at or above it are rejected and redrawn.
	limit := (uint64(1) << 32) / uint64(n) * uint64(n)

	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("failed to read random bytes: %w", err)
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}

// shuffleSlices performs a uniform Fisher-Yates shuffle of s in place,
// drawing indices from the CSPRNG.
func shuffleSlices(s [][]byte) error {
	for i := len(s) - 1; i > 0; i-- {
		j, err := uniformInt(i + 1)
		if err != nil {
			return err
		}
		s[i], s[j] = s[j], s[i]
	}
	return nil
}

// wipe zeroes b. The KeepAlive prevents the store loop from being elided
// when b is dead after the call.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
