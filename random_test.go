package veilith

import (
	"bytes"
	"testing"
)

func TestRandomBytes(t *testing.T) {
	a, err := randomBytes(32)
	if err != nil {
		t.Fatalf("randomBytes failed: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("randomBytes(32) returned %d bytes", len(a))
	}

	b, err := randomBytes(32)
	if err != nil {
		t.Fatalf("randomBytes failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two random draws returned identical bytes")
	}
}

func TestUniformInt(t *testing.T) {
	if _, err := uniformInt(0); err == nil {
		t.Error("uniformInt(0) should fail")
	}
	if _, err := uniformInt(-5); err == nil {
		t.Error("uniformInt(-5) should fail")
	}

	if v, err := uniformInt(1); err != nil || v != 0 {
		t.Errorf("uniformInt(1) = (%d, %v), want (0, nil)", v, err)
	}

	// Every draw stays within bounds, and with 64 possible values a few
	// hundred draws should hit more than one of them.
	seen := make(map[int]bool)
	for i := 0; i < 512; i++ {
		v, err := uniformInt(SlotCount)
		if err != nil {
			t.Fatalf("uniformInt failed: %v", err)
		}
		if v < 0 || v >= SlotCount {
			t.Fatalf("uniformInt(%d) = %d, out of range", SlotCount, v)
		}
		seen[v] = true
	}
	if len(seen) < 2 {
		t.Error("uniformInt returned a single value across 512 draws")
	}
}

func TestShuffleSlices(t *testing.T) {
	original := make([][]byte, SlotCount)
	shuffled := make([][]byte, SlotCount)
	for i := range original {
		original[i] = []byte{byte(i)}
		shuffled[i] = original[i]
	}

	if err := shuffleSlices(shuffled); err != nil {
		t.Fatalf("shuffleSlices failed: %v", err)
	}

	// Same multiset of elements
	seen := make(map[byte]int)
	for _, s := range shuffled {
		seen[s[0]]++
	}
	for i := 0; i < SlotCount; i++ {
		if seen[byte(i)] != 1 {
			t.Fatalf("element %d appears %d times after shuffle", i, seen[byte(i)])
		}
	}
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive material")
	wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %x", i, v)
		}
	}

	wipe(nil) // must not panic
}
