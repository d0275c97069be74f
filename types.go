package veilith

import (
	"errors"

	"github.com/rs/zerolog"
)

// Container geometry. All sizes are fixed; a container is always exactly
// ContainerSize bytes regardless of how many payloads it holds.
const (
	// BlockSize is the size of each ciphertext slot in the block table
	BlockSize = 8192

	// SaltSize is the size of each salt in the salt table
	SaltSize = 16

	// SlotCount is the number of salt slots and the number of block slots
	SlotCount = 64

	// NonceSize is the XChaCha20-Poly1305 nonce size
	NonceSize = 24

	// TagSize is the Poly1305 authentication tag size
	TagSize = 16

	// KeySize is the size of derived payload keys
	KeySize = 32

	// DeviceTagSize is the size of the device integrity MAC
	DeviceTagSize = 32

	// DeviceKeySize is the required size of the device secret
	DeviceKeySize = 32

	// SaltTableSize is the total size of the salt table
	SaltTableSize = SlotCount * SaltSize

	// BlockTableSize is the total size of the block table
	BlockTableSize = SlotCount * BlockSize

	// ContainerSize is the exact size of a serialized container:
	// DeviceTag(32) + SaltTable(64*16) + BlockTable(64*8192) = 525344
	ContainerSize = DeviceTagSize + SaltTableSize + BlockTableSize

	// maxMessageSize is the largest plaintext a single block can hold
	maxMessageSize = BlockSize - NonceSize - TagSize
)

// MaxMessageSize returns the largest message (in bytes) that fits in a
// single block slot: BlockSize minus the AEAD nonce and tag (8152).
func MaxMessageSize() int {
	return maxMessageSize
}

// DecryptStatus is the outcome of a Decrypt sweep
type DecryptStatus uint8

const (
	// StatusValid means exactly one (salt, block) pair decrypted
	StatusValid DecryptStatus = iota
	// StatusInvalidDevice means the device tag does not match the current device secret
	StatusInvalidDevice
	// StatusInvalidPassword means no (salt, block) pair decrypted
	StatusInvalidPassword
	// StatusCorrupted means the container length or structure is invalid
	StatusCorrupted
)

// String returns the string representation of the decrypt status
func (s DecryptStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalidDevice:
		return "invalid-device"
	case StatusInvalidPassword:
		return "invalid-password"
	case StatusCorrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// Entry is one payload handed to Create: a password and the message it
// unlocks. All remaining slots become indistinguishable decoys.
type Entry struct {
	Password string
	Message  string
}

// DecryptResult is the outcome of a full Decrypt sweep. SaltIndex and
// BlockIndex identify the pair that opened; they are only meaningful when
// Status is StatusValid, and are the coordinates Update expects.
type DecryptResult struct {
	Status     DecryptStatus
	SaltIndex  int
	BlockIndex int
	Message    string
}

// Argon2Params contains parameters for Argon2id key derivation. Every
// derivation against one container must use identical parameters, otherwise
// its payloads become unreachable.
type Argon2Params struct {
	Time    uint32 // Number of passes (time parameter)
	Memory  uint32 // Memory in KiB (e.g., 64*1024 for 64MB)
	Threads uint8  // Degree of parallelism
}

// DefaultArgon2Params returns the interactive-strength defaults used for
// containers in the wild: 2 passes over 64 MB with a single lane.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    2,
		Memory:  64 * 1024,
		Threads: 1,
	}
}

// withDefaults fills zero-valued fields with the interactive defaults
func (p Argon2Params) withDefaults() Argon2Params {
	d := DefaultArgon2Params()
	if p.Time == 0 {
		p.Time = d.Time
	}
	if p.Memory == 0 {
		p.Memory = d.Memory
	}
	if p.Threads == 0 {
		p.Threads = d.Threads
	}
	return p
}

// Validate checks if the parameters are usable
func (p Argon2Params) Validate() error {
	if p.Time == 0 {
		return NewValidationError("time", p.Time, "argon2 time parameter cannot be zero")
	}
	if p.Memory < 8 {
		return NewValidationError("memory", p.Memory, "argon2 memory must be at least 8 KiB")
	}
	if p.Threads == 0 {
		return NewValidationError("threads", p.Threads, "argon2 parallelism cannot be zero")
	}
	return nil
}

// DeviceKeyProvider supplies the stable per-device secret used to key the
// container's integrity MAC. The core treats the secret as opaque; its
// persistence is the provider's responsibility.
type DeviceKeyProvider interface {
	// IntegrityKey returns the 32-byte device secret
	IntegrityKey() ([]byte, error)
}

// Config contains configuration for a Vault
type Config struct {
	// Provider supplies the device secret for integrity tags
	Provider DeviceKeyProvider

	// KDF parameters for password key derivation. Zero-valued fields
	// default to interactive limits.
	KDF Argon2Params

	// Debug is an optional logger for non-secret diagnostics. If nil,
	// debug output is disabled. Passwords, keys, salts, and plaintext
	// must never reach this logger.
	Debug *zerolog.Logger
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if c.Provider == nil {
		return errors.New("device key provider cannot be nil")
	}
	return c.KDF.withDefaults().Validate()
}
