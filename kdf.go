package veilith

import (
	"golang.org/x/crypto/argon2"
)

// deriveKey derives a payload key from a password and a salt slot using
// Argon2id. Every derivation uses the same parameters, so the per-attempt
// cost of the Decrypt sweep is identical whether or not a slot is occupied.
func deriveKey(password []byte, salt []byte, params Argon2Params) []byte {
	p := params.withDefaults()
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, KeySize)
}
