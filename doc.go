// Package veilith implements a deniable encrypted file container: a
// fixed-size blob holding multiple independently-decryptable payloads,
// where an observer of the ciphertext cannot tell which payloads are
// genuine or how many exist.
//
// # Overview
//
// A container is always exactly 525344 bytes: a 32-byte device integrity
// tag, a table of 64 salts, and a table of 64 block slots of 8192 bytes
// each. Real payloads are sealed with XChaCha20-Poly1305 under keys
// derived from their passwords with Argon2id; every remaining slot is
// filled with uniform random bytes. Salt positions and block positions
// are assigned independently and uniformly at random, so nothing about
// the layout correlates a salt with its block.
//
// # Deniability Model
//
// Decrypt derives a key from every salt and attempts to open every block
// slot with every key, 64x64 attempts in all, and never stops early. The
// cost of a lookup is therefore identical whether the password is right,
// wrong, or aimed at a decoy, and an adversary timing the operation
// learns nothing about where - or whether - a real payload exists.
//
// # Device Binding
//
// The leading tag is an HMAC-SHA256 of the salt and block tables under a
// 32-byte device secret obtained from a DeviceKeyProvider. A container
// copied to another machine fails verification until it is re-sealed
// there with Reseal, which rewrites only the tag.
//
// # Basic Usage
//
//	provider, _ := veilith.NewStaticDeviceKeyProvider(secret)
//	vault, err := veilith.New(&veilith.Config{Provider: provider})
//	if err != nil {
//	    panic(err)
//	}
//
//	container, _ := vault.Create([]veilith.Entry{
//	    {Password: "decoy", Message: "nothing to see"},
//	    {Password: "real", Message: "the actual secret"},
//	})
//
//	res, _ := vault.Decrypt(container, "real", false)
//	if res.Status == veilith.StatusValid {
//	    fmt.Println(res.Message)
//	}
//
// # Security Considerations
//
// Protected against:
//   - Distinguishing real payloads from decoys in ciphertext
//   - Counting the payloads a container holds
//   - Timing the lookup to locate a payload
//   - Offline container tampering (per-payload AEAD, device MAC)
//
// Not protected against:
//   - Memory dumps while plaintext is held by the caller
//   - A compromised device key provider
//   - Coercion of someone who knows how many payloads are real
//
// Companion package stego embeds containers (or any byte string) into the
// least significant bits of RGBA rasters.
package veilith
