package veilith

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"
)

// Block frame layout: nonce(24) ‖ ciphertext(n) ‖ tag(16) ‖ zeros(8152-n).
//
// The zero tail means the frame extent must be recoverable before the AEAD
// open: the extent is found by trimming the trailing zero run. To keep that
// rule exact, sealBlock redraws the nonce until the sealed frame does not
// itself end in a zero byte, so the trimmed extent is always the true one.

// newAEAD creates an XChaCha20-Poly1305 AEAD for a derived key
func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, NewValidationError("key", len(key), "derived key must be 32 bytes")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, NewCryptoError("seal", err)
	}
	return aead, nil
}

// sealBlock encrypts message under key and returns a full zero-padded
// block slot holding the sealed frame at byte 0.
func sealBlock(key, message []byte) ([]byte, error) {
	if len(message) > maxMessageSize {
		return nil, ErrOversizedMessage
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	block := make([]byte, BlockSize)
	for {
		nonce, err := randomBytes(NonceSize)
		if err != nil {
			return nil, NewCryptoError("seal", err)
		}

		frame := aead.Seal(nonce, nonce, message, nil)
		if frame[len(frame)-1] != 0 {
			copy(block, frame)
			return block, nil
		}
		// frame ends in a zero byte and would be mis-trimmed on open
		wipe(frame)
	}
}

// openBlock attempts to open the frame in a block slot with key. It
// returns (plaintext, true) on success and (nil, false) for a wrong key,
// a decoy slot, or anything structurally unsound. A decoy and a failed
// open are indistinguishable by design.
func openBlock(aead cipher.AEAD, block []byte) ([]byte, bool) {
	if len(block) != BlockSize {
		return nil, false
	}

	end := BlockSize
	for end > NonceSize+TagSize && block[end-1] == 0 {
		end--
	}

	plaintext, err := aead.Open(nil, block[:NonceSize], block[NonceSize:end], nil)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}
