package veilith

// Decrypt sweeps the entire container for the given password. Every one of
// the 64 salts is run through the KDF and every derived key is tried
// against every one of the 64 block slots, whether or not a match has
// already been found. The full 64x64 sweep is what keeps the work profile
// independent of where (and whether) a real payload exists; do not
// short-circuit it.
//
// ignoreDeviceIntegrity skips the device tag check, allowing recovery from
// containers created on another device.
func (v *Vault) Decrypt(container []byte, password string, ignoreDeviceIntegrity bool) (DecryptResult, error) {
	view, err := splitContainer(container)
	if err != nil {
		return DecryptResult{Status: StatusCorrupted}, nil
	}

	if !ignoreDeviceIntegrity {
		deviceKey, err := v.deviceKey()
		if err != nil {
			return DecryptResult{}, err
		}
		if !verifyDeviceTag(deviceKey, view) {
			return DecryptResult{Status: StatusInvalidDevice}, nil
		}
	}

	pw := []byte(password)
	defer wipe(pw)

	// Derive all keys up front, then attempt every (salt, block) pair.
	keys := make([][]byte, SlotCount)
	for i := 0; i < SlotCount; i++ {
		keys[i] = deriveKey(pw, view.salt(i), v.kdf)
	}
	defer func() {
		for _, k := range keys {
			wipe(k)
		}
	}()

	result := DecryptResult{Status: StatusInvalidPassword}
	for i := 0; i < SlotCount; i++ {
		aead, err := newAEAD(keys[i])
		if err != nil {
			return DecryptResult{}, err
		}
		for j := 0; j < SlotCount; j++ {
			plaintext, ok := openBlock(aead, view.block(j))
			if ok {
				// An honest container opens at most one pair, so
				// retaining the latest success is sound. The sweep
				// continues regardless.
				result = DecryptResult{
					Status:     StatusValid,
					SaltIndex:  i,
					BlockIndex: j,
					Message:    string(plaintext),
				}
				wipe(plaintext)
			}
		}
	}

	v.debug.Debug().
		Str("op", "decrypt").
		Str("status", result.Status.String()).
		Msg("sweep complete")

	return result, nil
}
