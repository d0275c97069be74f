package veilith

// Create builds a container holding the given payloads. Up to SlotCount
// entries are supported; every remaining slot is filled with uniform
// random bytes so an observer cannot count the real payloads. Salt slots
// and block slots are assigned independently and uniformly at random.
//
// No partial containers are returned: any failure yields a nil result.
func (v *Vault) Create(entries []Entry) ([]byte, error) {
	if len(entries) > SlotCount {
		return nil, ErrTooManyEntries
	}
	for i, e := range entries {
		if len(e.Message) > maxMessageSize {
			return nil, NewValidationError("message", i, ErrOversizedMessage.Error())
		}
	}

	deviceKey, err := v.deviceKey()
	if err != nil {
		return nil, err
	}

	// Seal each payload under a key derived from a fresh salt.
	salts := make([][]byte, 0, SlotCount)
	frames := make([][]byte, len(entries))
	for i, e := range entries {
		salt, err := randomBytes(SaltSize)
		if err != nil {
			return nil, NewCryptoError("seal", err)
		}

		password := []byte(e.Password)
		message := []byte(e.Message)
		key := deriveKey(password, salt, v.kdf)
		frame, err := sealBlock(key, message)
		wipe(key)
		wipe(password)
		wipe(message)
		if err != nil {
			return nil, err
		}

		salts = append(salts, salt)
		frames[i] = frame
	}

	// Decoy salts are indistinguishable from real ones.
	for len(salts) < SlotCount {
		salt, err := randomBytes(SaltSize)
		if err != nil {
			return nil, NewCryptoError("seal", err)
		}
		salts = append(salts, salt)
	}

	if err := shuffleSlices(salts); err != nil {
		return nil, NewCryptoError("seal", err)
	}

	saltTable := make([]byte, 0, SaltTableSize)
	for _, salt := range salts {
		saltTable = append(saltTable, salt...)
	}

	// The block table starts fully random; occupied frames land on
	// uniformly chosen unused slots, independent of salt positions.
	blockTable, err := randomBytes(BlockTableSize)
	if err != nil {
		return nil, NewCryptoError("seal", err)
	}

	used := make([]bool, SlotCount)
	for _, frame := range frames {
		var slot int
		for {
			slot, err = uniformInt(SlotCount)
			if err != nil {
				return nil, NewCryptoError("seal", err)
			}
			if !used[slot] {
				break
			}
		}
		used[slot] = true
		copy(blockTable[slot*BlockSize:], frame)
	}

	body := make([]byte, 0, SaltTableSize+BlockTableSize)
	body = append(body, saltTable...)
	body = append(body, blockTable...)
	tag := computeDeviceTag(deviceKey, body)

	v.debug.Debug().
		Str("op", "create").
		Int("entries", len(entries)).
		Int("size", ContainerSize).
		Msg("container assembled")

	return append(tag, body...), nil
}
