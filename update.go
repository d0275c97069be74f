package veilith

// Update re-encrypts a single payload in place. The (saltIndex, blockIndex)
// pair must come from a prior Decrypt of the same container. The slot gets
// a fresh salt and a fresh key; no other slot is touched, the table is not
// reshuffled, and the container length is unchanged.
//
// allowDeviceChange skips the device tag check so a foreign container can
// be updated; the returned container is always sealed to the current
// device.
func (v *Vault) Update(container []byte, password string, saltIndex, blockIndex int, newMessage string, allowDeviceChange bool) ([]byte, error) {
	view, err := splitContainer(container)
	if err != nil {
		return nil, err
	}
	if saltIndex < 0 || saltIndex >= SlotCount {
		return nil, NewValidationError("saltIndex", saltIndex, ErrInvalidSlotIndex.Error())
	}
	if blockIndex < 0 || blockIndex >= SlotCount {
		return nil, NewValidationError("blockIndex", blockIndex, ErrInvalidSlotIndex.Error())
	}
	if len(newMessage) > maxMessageSize {
		return nil, NewValidationError("newMessage", len(newMessage), ErrOversizedMessage.Error())
	}

	deviceKey, err := v.deviceKey()
	if err != nil {
		return nil, err
	}
	if !allowDeviceChange && !verifyDeviceTag(deviceKey, view) {
		return nil, ErrDeviceMismatch
	}

	salt, err := randomBytes(SaltSize)
	if err != nil {
		return nil, NewCryptoError("seal", err)
	}

	pw := []byte(password)
	message := []byte(newMessage)
	key := deriveKey(pw, salt, v.kdf)
	frame, err := sealBlock(key, message)
	wipe(key)
	wipe(pw)
	wipe(message)
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, SaltTableSize+BlockTableSize)
	body = append(body, view.saltTable...)
	body = append(body, view.blockTable...)
	copy(body[saltIndex*SaltSize:], salt)
	copy(body[SaltTableSize+blockIndex*BlockSize:], frame)

	tag := computeDeviceTag(deviceKey, body)

	v.debug.Debug().
		Str("op", "update").
		Int("saltIndex", saltIndex).
		Int("blockIndex", blockIndex).
		Msg("slot rewritten")

	return append(tag, body...), nil
}
