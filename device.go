package veilith

import (
	"crypto/hmac"
	"crypto/sha256"
)

// computeDeviceTag MACs the salt and block tables under the device secret.
// HMAC-SHA256 yields the 32-byte tag the layout reserves.
func computeDeviceTag(deviceKey, body []byte) []byte {
	mac := hmac.New(sha256.New, deviceKey)
	mac.Write(body)
	return mac.Sum(nil)
}

// verifyDeviceTag checks the container's device tag in constant time
func verifyDeviceTag(deviceKey []byte, view *containerView) bool {
	expected := computeDeviceTag(deviceKey, view.body())
	return hmac.Equal(view.deviceTag, expected)
}

// deviceKey fetches and validates the device secret from the provider
func (v *Vault) deviceKey() ([]byte, error) {
	key, err := v.provider.IntegrityKey()
	if err != nil {
		return nil, NewProviderError(err)
	}
	if len(key) != DeviceKeySize {
		return nil, NewProviderError(ErrInvalidDeviceKey)
	}
	return key, nil
}

// VerifyDevice reports whether the container's device tag matches the
// current device secret. The reason string is empty when valid.
func (v *Vault) VerifyDevice(container []byte) (bool, string) {
	view, err := splitContainer(container)
	if err != nil {
		return false, "container length invalid"
	}

	key, err := v.deviceKey()
	if err != nil {
		return false, "device key provider unavailable"
	}

	if !verifyDeviceTag(key, view) {
		return false, "device tag mismatch"
	}
	return true, ""
}

// Reseal recomputes the device tag with the current device secret, leaving
// the salt and block tables untouched. It is used when importing a
// container created on another device, and needs no password.
func (v *Vault) Reseal(container []byte) ([]byte, error) {
	view, err := splitContainer(container)
	if err != nil {
		return nil, err
	}

	key, err := v.deviceKey()
	if err != nil {
		return nil, err
	}

	tag := computeDeviceTag(key, view.body())
	out := assembleContainer(tag, view.saltTable, view.blockTable)

	v.debug.Debug().Str("op", "reseal").Msg("device tag recomputed")
	return out, nil
}
