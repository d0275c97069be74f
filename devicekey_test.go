package veilith

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/absfs/memfs"
	"github.com/google/uuid"
)

func TestStaticDeviceKeyProvider(t *testing.T) {
	secret := bytes.Repeat([]byte{0x5A}, DeviceKeySize)

	provider, err := NewStaticDeviceKeyProvider(secret)
	if err != nil {
		t.Fatalf("NewStaticDeviceKeyProvider failed: %v", err)
	}

	key, err := provider.IntegrityKey()
	if err != nil {
		t.Fatalf("IntegrityKey failed: %v", err)
	}
	if !bytes.Equal(key, secret) {
		t.Error("provider returned a different key")
	}

	// The provider holds its own copy; mutating either side is isolated
	key[0] = 0x00
	again, _ := provider.IntegrityKey()
	if again[0] != 0x5A {
		t.Error("caller mutation leaked into the provider")
	}

	if _, err := NewStaticDeviceKeyProvider(make([]byte, 16)); err != ErrInvalidDeviceKey {
		t.Errorf("short key error = %v, want ErrInvalidDeviceKey", err)
	}
}

func TestEnvDeviceKeyProvider(t *testing.T) {
	const envVar = "VEILITH_TEST_DEVICE_KEY"

	provider := NewEnvDeviceKeyProvider(envVar)
	if _, err := provider.IntegrityKey(); err == nil {
		t.Error("IntegrityKey succeeded with the variable unset")
	}

	secret := bytes.Repeat([]byte{0xC3}, DeviceKeySize)
	t.Setenv(envVar, hex.EncodeToString(secret))

	key, err := provider.IntegrityKey()
	if err != nil {
		t.Fatalf("IntegrityKey failed: %v", err)
	}
	if !bytes.Equal(key, secret) {
		t.Error("decoded key mismatch")
	}

	t.Setenv(envVar, "not-hex")
	if _, err := provider.IntegrityKey(); err == nil {
		t.Error("IntegrityKey accepted invalid hex")
	}

	t.Setenv(envVar, "abcd")
	if _, err := provider.IntegrityKey(); err == nil {
		t.Error("IntegrityKey accepted a short key")
	}
}

func TestFileDeviceKeyProvider(t *testing.T) {
	fs, err := memfs.NewFS()
	if err != nil {
		t.Fatalf("failed to create memfs: %v", err)
	}

	const path = "/device.key"

	provider, err := NewFileDeviceKeyProvider(fs, path)
	if err != nil {
		t.Fatalf("NewFileDeviceKeyProvider failed: %v", err)
	}
	if provider.DeviceID() != uuid.Nil {
		t.Error("DeviceID set before first use")
	}

	// First use generates and persists the secret
	key, err := provider.IntegrityKey()
	if err != nil {
		t.Fatalf("IntegrityKey failed: %v", err)
	}
	if len(key) != DeviceKeySize {
		t.Fatalf("key length = %d, want %d", len(key), DeviceKeySize)
	}
	id := provider.DeviceID()
	if id == uuid.Nil {
		t.Error("DeviceID still nil after generation")
	}

	// Stable across calls
	again, err := provider.IntegrityKey()
	if err != nil {
		t.Fatalf("IntegrityKey failed: %v", err)
	}
	if !bytes.Equal(key, again) {
		t.Error("key changed between calls")
	}

	// A second provider over the same file sees the same identity
	other, err := NewFileDeviceKeyProvider(fs, path)
	if err != nil {
		t.Fatalf("NewFileDeviceKeyProvider failed: %v", err)
	}
	otherKey, err := other.IntegrityKey()
	if err != nil {
		t.Fatalf("IntegrityKey failed: %v", err)
	}
	if !bytes.Equal(key, otherKey) {
		t.Error("second provider loaded a different key")
	}
	if other.DeviceID() != id {
		t.Error("second provider loaded a different device id")
	}
}

func TestNewFileDeviceKeyProvider_Validation(t *testing.T) {
	fs, err := memfs.NewFS()
	if err != nil {
		t.Fatalf("failed to create memfs: %v", err)
	}

	if _, err := NewFileDeviceKeyProvider(nil, "/k"); err == nil {
		t.Error("nil filesystem accepted")
	}
	if _, err := NewFileDeviceKeyProvider(fs, ""); err == nil {
		t.Error("empty path accepted")
	}
}
