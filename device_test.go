package veilith

import (
	"bytes"
	"testing"
)

func TestComputeDeviceTag(t *testing.T) {
	key := testKey(0x11)
	body := []byte("salt table and block table bytes")

	tag := computeDeviceTag(key, body)
	if len(tag) != DeviceTagSize {
		t.Fatalf("tag length = %d, want %d", len(tag), DeviceTagSize)
	}

	// Deterministic for identical inputs
	if !bytes.Equal(tag, computeDeviceTag(key, body)) {
		t.Error("tag is not deterministic")
	}

	// Sensitive to the key and to the body
	if bytes.Equal(tag, computeDeviceTag(testKey(0x12), body)) {
		t.Error("different keys produced the same tag")
	}
	if bytes.Equal(tag, computeDeviceTag(key, []byte("other bytes"))) {
		t.Error("different bodies produced the same tag")
	}
}

func TestVerifyDeviceTag_FlippedBytes(t *testing.T) {
	key := testKey(0x11)
	container := make([]byte, ContainerSize)
	view, err := splitContainer(container)
	if err != nil {
		t.Fatalf("splitContainer failed: %v", err)
	}

	copy(view.deviceTag, computeDeviceTag(key, view.body()))
	if !verifyDeviceTag(key, view) {
		t.Fatal("freshly computed tag did not verify")
	}

	// Flipping any single tag byte must invalidate the container
	for i := 0; i < DeviceTagSize; i++ {
		view.deviceTag[i] ^= 0xFF
		if verifyDeviceTag(key, view) {
			t.Fatalf("tag verified with byte %d flipped", i)
		}
		view.deviceTag[i] ^= 0xFF
	}

	// Flipping a body byte must invalidate it too
	view.saltTable[0] ^= 0x01
	if verifyDeviceTag(key, view) {
		t.Error("tag verified after salt table mutation")
	}
}
