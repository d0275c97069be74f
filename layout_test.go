package veilith

import (
	"bytes"
	"testing"
)

func TestSplitContainer_Length(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"exact size", ContainerSize, false},
		{"empty", 0, true},
		{"one short", ContainerSize - 1, true},
		{"one long", ContainerSize + 1, true},
		{"tag only", DeviceTagSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := splitContainer(make([]byte, tt.size))
			if (err != nil) != tt.wantErr {
				t.Errorf("splitContainer(%d bytes) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestContainerView_Regions(t *testing.T) {
	container := make([]byte, ContainerSize)
	for i := range container {
		container[i] = byte(i % 251)
	}

	view, err := splitContainer(container)
	if err != nil {
		t.Fatalf("splitContainer failed: %v", err)
	}

	if !bytes.Equal(view.deviceTag, container[:DeviceTagSize]) {
		t.Error("deviceTag region mismatch")
	}
	if !bytes.Equal(view.body(), container[DeviceTagSize:]) {
		t.Error("body region mismatch")
	}
	if !bytes.Equal(view.salt(0), container[DeviceTagSize:DeviceTagSize+SaltSize]) {
		t.Error("salt(0) mismatch")
	}
	if !bytes.Equal(view.salt(SlotCount-1), container[blockTableOffset-SaltSize:blockTableOffset]) {
		t.Error("salt(63) mismatch")
	}
	if !bytes.Equal(view.block(0), container[blockTableOffset:blockTableOffset+BlockSize]) {
		t.Error("block(0) mismatch")
	}
	if !bytes.Equal(view.block(SlotCount-1), container[ContainerSize-BlockSize:]) {
		t.Error("block(63) mismatch")
	}
}

func TestAssembleContainer(t *testing.T) {
	tag := bytes.Repeat([]byte{0xAA}, DeviceTagSize)
	salts := bytes.Repeat([]byte{0xBB}, SaltTableSize)
	blocks := bytes.Repeat([]byte{0xCC}, BlockTableSize)

	container := assembleContainer(tag, salts, blocks)
	if len(container) != ContainerSize {
		t.Fatalf("assembled length = %d, want %d", len(container), ContainerSize)
	}

	view, err := splitContainer(container)
	if err != nil {
		t.Fatalf("splitContainer failed: %v", err)
	}
	if !bytes.Equal(view.deviceTag, tag) || !bytes.Equal(view.saltTable, salts) || !bytes.Equal(view.blockTable, blocks) {
		t.Error("assemble/split round trip mismatch")
	}
}
