package veilith

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/absfs/absfs"
	"github.com/google/uuid"
)

// StaticDeviceKeyProvider serves a fixed 32-byte device secret. Useful for
// tests and for applications that manage key custody themselves.
type StaticDeviceKeyProvider struct {
	key []byte
}

// NewStaticDeviceKeyProvider creates a provider around an existing secret
func NewStaticDeviceKeyProvider(key []byte) (*StaticDeviceKeyProvider, error) {
	if len(key) != DeviceKeySize {
		return nil, ErrInvalidDeviceKey
	}
	k := make([]byte, DeviceKeySize)
	copy(k, key)
	return &StaticDeviceKeyProvider{key: k}, nil
}

// IntegrityKey returns a copy of the device secret
func (p *StaticDeviceKeyProvider) IntegrityKey() ([]byte, error) {
	key := make([]byte, DeviceKeySize)
	copy(key, p.key)
	return key, nil
}

// EnvDeviceKeyProvider reads a hex-encoded 32-byte device secret from an
// environment variable.
type EnvDeviceKeyProvider struct {
	envVar string
}

// NewEnvDeviceKeyProvider creates a new environment variable provider
func NewEnvDeviceKeyProvider(envVar string) *EnvDeviceKeyProvider {
	return &EnvDeviceKeyProvider{envVar: envVar}
}

// IntegrityKey returns the decoded device secret
func (e *EnvDeviceKeyProvider) IntegrityKey() ([]byte, error) {
	encoded := os.Getenv(e.envVar)
	if encoded == "" {
		return nil, fmt.Errorf("environment variable %s not set: %w", e.envVar, ErrProviderUnavailable)
	}

	key, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("environment variable %s is not valid hex: %w", e.envVar, err)
	}
	if len(key) != DeviceKeySize {
		return nil, ErrInvalidDeviceKey
	}
	return key, nil
}

// deviceKeyFileSize is the on-disk size of a device identity file:
// a 16-byte device id followed by the 32-byte secret.
const deviceKeyFileSize = 16 + DeviceKeySize

// FileDeviceKeyProvider persists a random device secret through an
// absfs.FileSystem. The first IntegrityKey call on a fresh path generates
// the secret together with a device id; later calls (and later processes)
// read the same file, so the secret is stable per device.
type FileDeviceKeyProvider struct {
	fs   absfs.FileSystem
	path string

	mu  sync.Mutex
	id  uuid.UUID
	key []byte
}

// NewFileDeviceKeyProvider creates a file-backed provider at path
func NewFileDeviceKeyProvider(fs absfs.FileSystem, path string) (*FileDeviceKeyProvider, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	if path == "" {
		return nil, fmt.Errorf("device key path cannot be empty")
	}
	return &FileDeviceKeyProvider{fs: fs, path: path}, nil
}

// IntegrityKey returns the device secret, creating it on first use
func (p *FileDeviceKeyProvider) IntegrityKey() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key == nil {
		if err := p.load(); err != nil {
			if !os.IsNotExist(err) {
				return nil, NewProviderError(err)
			}
			if err := p.generate(); err != nil {
				return nil, NewProviderError(err)
			}
		}
	}

	key := make([]byte, DeviceKeySize)
	copy(key, p.key)
	return key, nil
}

// DeviceID returns the persisted device identity, or the nil UUID if the
// key file has not been created or read yet.
func (p *FileDeviceKeyProvider) DeviceID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *FileDeviceKeyProvider) load() error {
	f, err := p.fs.OpenFile(p.path, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, deviceKeyFileSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("device key file truncated: %w", err)
	}

	id, err := uuid.FromBytes(buf[:16])
	if err != nil {
		return fmt.Errorf("device key file has invalid id: %w", err)
	}

	p.id = id
	p.key = buf[16:]
	return nil
}

func (p *FileDeviceKeyProvider) generate() error {
	key, err := randomBytes(DeviceKeySize)
	if err != nil {
		return err
	}
	id := uuid.New()

	f, err := p.fs.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 0, deviceKeyFileSize)
	buf = append(buf, id[:]...)
	buf = append(buf, key...)
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("failed to write device key file: %w", err)
	}

	p.id = id
	p.key = key
	return nil
}
