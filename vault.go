package veilith

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Vault is the entry point for container operations. It holds only
// immutable configuration and the device key provider, so a single Vault
// may be shared freely across goroutines; every operation takes its inputs
// by value and returns fresh output bytes.
type Vault struct {
	provider DeviceKeyProvider
	kdf      Argon2Params
	debug    zerolog.Logger
}

// New creates a Vault from the given configuration
func New(config *Config) (*Vault, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	debug := zerolog.Nop()
	if config.Debug != nil {
		debug = *config.Debug
	}

	return &Vault{
		provider: config.Provider,
		kdf:      config.KDF.withDefaults(),
		debug:    debug,
	}, nil
}
