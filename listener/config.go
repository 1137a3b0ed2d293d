// Package listener provides an HTTP listener module for the Fx DI container.
package listener

import (
	"errors"
	"time"
)

// DefaultAddress is the default address for the HTTP listener. Configuration is
// not meant to leave the host unless an address is configured explicitly.
const DefaultAddress = "127.0.0.1:8087"

// DefaultReadHeaderTimeout is the default timeout for reading request headers.
const DefaultReadHeaderTimeout = 10 * time.Second

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrNegativeTimeout is returned when a timeout is negative.
var ErrNegativeTimeout = errors.New("timeout must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener.
// It implements config.Defaulter and config.Validator, so it can be decoded from
// the configuration store with config.Provider.
type Config struct {
	Address           string        `yaml:"address"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.ReadHeaderTimeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}
