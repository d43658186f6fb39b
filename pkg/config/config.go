package config

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is an interface for getting a configuration value
type Config interface {
	// Get returns the latest config value
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// Keypair provides an ed25519 private key typed config.Config. There is no
// default value; GetSafe returns ErrNoValue while the source is unset.
type Keypair interface {
	Get(ctx context.Context) ed25519.PrivateKey
	GetSafe(ctx context.Context) (ed25519.PrivateKey, error)
	Shutdown()
}
