package wrapper

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"strings"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidKeypair indicates the source value is not a valid 64 byte ed25519 secret key
	ErrInvalidKeypair = errors.New("config: invalid keypair")
)

// KeypairConfig is a utility wrapper for a keypair config. Source values may
// be text, as []byte or string, or an already decoded private key. Text is
// either base58 or the JSON byte array written by solana-keygen.
type KeypairConfig struct {
	override config.Config

	stateMu   sync.RWMutex
	lastValue ed25519.PrivateKey
}

// NewKeypairConfig returns a new keypair config utility wrapper
func NewKeypairConfig(override config.Config) config.Keypair {
	return &KeypairConfig{
		override: override,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *KeypairConfig) GetSafe(ctx context.Context) (ed25519.PrivateKey, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = nil
		c.stateMu.Unlock()
		return nil, err
	} else if err != nil {
		return lastValue, err
	}

	var newValue ed25519.PrivateKey
	switch override := override.(type) {
	case ed25519.PrivateKey:
		newValue, err = checkKeypair(override)
	case []byte:
		newValue, err = decodeKeypair(string(override))
	case string:
		newValue, err = decodeKeypair(override)
	default:
		return lastValue, ErrUnsuportedConversion
	}
	if err != nil {
		return lastValue, err
	}

	c.stateMu.Lock()
	c.lastValue = newValue
	c.stateMu.Unlock()
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *KeypairConfig) Get(ctx context.Context) ed25519.PrivateKey {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *KeypairConfig) Shutdown() {
	c.override.Shutdown()
}

func decodeKeypair(encoded string) (ed25519.PrivateKey, error) {
	encoded = strings.TrimSpace(encoded)

	if strings.HasPrefix(encoded, "[") {
		var raw []byte
		var ints []int
		if err := json.Unmarshal([]byte(encoded), &ints); err != nil {
			return nil, errors.Wrap(ErrInvalidKeypair, "value is not a json byte array")
		}
		for _, v := range ints {
			if v < 0 || v > 255 {
				return nil, errors.Wrapf(ErrInvalidKeypair, "byte value %d out of range", v)
			}
			raw = append(raw, byte(v))
		}
		return checkKeypair(raw)
	}

	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeypair, "value is not base58")
	}
	return checkKeypair(decoded)
}

// checkKeypair verifies the trailing public key matches the one derived from
// the seed half of the secret key.
func checkKeypair(raw []byte) (ed25519.PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKeypair, "expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, errors.Wrap(ErrInvalidKeypair, "public key does not match secret")
	}
	return derived, nil
}
