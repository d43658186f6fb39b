package wrapper_test

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/raffle-client/pkg/config"
	"github.com/code-payments/raffle-client/pkg/config/memory"
	"github.com/code-payments/raffle-client/pkg/config/wrapper"
)

func TestKeypairConfig(t *testing.T) {
	_, expected, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mock := memory.NewConfig(nil)
	keypair := wrapper.NewKeypairConfig(mock)

	// No default value exists for keypairs
	val, err := keypair.GetSafe(context.Background())
	assert.Equal(t, config.ErrNoValue, err)
	assert.Nil(t, val)
	assert.Nil(t, keypair.Get(context.Background()))

	mock.SetValue([]byte(base58.Encode(expected)))
	val, err = keypair.GetSafe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, val)

	mock.SetValue(base58.Encode(expected))
	assert.Equal(t, expected, keypair.Get(context.Background()))

	mock.SetValue(expected)
	assert.Equal(t, expected, keypair.Get(context.Background()))

	mock.SetValue(keygenJSON(expected) + "\n")
	assert.Equal(t, expected, keypair.Get(context.Background()))

	// The last observed config value is returned on error
	mock.InduceErrors(true)
	val, err = keypair.GetSafe(context.Background())
	require.Error(t, err)
	assert.Equal(t, expected, val)

	mock.InduceErrors(false)
	mock.SetValue(42)
	val, err = keypair.GetSafe(context.Background())
	assert.Equal(t, wrapper.ErrUnsuportedConversion, err)
	assert.Equal(t, expected, val)

	// Nothing is returned once the value is cleared
	mock.SetValue(nil)
	val, err = keypair.GetSafe(context.Background())
	assert.Equal(t, config.ErrNoValue, err)
	assert.Nil(t, val)
}

func TestKeypairConfig_Invalid(t *testing.T) {
	_, valid, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mismatched := make([]byte, len(valid))
	copy(mismatched, valid)
	mismatched[63] ^= 0xff

	for _, tc := range []struct {
		name  string
		value interface{}
	}{
		{"not base58", "0OIl"},
		{"seed only", base58.Encode(valid[:32])},
		{"too long", base58.Encode(append(valid, 1))},
		{"public key mismatch", base58.Encode(mismatched)},
		{"raw mismatch", ed25519.PrivateKey(mismatched)},
		{"json mismatch", keygenJSON(mismatched)},
		{"json out of range", "[256" + strings.Repeat(",0", 63) + "]"},
		{"json malformed", "[1,2,"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keypair := wrapper.NewKeypairConfig(memory.NewConfig(tc.value))
			_, err := keypair.GetSafe(context.Background())
			assert.Equal(t, wrapper.ErrInvalidKeypair, errors.Cause(err))
		})
	}
}

func keygenJSON(key []byte) string {
	values := make([]string, len(key))
	for i, b := range key {
		values[i] = fmt.Sprint(b)
	}
	return "[" + strings.Join(values, ",") + "]"
}
