package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/raffle-client/pkg/solana"
	"github.com/code-payments/raffle-client/pkg/solana/memory"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// SetupMint stores an initialized mint owned by tokenProgram and returns its
// address.
func SetupMint(t *testing.T, client *memory.Client, tokenProgram ed25519.PublicKey, decimals byte) ed25519.PublicKey {
	address := GenerateSolanaKeys(t, 1)[0]
	mint := token.Mint{
		MintAuthority: GenerateSolanaKeys(t, 1)[0],
		Decimals:      decimals,
		IsInitialized: true,
	}

	client.SetAccount(address, solana.AccountInfo{
		Data:  mint.Marshal(),
		Owner: tokenProgram,
	})
	return address
}

// SetupTokenAccount stores the associated token account of owner for mint
// holding amount base units and returns its address.
func SetupTokenAccount(t *testing.T, client *memory.Client, owner, mint, tokenProgram ed25519.PublicKey, amount uint64) ed25519.PublicKey {
	address, err := token.GetAssociatedAccount(owner, mint, tokenProgram)
	require.NoError(t, err)

	account := token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.AccountStateInitialized,
	}

	client.SetAccount(address, solana.AccountInfo{
		Data:  account.Marshal(),
		Owner: tokenProgram,
	})
	return address
}
