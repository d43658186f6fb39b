package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidTokenAccount indicates that a Solana account exists at the
	// given address, but it is either not initialized, or not configured correctly.
	ErrInvalidTokenAccount = errors.New("invalid token account")
	// ErrInvalidMint indicates the account is not an initialized mint owned
	// by a token program.
	ErrInvalidMint = errors.New("invalid mint")
)

// MintInfo is the subset of a mint's state needed to address and scale
// amounts in it.
type MintInfo struct {
	Address      ed25519.PublicKey
	TokenProgram ed25519.PublicKey
	Decimals     byte
}

// Client provides utilities for reading mints and token accounts.
type Client struct {
	sc         solana.Client
	commitment solana.Commitment
}

// NewClient creates a new Client.
func NewClient(sc solana.Client, commitment solana.Commitment) *Client {
	return &Client{
		sc:         sc,
		commitment: commitment,
	}
}

// GetMint returns the token program owning mint and the mint's decimals.
func (c *Client) GetMint(mint ed25519.PublicKey) (*MintInfo, error) {
	accountInfo, err := c.sc.GetAccountInfo(mint, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get mint account info")
	}

	if !IsTokenProgram(accountInfo.Owner) {
		return nil, ErrInvalidMint
	}

	var m Mint
	if !m.Unmarshal(accountInfo.Data) || !m.IsInitialized {
		return nil, ErrInvalidMint
	}

	return &MintInfo{
		Address:      mint,
		TokenProgram: accountInfo.Owner,
		Decimals:     m.Decimals,
	}, nil
}

// GetAccount returns the token account at accountID.
//
// If the account is not initialized, or belongs to a different
// mint, then ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(accountID, mint ed25519.PublicKey) (*Account, error) {
	accountInfo, err := c.sc.GetAccountInfo(accountID, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !IsTokenProgram(accountInfo.Owner) {
		return nil, ErrInvalidTokenAccount
	}

	var account Account
	if !account.Unmarshal(accountInfo.Data) || account.State == AccountStateUninitialized {
		return nil, ErrInvalidTokenAccount
	}

	if !bytes.Equal(mint, account.Mint) {
		return nil, ErrInvalidTokenAccount
	}

	return &account, nil
}
