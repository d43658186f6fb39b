// Package memory provides an in-memory solana.Client for tests.
package memory

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/solana"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/9e6ec6ea0dd5fa212bc0e1370c94bc92058c96ba/sdk/program/src/rent.rs
	accountStorageOverhead = 128
	lamportsPerByteYear    = 3480
	exemptionYears         = 2

	tokenAccountSize  = 165
	tokenAmountOffset = 64
)

var ErrInvalidSignature = errors.New("invalid transaction signature")

var _ solana.Client = (*Client)(nil)

type Client struct {
	sync.Mutex

	accounts  map[string]solana.AccountInfo
	submitted []solana.Transaction
	submitErr error
	blockhash uint64
}

// NewClient returns an empty Client.
func NewClient() *Client {
	return &Client{
		accounts: make(map[string]solana.AccountInfo),
	}
}

// SetAccount creates or replaces an account.
func (c *Client) SetAccount(key ed25519.PublicKey, info solana.AccountInfo) {
	c.Lock()
	defer c.Unlock()

	c.accounts[string(key)] = cloneAccount(info)
}

// RemoveAccount deletes an account if present.
func (c *Client) RemoveAccount(key ed25519.PublicKey) {
	c.Lock()
	defer c.Unlock()

	delete(c.accounts, string(key))
}

// SetSubmitError makes subsequent submissions return err alongside the
// transaction signature. A nil err restores normal behaviour.
func (c *Client) SetSubmitError(err error) {
	c.Lock()
	defer c.Unlock()

	c.submitErr = err
}

// Submitted returns every transaction accepted by SubmitTransaction, in order.
func (c *Client) Submitted() []solana.Transaction {
	c.Lock()
	defer c.Unlock()

	res := make([]solana.Transaction, len(c.submitted))
	copy(res, c.submitted)
	return res
}

// LastSubmitted returns the most recent submission.
func (c *Client) LastSubmitted() (solana.Transaction, bool) {
	c.Lock()
	defer c.Unlock()

	if len(c.submitted) == 0 {
		return solana.Transaction{}, false
	}
	return c.submitted[len(c.submitted)-1], true
}

func (c *Client) GetAccountInfo(key ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[string(key)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return cloneAccount(info), nil
}

func (c *Client) GetBalance(key ed25519.PublicKey) (uint64, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[string(key)]
	if !ok {
		return 0, solana.ErrNoBalance
	}
	return info.Lamports, nil
}

// GetLatestBlockhash returns a different hash on every call.
func (c *Client) GetLatestBlockhash() (solana.Blockhash, error) {
	c.Lock()
	defer c.Unlock()

	c.blockhash++

	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], c.blockhash)
	return solana.Blockhash(sha256.Sum256(seed[:])), nil
}

func (c *Client) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return (accountStorageOverhead + size) * lamportsPerByteYear * exemptionYears, nil
}

// GetProgramAccounts returns accounts owned by program matching every filter,
// ordered by address.
func (c *Client) GetProgramAccounts(program ed25519.PublicKey, _ solana.Commitment, filters ...solana.ProgramAccountFilter) ([]solana.KeyedAccount, error) {
	c.Lock()
	defer c.Unlock()

	var res []solana.KeyedAccount
	for key, info := range c.accounts {
		if string(info.Owner) != string(program) {
			continue
		}

		matches := true
		for _, f := range filters {
			if !f.Matches(info.Data) {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}

		res = append(res, solana.KeyedAccount{
			PublicKey: ed25519.PublicKey(key),
			Account:   cloneAccount(info),
		})
	}

	sort.Slice(res, func(i, j int) bool {
		return base58.Encode(res[i].PublicKey) < base58.Encode(res[j].PublicKey)
	})
	return res, nil
}

// GetTokenAccountBalance reads the amount field of a token account.
func (c *Client) GetTokenAccountBalance(key ed25519.PublicKey) (uint64, uint64, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[string(key)]
	if !ok || len(info.Data) < tokenAccountSize {
		return 0, 0, solana.ErrNoBalance
	}
	return binary.LittleEndian.Uint64(info.Data[tokenAmountOffset:]), c.blockhash, nil
}

// RequestAirdrop credits lamports to a system owned account.
func (c *Client) RequestAirdrop(key ed25519.PublicKey, lamports uint64, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[string(key)]
	if !ok {
		info = solana.AccountInfo{Owner: make(ed25519.PublicKey, ed25519.PublicKeySize)}
	}
	info.Lamports += lamports
	c.accounts[string(key)] = info

	var sig solana.Signature
	if _, err := rand.Read(sig[:]); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// SubmitTransaction verifies every signature and records the transaction.
func (c *Client) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	if len(txn.Signatures) == 0 {
		return solana.Signature{}, errors.New("transaction has no signatures")
	}

	message := txn.Message.Marshal()
	for i, sig := range txn.Signatures {
		if i >= len(txn.Message.Accounts) || !ed25519.Verify(txn.Message.Accounts[i], message, sig[:]) {
			return txn.Signatures[0], ErrInvalidSignature
		}
	}

	c.Lock()
	defer c.Unlock()

	if c.submitErr != nil {
		return txn.Signatures[0], c.submitErr
	}

	c.submitted = append(c.submitted, txn)
	return txn.Signatures[0], nil
}

func cloneAccount(info solana.AccountInfo) solana.AccountInfo {
	clone := info
	clone.Data = append([]byte(nil), info.Data...)
	clone.Owner = append(ed25519.PublicKey(nil), info.Owner...)
	return clone
}
