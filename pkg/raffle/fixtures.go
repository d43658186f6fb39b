package raffle

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/journal"
	"github.com/code-payments/raffle-client/pkg/solana"
	"github.com/code-payments/raffle-client/pkg/solana/system"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// Token fixtures for bootstrapping a test cluster. They are not part of the
// raffle program.

// CreateMint allocates and initializes a new mint whose mint authority is
// the payer. The mint key co-signs the account creation.
func (c *Client) CreateMint(ctx context.Context, payer, mint ed25519.PrivateKey, tokenProgram ed25519.PublicKey, decimals uint8) (solana.Signature, error) {
	const op = "create_mint"

	if !token.IsTokenProgram(tokenProgram) {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrapf(ErrInvalidArgument, "%s is not a token program", base58.Encode(tokenProgram)))
	}

	lamports, err := c.sc.GetMinimumBalanceForRentExemption(token.MintSize)
	if err != nil {
		return solana.Signature{}, newError(op, KindRPC, errors.Wrap(err, "failed to get rent exemption"))
	}

	authority := publicKey(payer)
	address := publicKey(mint)

	return c.submit(ctx, &submission{
		op:           op,
		payer:        payer,
		extraSigners: []ed25519.PrivateKey{mint},
		instructions: []solana.Instruction{
			system.CreateAccount(authority, address, tokenProgram, lamports, token.MintSize),
			token.InitializeMint(tokenProgram, address, authority, nil, decimals),
		},
	})
}

// MintTo mints a human amount of mint into the owner's associated token
// account, creating the account if needed. The payer must be the mint
// authority.
func (c *Client) MintTo(ctx context.Context, payer ed25519.PrivateKey, mint, owner ed25519.PublicKey, amount string) (solana.Signature, error) {
	const op = "mint_to"

	mintInfo, err := c.GetMint(ctx, mint)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	quarks, err := ToBaseUnits(amount, mintInfo.Decimals)
	if err != nil {
		return solana.Signature{}, newError(op, KindRangeViolation, err)
	}

	authority := publicKey(payer)
	createAta, ata, err := token.CreateAssociatedTokenAccountIdempotent(authority, owner, mintInfo.Address, mintInfo.TokenProgram)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	return c.submit(ctx, &submission{
		op:    op,
		payer: payer,
		instructions: []solana.Instruction{
			createAta,
			token.MintToChecked(mintInfo.TokenProgram, mintInfo.Address, ata, authority, quarks, mintInfo.Decimals),
		},
	})
}

// Airdrop requests native lamports for wallet. Only test clusters honour it.
func (c *Client) Airdrop(ctx context.Context, wallet ed25519.PublicKey, lamports uint64) (solana.Signature, error) {
	const op = "airdrop"

	if err := c.pacer.Wait(ctx); err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	sig, err := c.sc.RequestAirdrop(wallet, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, newError(op, KindRPC, err)
	}

	c.log.WithField("method", op).WithField("signature", sig.String()).Info("airdrop requested")

	if err := c.journal.Save(ctx, journal.NewRecord(op, base58.Encode(wallet), sig.String(), nil)); err != nil {
		return sig, newError(op, KindUnknown, errors.Wrap(err, "airdrop requested but not journaled"))
	}
	return sig, nil
}

// GetNativeBalance returns the lamports held by wallet.
func (c *Client) GetNativeBalance(ctx context.Context, wallet ed25519.PublicKey) (uint64, error) {
	const op = "get_native_balance"

	if err := ctx.Err(); err != nil {
		return 0, newError(op, KindUnknown, err)
	}

	balance, err := c.sc.GetBalance(wallet)
	if err == solana.ErrNoBalance {
		return 0, nil
	} else if err != nil {
		return 0, newError(op, KindRPC, err)
	}
	return balance, nil
}
