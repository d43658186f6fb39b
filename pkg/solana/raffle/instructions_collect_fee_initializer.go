package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

type CollectFeeInitializerInstructionAccounts struct {
	Initializer  ed25519.PublicKey
	Raffle       ed25519.PublicKey
	Term         ed25519.PublicKey
	FeeCollector ed25519.PublicKey

	// Nil for raffles charging the native fee
	Token *CollectFeeInitializerTokenAccounts
}

type CollectFeeInitializerTokenAccounts struct {
	FeeCollectorAta ed25519.PublicKey
	InitializerAta  ed25519.PublicKey
	RaffleAta       ed25519.PublicKey
	TokenProgram    ed25519.PublicKey
	Mint            ed25519.PublicKey
}

func NewCollectFeeInitializerInstruction(
	program ed25519.PublicKey,
	accounts *CollectFeeInitializerInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeCollectFeeInitializer, &offset)

	metas := []solana.AccountMeta{
		solana.NewAccountMeta(accounts.Initializer, true),
		solana.NewAccountMeta(accounts.Raffle, false),
	}

	if accounts.Token == nil {
		metas = append(
			metas,
			solana.NewAccountMeta(accounts.Term, false),
			solana.NewAccountMeta(accounts.FeeCollector, false),
		)
		return solana.NewInstruction(program, data, metas...)
	}

	metas = append(
		metas,
		solana.NewReadonlyAccountMeta(accounts.Term, false),
		solana.NewAccountMeta(accounts.FeeCollector, false),
		solana.NewAccountMeta(accounts.Token.FeeCollectorAta, false),
		solana.NewAccountMeta(accounts.Token.InitializerAta, false),
		solana.NewAccountMeta(accounts.Token.RaffleAta, false),
		solana.NewReadonlyAccountMeta(accounts.Token.TokenProgram, false),
		solana.NewReadonlyAccountMeta(accounts.Token.Mint, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
		solana.NewReadonlyAccountMeta(ASSOCIATED_TOKEN_PROGRAM_ID, false),
	)
	return solana.NewInstruction(program, data, metas...)
}
