package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

const (
	FreezeTestInstructionArgsSize = 8 // x
)

type FreezeTestInstructionArgs struct {
	X uint64
}

type FreezeTestInstructionAccounts struct {
	Initializer     ed25519.PublicKey
	Raffle          ed25519.PublicKey
	FeeTokenProgram ed25519.PublicKey
	FeeMint         ed25519.PublicKey
	ParticipantAta  ed25519.PublicKey
}

// NewFreezeTestInstruction is a diagnostic instruction that exercises the
// program's freeze authority handling of a fee mint.
func NewFreezeTestInstruction(
	program ed25519.PublicKey,
	accounts *FreezeTestInstructionAccounts,
	args *FreezeTestInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 1+FreezeTestInstructionArgsSize)
	putInstructionType(data, InstructionTypeFreezeTest, &offset)
	putUint64(data, args.X, &offset)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(accounts.Initializer, true),
		solana.NewReadonlyAccountMeta(accounts.Raffle, false),
		solana.NewReadonlyAccountMeta(accounts.FeeTokenProgram, false),
		solana.NewAccountMeta(accounts.FeeMint, false),
		solana.NewReadonlyAccountMeta(accounts.ParticipantAta, false),
		solana.NewReadonlyAccountMeta(SYSVAR_RENT_PUBKEY, false),
	)
}
