package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

type PublishWinnerInstructionAccounts struct {
	Raffle ed25519.PublicKey

	// Participation records of the drawn winners, in draw order
	Winners []ed25519.PublicKey
}

func NewPublishWinnerInstruction(
	program ed25519.PublicKey,
	accounts *PublishWinnerInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypePublishWinner, &offset)

	metas := make([]solana.AccountMeta, 0, 1+len(accounts.Winners))
	metas = append(metas, solana.NewAccountMeta(accounts.Raffle, false))
	for _, winner := range accounts.Winners {
		metas = append(metas, solana.NewAccountMeta(winner, false))
	}

	return solana.NewInstruction(program, data, metas...)
}
