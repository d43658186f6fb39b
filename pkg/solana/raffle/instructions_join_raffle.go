package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

type JoinRaffleInstructionAccounts struct {
	Participant   ed25519.PublicKey
	Raffle        ed25519.PublicKey
	Participation ed25519.PublicKey

	// Nil for raffles charging the native fee, in which case the fee mint
	// slot carries the system program.
	Fee *TokenTransferAccounts

	// Set only when the raffle requires holding a token to participate
	Requirement *TokenTransferAccounts
}

// TokenTransferAccounts are the accounts needed to move or check a token
// balance between a participant and a raffle.
type TokenTransferAccounts struct {
	Mint           ed25519.PublicKey
	ParticipantAta ed25519.PublicKey
	RaffleAta      ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

func (a *TokenTransferAccounts) metas() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  a.Mint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.ParticipantAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.RaffleAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.TokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}

func NewJoinRaffleInstruction(
	program ed25519.PublicKey,
	accounts *JoinRaffleInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeJoinRaffle, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Participant,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Raffle,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Participation,
			IsWritable: true,
			IsSigner:   false,
		},
	}

	if accounts.Fee == nil {
		metas = append(metas, solana.AccountMeta{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		})
	} else {
		metas = append(metas, accounts.Fee.metas()...)
	}

	if accounts.Requirement != nil {
		metas = append(metas, accounts.Requirement.metas()...)
	}

	metas = append(metas, solana.AccountMeta{
		PublicKey:  SYSTEM_PROGRAM_ID,
		IsWritable: false,
		IsSigner:   false,
	})

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}
