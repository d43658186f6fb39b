package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

type ClaimPrizeInstructionAccounts struct {
	Raffle             ed25519.PublicKey
	RaffleRewardAta    ed25519.PublicKey
	Participation      ed25519.PublicKey
	Winner             ed25519.PublicKey
	WinnerRewardAta    ed25519.PublicKey
	RewardMint         ed25519.PublicKey
	RewardTokenProgram ed25519.PublicKey

	// Set only when the raffle requires holding a token to participate
	Requirement *ClaimPrizeRequirementAccounts
}

type ClaimPrizeRequirementAccounts struct {
	RaffleAta      ed25519.PublicKey
	ParticipantAta ed25519.PublicKey
	Mint           ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

func NewClaimPrizeInstruction(
	program ed25519.PublicKey,
	accounts *ClaimPrizeInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeClaimPrize, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Raffle,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RaffleRewardAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Participation,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Winner,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.WinnerRewardAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RewardMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RewardTokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSVAR_RENT_PUBKEY,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	if accounts.Requirement != nil {
		metas = append(
			metas,
			solana.AccountMeta{
				PublicKey:  accounts.Requirement.RaffleAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Requirement.ParticipantAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Requirement.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Requirement.TokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		)
	}

	metas = append(
		metas,
		solana.AccountMeta{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		solana.AccountMeta{
			PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}
