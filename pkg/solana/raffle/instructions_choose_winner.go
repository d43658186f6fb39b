package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

const (
	CallLimitInstructionArgsSize = 8 // limit
)

// CallLimitInstructionArgs bounds the work a single draw invocation may do.
type CallLimitInstructionArgs struct {
	Limit uint64
}

func (args *CallLimitInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < CallLimitInstructionArgsSize {
		return ErrInvalidInstructionData
	}

	var offset int
	getUint64(data, &args.Limit, &offset)
	return nil
}

type ChooseWinnerInstructionAccounts struct {
	Authority      ed25519.PublicKey
	Raffle         ed25519.PublicKey
	EntropyAccount ed25519.PublicKey
	RngFeeAccount  ed25519.PublicKey
	RngProgram     ed25519.PublicKey
	Config         ed25519.PublicKey

	// Set only when the raffle has no participants and its rewards are
	// refunded to the initializer
	Refund *ChooseWinnerRefundAccounts
}

type ChooseWinnerRefundAccounts struct {
	InitializerRewardAta ed25519.PublicKey
	RaffleRewardAta      ed25519.PublicKey
	RewardMint           ed25519.PublicKey
	RewardTokenProgram   ed25519.PublicKey
}

func NewChooseWinnerInstruction(
	program ed25519.PublicKey,
	accounts *ChooseWinnerInstructionAccounts,
	args *CallLimitInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+CallLimitInstructionArgsSize)

	putInstructionType(data, InstructionTypeChooseWinner, &offset)
	putUint64(data, args.Limit, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Authority,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Raffle,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.EntropyAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RngFeeAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RngProgram,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Config,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	if accounts.Refund != nil {
		metas = append(
			metas,
			solana.AccountMeta{
				PublicKey:  accounts.Refund.InitializerRewardAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Refund.RaffleRewardAta,
				IsWritable: true,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Refund.RewardMint,
				IsWritable: false,
				IsSigner:   false,
			},
			solana.AccountMeta{
				PublicKey:  accounts.Refund.RewardTokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		)
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}
