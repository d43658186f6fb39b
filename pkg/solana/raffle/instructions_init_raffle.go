package raffle

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/raffle-client/pkg/solana"
)

const (
	// Size with empty vectors
	MinInitRaffleInstructionArgsSize = (1 + // is_unlimited_participant_allowed
		MaxRaffleNameLength + // raffle_name
		8 + // participation_fee
		8 + // participants_required
		8 + // raffle_time
		1 + // multiple_participation_allowed
		8 + // participation_fee_type
		8 + // reward_type
		4 + // rewards
		1 + // requirement_to_participate
		8 + // requirement_amount_token
		32 + // requirement_mint
		1 + // required_token_decimals
		8 + // winner_count
		1 + // is_increasing_pool
		4) // transfer_fee_to_pool
)

// InitRaffleInstructionArgs amounts are in base units.
type InitRaffleInstructionArgs struct {
	IsUnlimitedParticipantAllowed uint8
	Name                          string
	ParticipationFee              uint64
	ParticipantsRequired          uint64
	RaffleTime                    uint64
	MultipleParticipationAllowed  uint8
	ParticipationFeeType          uint64
	RewardType                    uint64
	Rewards                       []uint64
	RequirementToParticipate      uint8
	RequirementAmountToken        uint64
	RequirementMint               ed25519.PublicKey
	RequiredTokenDecimals         uint8
	WinnerCount                   uint64
	IsIncreasingPool              uint8
	TransferFeeToPool             []uint64
}

func (args *InitRaffleInstructionArgs) Size() int {
	return MinInitRaffleInstructionArgsSize + 8*len(args.Rewards) + 8*len(args.TransferFeeToPool)
}

func (args *InitRaffleInstructionArgs) Marshal() []byte {
	data := make([]byte, args.Size())

	var offset int
	args.marshalInto(data, &offset)
	return data
}

func (args *InitRaffleInstructionArgs) marshalInto(data []byte, offset *int) {
	putUint8(data, args.IsUnlimitedParticipantAllowed, offset)
	putFixedString(data, args.Name, MaxRaffleNameLength, offset)
	putUint64(data, args.ParticipationFee, offset)
	putUint64(data, args.ParticipantsRequired, offset)
	putUint64(data, args.RaffleTime, offset)
	putUint8(data, args.MultipleParticipationAllowed, offset)
	putUint64(data, args.ParticipationFeeType, offset)
	putUint64(data, args.RewardType, offset)
	putUint64Vec(data, args.Rewards, offset)
	putUint8(data, args.RequirementToParticipate, offset)
	putUint64(data, args.RequirementAmountToken, offset)
	putKey(data, args.RequirementMint, offset)
	putUint8(data, args.RequiredTokenDecimals, offset)
	putUint64(data, args.WinnerCount, offset)
	putUint8(data, args.IsIncreasingPool, offset)
	putUint64Vec(data, args.TransferFeeToPool, offset)
}

func (args *InitRaffleInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < MinInitRaffleInstructionArgsSize {
		return ErrInvalidInstructionData
	}

	var offset int
	getUint8(data, &args.IsUnlimitedParticipantAllowed, &offset)
	getFixedString(data, &args.Name, MaxRaffleNameLength, &offset)
	getUint64(data, &args.ParticipationFee, &offset)
	getUint64(data, &args.ParticipantsRequired, &offset)
	getUint64(data, &args.RaffleTime, &offset)
	getUint8(data, &args.MultipleParticipationAllowed, &offset)
	getUint64(data, &args.ParticipationFeeType, &offset)
	getUint64(data, &args.RewardType, &offset)
	if err := getUint64Vec(data, &args.Rewards, &offset); err != nil {
		return err
	}

	if len(data)-offset < 1+8+32+1+8+1 {
		return ErrInvalidInstructionData
	}
	getUint8(data, &args.RequirementToParticipate, &offset)
	getUint64(data, &args.RequirementAmountToken, &offset)
	getKey(data, &args.RequirementMint, &offset)
	getUint8(data, &args.RequiredTokenDecimals, &offset)
	getUint64(data, &args.WinnerCount, &offset)
	getUint8(data, &args.IsIncreasingPool, &offset)
	return getUint64Vec(data, &args.TransferFeeToPool, &offset)
}

func (args *InitRaffleInstructionArgs) String() string {
	return fmt.Sprintf(
		"InitRaffle{is_unlimited_participant_allowed=%d,name=%s,participation_fee=%d,participants_required=%d,raffle_time=%d,multiple_participation_allowed=%d,participation_fee_type=%d,reward_type=%d,rewards=%v,requirement_to_participate=%d,requirement_amount_token=%d,requirement_mint=%s,required_token_decimals=%d,winner_count=%d,is_increasing_pool=%d,transfer_fee_to_pool=%v}",
		args.IsUnlimitedParticipantAllowed,
		args.Name,
		args.ParticipationFee,
		args.ParticipantsRequired,
		args.RaffleTime,
		args.MultipleParticipationAllowed,
		args.ParticipationFeeType,
		args.RewardType,
		args.Rewards,
		args.RequirementToParticipate,
		args.RequirementAmountToken,
		base58.Encode(args.RequirementMint),
		args.RequiredTokenDecimals,
		args.WinnerCount,
		args.IsIncreasingPool,
		args.TransferFeeToPool,
	)
}

type InitRaffleInstructionAccounts struct {
	Initializer          ed25519.PublicKey
	InitializerRewardAta ed25519.PublicKey
	Raffle               ed25519.PublicKey
	RaffleRewardAta      ed25519.PublicKey
	RaffleFeeAta         ed25519.PublicKey
	Counter              ed25519.PublicKey
	Term                 ed25519.PublicKey
	RewardType           ed25519.PublicKey
	FeeType              ed25519.PublicKey
	RewardMint           ed25519.PublicKey
	RewardTokenProgram   ed25519.PublicKey
	FeeMint              ed25519.PublicKey
	FeeTokenProgram      ed25519.PublicKey

	// Set only when the raffle requires holding a token to participate
	Requirement *InitRaffleRequirementAccounts
}

type InitRaffleRequirementAccounts struct {
	RaffleAta    ed25519.PublicKey
	Mint         ed25519.PublicKey
	TokenProgram ed25519.PublicKey
}

func NewInitRaffleInstruction(
	program ed25519.PublicKey,
	accounts *InitRaffleInstructionAccounts,
	args *InitRaffleInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+args.Size())

	putInstructionType(data, InstructionTypeInitRaffle, &offset)
	args.marshalInto(data, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Initializer,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.InitializerRewardAta,
			IsWritable: true,
			IsSigner:   false,
		},
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
			PublicKey:  accounts.RaffleFeeAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Counter,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Term,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RewardType,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.FeeType,
			IsWritable: false,
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
			PublicKey:  accounts.FeeMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.FeeTokenProgram,
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
