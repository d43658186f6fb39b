package raffle

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	MaxRaffleNameLength = 32

	// Bytes before the rewards vector
	RaffleAccountPrefixSize = (1 + // raffle_state
		1 + // is_unlimited_participant_allowed
		1 + // multiple_participation_allowed
		32 + // initializer
		32 + // reward_mint
		MaxRaffleNameLength + // raffle_name
		8 + // raffle_no
		8 + // current_number_of_participants
		8 + // participants_required
		8 + // participation_fee
		32 + // participation_fee_mint
		8) // participation_fee_type

	// Bytes between the winners and transfer_fee_to_pool vectors
	RaffleAccountMiddleSize = (1 + // requirement_to_participate
		8 + // requirement_amount_token
		32 + // requirement_mint
		1 + // required_token_decimals
		1 + // reward_decimals
		1 + // participation_fee_decimals
		1) // is_increasing_pool

	// Bytes after the transfer_fee_to_pool vector
	RaffleAccountSuffixSize = (8 + // raffle_time
		8 + // winner_count
		8 + // current_winner_count
		8 + // number_of_entitled_winners
		1 + // fee_collected
		1) // bump

	// Size of a raffle with empty vectors
	MinRaffleAccountSize = RaffleAccountPrefixSize + 4 + 4 + RaffleAccountMiddleSize + 4 + RaffleAccountSuffixSize
)

const (
	RaffleStateOffset                       = 0
	RaffleUnlimitedParticipantsOffset       = RaffleStateOffset + 1
	RaffleMultipleParticipationOffset       = RaffleUnlimitedParticipantsOffset + 1
	RaffleInitializerOffset                 = RaffleMultipleParticipationOffset + 1
	RaffleRewardMintOffset                  = RaffleInitializerOffset + 32
	RaffleNameOffset                        = RaffleRewardMintOffset + 32
	RaffleNoOffset                          = RaffleNameOffset + MaxRaffleNameLength
	RaffleCurrentNumberOfParticipantsOffset = RaffleNoOffset + 8
	RaffleParticipantsRequiredOffset        = RaffleCurrentNumberOfParticipantsOffset + 8
	RaffleParticipationFeeOffset            = RaffleParticipantsRequiredOffset + 8
	RaffleParticipationFeeMintOffset        = RaffleParticipationFeeOffset + 8
	RaffleParticipationFeeTypeOffset        = RaffleParticipationFeeMintOffset + 32
	RaffleRewardsOffset                     = RaffleParticipationFeeTypeOffset + 8
)

type RaffleAccount struct {
	State                         RaffleState
	IsUnlimitedParticipantAllowed uint8
	MultipleParticipationAllowed  uint8
	Initializer                   ed25519.PublicKey
	RewardMint                    ed25519.PublicKey
	Name                          string
	RaffleNo                      uint64
	CurrentNumberOfParticipants   uint64
	ParticipantsRequired          uint64
	ParticipationFee              uint64
	ParticipationFeeMint          ed25519.PublicKey
	ParticipationFeeType          uint64
	Rewards                       []uint64
	Winners                       []uint64
	RequirementToParticipate      uint8
	RequirementAmountToken        uint64
	RequirementMint               ed25519.PublicKey
	RequiredTokenDecimals         uint8
	RewardDecimals                uint8
	ParticipationFeeDecimals      uint8
	IsIncreasingPool              uint8
	TransferFeeToPool             []uint64
	RaffleTime                    uint64
	WinnerCount                   uint64
	CurrentWinnerCount            uint64
	NumberOfEntitledWinners       uint64
	FeeCollected                  uint8
	Bump                          uint8
}

func (obj *RaffleAccount) AllowsMultipleParticipation() bool {
	return obj.MultipleParticipationAllowed == 1
}

func (obj *RaffleAccount) AllowsUnlimitedParticipants() bool {
	return obj.IsUnlimitedParticipantAllowed == 1
}

func (obj *RaffleAccount) HasTokenRequirement() bool {
	return obj.RequirementToParticipate == 1
}

func (obj *RaffleAccount) HasNativeFee() bool {
	return obj.ParticipationFeeType == NativeTypeNo
}

func (obj *RaffleAccount) Size() int {
	return RaffleAccountPrefixSize +
		uint64VecSize(obj.Rewards) +
		uint64VecSize(obj.Winners) +
		RaffleAccountMiddleSize +
		uint64VecSize(obj.TransferFeeToPool) +
		RaffleAccountSuffixSize
}

func (obj *RaffleAccount) Marshal() []byte {
	data := make([]byte, obj.Size())

	var offset int
	putUint8(data, uint8(obj.State), &offset)
	putUint8(data, obj.IsUnlimitedParticipantAllowed, &offset)
	putUint8(data, obj.MultipleParticipationAllowed, &offset)
	putKey(data, obj.Initializer, &offset)
	putKey(data, obj.RewardMint, &offset)
	putFixedString(data, obj.Name, MaxRaffleNameLength, &offset)
	putUint64(data, obj.RaffleNo, &offset)
	putUint64(data, obj.CurrentNumberOfParticipants, &offset)
	putUint64(data, obj.ParticipantsRequired, &offset)
	putUint64(data, obj.ParticipationFee, &offset)
	putKey(data, obj.ParticipationFeeMint, &offset)
	putUint64(data, obj.ParticipationFeeType, &offset)
	putUint64Vec(data, obj.Rewards, &offset)
	putUint64Vec(data, obj.Winners, &offset)
	putUint8(data, obj.RequirementToParticipate, &offset)
	putUint64(data, obj.RequirementAmountToken, &offset)
	putKey(data, obj.RequirementMint, &offset)
	putUint8(data, obj.RequiredTokenDecimals, &offset)
	putUint8(data, obj.RewardDecimals, &offset)
	putUint8(data, obj.ParticipationFeeDecimals, &offset)
	putUint8(data, obj.IsIncreasingPool, &offset)
	putUint64Vec(data, obj.TransferFeeToPool, &offset)
	putUint64(data, obj.RaffleTime, &offset)
	putUint64(data, obj.WinnerCount, &offset)
	putUint64(data, obj.CurrentWinnerCount, &offset)
	putUint64(data, obj.NumberOfEntitledWinners, &offset)
	putUint8(data, obj.FeeCollected, &offset)
	putUint8(data, obj.Bump, &offset)
	return data
}

func (obj *RaffleAccount) Unmarshal(data []byte) error {
	if len(data) < MinRaffleAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var state uint8

	getUint8(data, &state, &offset)
	obj.State = RaffleState(state)
	getUint8(data, &obj.IsUnlimitedParticipantAllowed, &offset)
	getUint8(data, &obj.MultipleParticipationAllowed, &offset)
	getKey(data, &obj.Initializer, &offset)
	getKey(data, &obj.RewardMint, &offset)
	getFixedString(data, &obj.Name, MaxRaffleNameLength, &offset)
	getUint64(data, &obj.RaffleNo, &offset)
	getUint64(data, &obj.CurrentNumberOfParticipants, &offset)
	getUint64(data, &obj.ParticipantsRequired, &offset)
	getUint64(data, &obj.ParticipationFee, &offset)
	getKey(data, &obj.ParticipationFeeMint, &offset)
	getUint64(data, &obj.ParticipationFeeType, &offset)
	if err := getUint64Vec(data, &obj.Rewards, &offset); err != nil {
		return err
	}
	if err := getUint64Vec(data, &obj.Winners, &offset); err != nil {
		return err
	}

	if len(data)-offset < RaffleAccountMiddleSize {
		return ErrInvalidAccountData
	}
	getUint8(data, &obj.RequirementToParticipate, &offset)
	getUint64(data, &obj.RequirementAmountToken, &offset)
	getKey(data, &obj.RequirementMint, &offset)
	getUint8(data, &obj.RequiredTokenDecimals, &offset)
	getUint8(data, &obj.RewardDecimals, &offset)
	getUint8(data, &obj.ParticipationFeeDecimals, &offset)
	getUint8(data, &obj.IsIncreasingPool, &offset)
	if err := getUint64Vec(data, &obj.TransferFeeToPool, &offset); err != nil {
		return err
	}

	if len(data)-offset < RaffleAccountSuffixSize {
		return ErrInvalidAccountData
	}
	getUint64(data, &obj.RaffleTime, &offset)
	getUint64(data, &obj.WinnerCount, &offset)
	getUint64(data, &obj.CurrentWinnerCount, &offset)
	getUint64(data, &obj.NumberOfEntitledWinners, &offset)
	getUint8(data, &obj.FeeCollected, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *RaffleAccount) String() string {
	return fmt.Sprintf(
		"Raffle{state=%s,is_unlimited_participant_allowed=%d,multiple_participation_allowed=%d,initializer=%s,reward_mint=%s,name=%s,raffle_no=%d,current_number_of_participants=%d,participants_required=%d,participation_fee=%d,participation_fee_mint=%s,participation_fee_type=%d,rewards=%v,winners=%v,requirement_to_participate=%d,requirement_amount_token=%d,requirement_mint=%s,required_token_decimals=%d,reward_decimals=%d,participation_fee_decimals=%d,is_increasing_pool=%d,transfer_fee_to_pool=%v,raffle_time=%d,winner_count=%d,current_winner_count=%d,number_of_entitled_winners=%d,fee_collected=%d,bump=%d}",
		obj.State,
		obj.IsUnlimitedParticipantAllowed,
		obj.MultipleParticipationAllowed,
		base58.Encode(obj.Initializer),
		base58.Encode(obj.RewardMint),
		obj.Name,
		obj.RaffleNo,
		obj.CurrentNumberOfParticipants,
		obj.ParticipantsRequired,
		obj.ParticipationFee,
		base58.Encode(obj.ParticipationFeeMint),
		obj.ParticipationFeeType,
		obj.Rewards,
		obj.Winners,
		obj.RequirementToParticipate,
		obj.RequirementAmountToken,
		base58.Encode(obj.RequirementMint),
		obj.RequiredTokenDecimals,
		obj.RewardDecimals,
		obj.ParticipationFeeDecimals,
		obj.IsIncreasingPool,
		obj.TransferFeeToPool,
		obj.RaffleTime,
		obj.WinnerCount,
		obj.CurrentWinnerCount,
		obj.NumberOfEntitledWinners,
		obj.FeeCollected,
		obj.Bump,
	)
}
