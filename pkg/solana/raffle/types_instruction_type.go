package raffle

import "fmt"

type InstructionType uint8

const (
	InstructionTypeInitRaffle            InstructionType = 0
	InstructionTypeJoinRaffle            InstructionType = 1
	InstructionTypeChooseWinner          InstructionType = 2
	InstructionTypePublishWinner         InstructionType = 3
	InstructionTypeInitCounter           InstructionType = 4
	InstructionTypeCloseAccount          InstructionType = 5
	InstructionTypeInitTerm              InstructionType = 6
	InstructionTypeInitConfig            InstructionType = 7
	InstructionTypeSetConfig             InstructionType = 8
	InstructionTypeUpdateTerms           InstructionType = 9
	InstructionTypeCollectFee            InstructionType = 10
	InstructionTypeCollectFeeToken       InstructionType = 20
	InstructionTypeInitFeeType           InstructionType = 35
	InstructionTypeInitRewardType        InstructionType = 36
	InstructionTypeInitFeeCollector      InstructionType = 40
	InstructionTypeClaimPrize            InstructionType = 100
	InstructionTypeCollectFeeInitializer InstructionType = 200
	InstructionTypeFreezeTest            InstructionType = 255
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitRaffle:
		return "init_raffle"
	case InstructionTypeJoinRaffle:
		return "join_raffle"
	case InstructionTypeChooseWinner:
		return "choose_winner"
	case InstructionTypePublishWinner:
		return "publish_winner"
	case InstructionTypeInitCounter:
		return "init_counter"
	case InstructionTypeCloseAccount:
		return "close_account"
	case InstructionTypeInitTerm:
		return "init_term"
	case InstructionTypeInitConfig:
		return "init_config"
	case InstructionTypeSetConfig:
		return "set_config"
	case InstructionTypeUpdateTerms:
		return "update_terms"
	case InstructionTypeCollectFee:
		return "collect_fee"
	case InstructionTypeCollectFeeToken:
		return "collect_fee_token"
	case InstructionTypeInitFeeType:
		return "init_fee_type"
	case InstructionTypeInitRewardType:
		return "init_reward_type"
	case InstructionTypeInitFeeCollector:
		return "init_fee_collector"
	case InstructionTypeClaimPrize:
		return "claim_prize"
	case InstructionTypeCollectFeeInitializer:
		return "collect_fee_initializer"
	case InstructionTypeFreezeTest:
		return "freeze_test"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

// GetInstructionType returns the opcode of serialized instruction data.
func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) == 0 {
		return 0, ErrInvalidInstructionData
	}
	return InstructionType(data[0]), nil
}
