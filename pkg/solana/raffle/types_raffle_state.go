package raffle

import "fmt"

type RaffleState uint8

const (
	RaffleStateUnknown RaffleState = iota
	RaffleStateActive
	RaffleStateFinalizedUnpublished
	RaffleStateFinalizedPublished
)

func (s RaffleState) String() string {
	switch s {
	case RaffleStateActive:
		return "active"
	case RaffleStateFinalizedUnpublished:
		return "finalized_unpublished"
	case RaffleStateFinalizedPublished:
		return "finalized_published"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// ParseRaffleState accepts either the numeric tag or its name.
func ParseRaffleState(value string) (RaffleState, error) {
	for _, s := range []RaffleState{RaffleStateActive, RaffleStateFinalizedUnpublished, RaffleStateFinalizedPublished} {
		if value == s.String() || value == fmt.Sprintf("%d", uint8(s)) {
			return s, nil
		}
	}
	return RaffleStateUnknown, fmt.Errorf("invalid raffle state: %q", value)
}

// RewardFeeType initialized sentinels.
const (
	RewardTypeInitialized uint8 = 2
	FeeTypeInitialized    uint8 = 3
)

// TermUpdated is the Term initialized value written by update_terms.
const TermUpdated uint8 = 2
