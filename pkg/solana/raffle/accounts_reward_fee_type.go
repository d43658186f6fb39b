package raffle

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	RewardFeeTypeAccountSize = (1 + // initialized
		32 + // mint
		1 + // decimals
		8) // no

	RewardFeeTypeInitializedOffset = 0
)

// RewardFeeTypeAccount registers a token that raffles may use for rewards
// (initialized = 2) or participation fees (initialized = 3). It is also the
// argument block of init_fee_type and init_reward_type.
type RewardFeeTypeAccount struct {
	Initialized uint8
	Mint        ed25519.PublicKey
	Decimals    uint8
	No          uint64
}

// IsNativeFee reports whether a fee type record is the native fee. Reward
// types have no native variant; number 1 there is an ordinary token type.
func (obj *RewardFeeTypeAccount) IsNativeFee() bool {
	return obj.Initialized == FeeTypeInitialized && obj.No == NativeTypeNo
}

func (obj *RewardFeeTypeAccount) Marshal() []byte {
	data := make([]byte, RewardFeeTypeAccountSize)

	var offset int
	putUint8(data, obj.Initialized, &offset)
	putKey(data, obj.Mint, &offset)
	putUint8(data, obj.Decimals, &offset)
	putUint64(data, obj.No, &offset)
	return data
}

func (obj *RewardFeeTypeAccount) Unmarshal(data []byte) error {
	if len(data) < RewardFeeTypeAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	getUint8(data, &obj.Initialized, &offset)
	getKey(data, &obj.Mint, &offset)
	getUint8(data, &obj.Decimals, &offset)
	getUint64(data, &obj.No, &offset)
	return nil
}

func (obj *RewardFeeTypeAccount) String() string {
	return fmt.Sprintf(
		"RewardFeeType{initialized=%d,mint=%s,decimals=%d,no=%d}",
		obj.Initialized,
		base58.Encode(obj.Mint),
		obj.Decimals,
		obj.No,
	)
}
