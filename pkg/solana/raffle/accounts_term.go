package raffle

import (
	"fmt"
	"time"
)

const (
	TermAccountSize = (1 + // initialized
		8 + // fee_percent
		8 + // expiration_time
		8) // maximum_winner_count
)

// TermAccount holds the tunable global parameters. It doubles as the
// update_terms argument block.
type TermAccount struct {
	Initialized        uint8
	FeePercent         uint64
	ExpirationTime     uint64
	MaximumWinnerCount uint64
}

func (obj *TermAccount) Marshal() []byte {
	data := make([]byte, TermAccountSize)

	var offset int
	putUint8(data, obj.Initialized, &offset)
	putUint64(data, obj.FeePercent, &offset)
	putUint64(data, obj.ExpirationTime, &offset)
	putUint64(data, obj.MaximumWinnerCount, &offset)
	return data
}

func (obj *TermAccount) Unmarshal(data []byte) error {
	if len(data) < TermAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	getUint8(data, &obj.Initialized, &offset)
	getUint64(data, &obj.FeePercent, &offset)
	getUint64(data, &obj.ExpirationTime, &offset)
	getUint64(data, &obj.MaximumWinnerCount, &offset)
	return nil
}

// Expiration returns the expiration time as a duration.
func (obj *TermAccount) Expiration() time.Duration {
	return time.Duration(obj.ExpirationTime) * time.Second
}

func (obj *TermAccount) String() string {
	return fmt.Sprintf(
		"Term{initialized=%d,fee_percent=%d,expiration_time=%s,maximum_winner_count=%d}",
		obj.Initialized,
		obj.FeePercent,
		obj.Expiration(),
		obj.MaximumWinnerCount,
	)
}
