package raffle

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	ParticipationAccountSize = (32 + // participant_address
		8 + // participant_no
		8 + // raffle_no
		1 + // entitled
		1 + // prize_claimed
		8) // index_in_winners

	ParticipationAddressOffset       = 0
	ParticipationParticipantNoOffset = ParticipationAddressOffset + 32
	ParticipationRaffleNoOffset      = ParticipationParticipantNoOffset + 8
	ParticipationEntitledOffset      = ParticipationRaffleNoOffset + 8
)

type ParticipationAccount struct {
	ParticipantAddress ed25519.PublicKey
	ParticipantNo      uint64
	RaffleNo           uint64
	Entitled           uint8
	PrizeClaimed       uint8
	IndexInWinners     uint64
}

func (obj *ParticipationAccount) IsEntitled() bool {
	return obj.Entitled == 1
}

func (obj *ParticipationAccount) IsPrizeClaimed() bool {
	return obj.PrizeClaimed == 1
}

func (obj *ParticipationAccount) Marshal() []byte {
	data := make([]byte, ParticipationAccountSize)

	var offset int
	putKey(data, obj.ParticipantAddress, &offset)
	putUint64(data, obj.ParticipantNo, &offset)
	putUint64(data, obj.RaffleNo, &offset)
	putUint8(data, obj.Entitled, &offset)
	putUint8(data, obj.PrizeClaimed, &offset)
	putUint64(data, obj.IndexInWinners, &offset)
	return data
}

func (obj *ParticipationAccount) Unmarshal(data []byte) error {
	if len(data) < ParticipationAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	getKey(data, &obj.ParticipantAddress, &offset)
	getUint64(data, &obj.ParticipantNo, &offset)
	getUint64(data, &obj.RaffleNo, &offset)
	getUint8(data, &obj.Entitled, &offset)
	getUint8(data, &obj.PrizeClaimed, &offset)
	getUint64(data, &obj.IndexInWinners, &offset)
	return nil
}

func (obj *ParticipationAccount) String() string {
	return fmt.Sprintf(
		"Participation{participant_address=%s,participant_no=%d,raffle_no=%d,entitled=%d,prize_claimed=%d,index_in_winners=%d}",
		base58.Encode(obj.ParticipantAddress),
		obj.ParticipantNo,
		obj.RaffleNo,
		obj.Entitled,
		obj.PrizeClaimed,
		obj.IndexInWinners,
	)
}
