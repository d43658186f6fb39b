package raffle

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// ParticipationID selects the seed scheme of a participation record. Raffles
// allowing a single entry per wallet key records by wallet, raffles allowing
// multiple entries key them by participant number.
type ParticipationID struct {
	wallet   ed25519.PublicKey
	number   uint64
	byNumber bool
}

func ParticipationByWallet(wallet ed25519.PublicKey) ParticipationID {
	return ParticipationID{wallet: wallet}
}

func ParticipationByNumber(participantNo uint64) ParticipationID {
	return ParticipationID{number: participantNo, byNumber: true}
}

// NewParticipationID picks the scheme the raffle uses. The wallet is used for
// single entry raffles and the participant number otherwise.
func NewParticipationID(raffle *RaffleAccount, wallet ed25519.PublicKey, participantNo uint64) ParticipationID {
	if raffle.AllowsMultipleParticipation() {
		return ParticipationByNumber(participantNo)
	}
	return ParticipationByWallet(wallet)
}

func (id ParticipationID) IsByNumber() bool {
	return id.byNumber
}

func (id ParticipationID) Wallet() ed25519.PublicKey {
	return id.wallet
}

func (id ParticipationID) Number() uint64 {
	return id.number
}

func (id ParticipationID) Seed() []byte {
	if id.byNumber {
		return Uint64Seed(id.number)
	}
	return id.wallet
}

func (id ParticipationID) Equal(other ParticipationID) bool {
	if id.byNumber != other.byNumber {
		return false
	}
	if id.byNumber {
		return id.number == other.number
	}
	return bytes.Equal(id.wallet, other.wallet)
}

func (id ParticipationID) String() string {
	if id.byNumber {
		return fmt.Sprintf("number:%d", id.number)
	}
	return "wallet:" + base58.Encode(id.wallet)
}
