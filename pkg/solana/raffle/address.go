package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

var (
	ConfigPrefix        = []byte("config")
	TermPrefix          = []byte("term")
	CounterPrefix       = []byte("counter")
	FeeCollectorPrefix  = []byte("fee_collector")
	FeeTypePrefix       = []byte("feetype")
	RewardTypePrefix    = []byte("rewtype")
	RafflePrefix        = []byte("raffle")
	ParticipationPrefix = []byte("raf")
	ParticipantPrefix   = []byte("par")
)

func GetConfigAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, ConfigPrefix)
}

func GetTermAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, TermPrefix)
}

func GetCounterAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, CounterPrefix)
}

func GetFeeCollectorAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, FeeCollectorPrefix)
}

type GetFeeTypeAddressArgs struct {
	No uint64
}

func GetFeeTypeAddress(program ed25519.PublicKey, args *GetFeeTypeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		FeeTypePrefix,
		Uint64Seed(args.No),
	)
}

type GetRewardTypeAddressArgs struct {
	No uint64
}

func GetRewardTypeAddress(program ed25519.PublicKey, args *GetRewardTypeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		RewardTypePrefix,
		Uint64Seed(args.No),
	)
}

type GetRaffleAddressArgs struct {
	RaffleNo uint64
}

func GetRaffleAddress(program ed25519.PublicKey, args *GetRaffleAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		RafflePrefix,
		Uint64Seed(args.RaffleNo),
	)
}

type GetParticipationAddressArgs struct {
	RaffleNo uint64
	ID       ParticipationID
}

// GetParticipationAddress derives a participation record address. The last
// seed is either the participant wallet or the participant number, depending
// on how the ID was constructed.
func GetParticipationAddress(program ed25519.PublicKey, args *GetParticipationAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		ParticipationPrefix,
		Uint64Seed(args.RaffleNo),
		ParticipantPrefix,
		args.ID.Seed(),
	)
}
