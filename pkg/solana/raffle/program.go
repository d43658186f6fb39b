package raffle

import (
	"crypto/ed25519"
	"errors"
	"strings"

	"github.com/code-payments/raffle-client/pkg/solana/system"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrInvalidVectorLength    = errors.New("vector length exceeds remaining data")
	ErrUnknownDeployment      = errors.New("unknown deployment")
)

var (
	SYSTEM_PROGRAM_ID           = system.ProgramKey
	SYSVAR_RENT_PUBKEY          = system.RentSysVar
	SPL_TOKEN_PROGRAM_ID        = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
)

var (
	RNG_PROGRAM_ID      = mustBase58Decode("FEED1qspts3SRuoEyG29NMNpsTKX8yG9NGMinNC4GeYB")
	RNG_ENTROPY_ACCOUNT = mustBase58Decode("CTyyJKQHo6JhtVYBaXcota9NozebV3vHF872S8ag2TUS")
	RNG_FEE_ACCOUNT     = mustBase58Decode("WjtcArL5m5peH8ZmAdTtyFF9qjyNxjQ2qp4Gz1YEQdy")
)

// Deployment identifies one deployed copy of the raffle program and the
// randomness oracle it draws winners with.
type Deployment struct {
	Name           string
	ProgramID      ed25519.PublicKey
	RngProgram     ed25519.PublicKey
	EntropyAccount ed25519.PublicKey
	RngFeeAccount  ed25519.PublicKey
}

var (
	B2C = Deployment{
		Name:           "b2c",
		ProgramID:      mustBase58Decode("H7gQ6ueKQbPMYLnLyxFYxr1hFFLKHDyyMD9Q8MJHuGHm"),
		RngProgram:     RNG_PROGRAM_ID,
		EntropyAccount: RNG_ENTROPY_ACCOUNT,
		RngFeeAccount:  RNG_FEE_ACCOUNT,
	}

	B2B = Deployment{
		Name:           "b2b",
		ProgramID:      mustBase58Decode("1zStXFfLReao29nQL3saNAdH8S5oVcEVwzorBX37aPa"),
		RngProgram:     RNG_PROGRAM_ID,
		EntropyAccount: RNG_ENTROPY_ACCOUNT,
		RngFeeAccount:  RNG_FEE_ACCOUNT,
	}
)

// GetDeployment returns the deployment with the given name. The empty name
// selects B2C.
func GetDeployment(name string) (Deployment, error) {
	switch strings.ToLower(name) {
	case "", B2C.Name:
		return B2C, nil
	case B2B.Name:
		return B2B, nil
	default:
		return Deployment{}, ErrUnknownDeployment
	}
}

const (
	// NativeTypeNo is the fee/reward type number of the chain's native token.
	NativeTypeNo uint64 = 1
)
