package token

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/solana"
	"github.com/code-payments/raffle-client/pkg/solana/system"
)

// ProgramKey is the original SPL token program.
//
// TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

// Program2022Key is the token-2022 program. Its base instructions and
// account layouts are compatible with ProgramKey.
var Program2022Key = mustBase58Decode("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

var ErrNotTokenProgram = errors.New("not a token program")

type Command byte

const (
	CommandInitializeMint Command = 0
	CommandTransfer       Command = 3
	CommandMintTo         Command = 7
	CommandMintToChecked  Command = 14
)

// IsTokenProgram reports whether key is one of the supported token programs.
func IsTokenProgram(key ed25519.PublicKey) bool {
	return bytes.Equal(key, ProgramKey) || bytes.Equal(key, Program2022Key)
}

// InitializeMint initializes an allocated mint account. A nil freeze
// authority leaves the mint without one.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L29-L42
func InitializeMint(tokenProgram, mint, mintAuthority, freezeAuthority ed25519.PublicKey, decimals byte) solana.Instruction {
	// # Account references
	//   0. [WRITE] The mint to initialize.
	//   1. [] Rent sysvar
	data := make([]byte, 1+1+32+1+32)
	data[0] = byte(CommandInitializeMint)
	data[1] = decimals
	copy(data[2:], mintAuthority)
	if len(freezeAuthority) > 0 {
		data[34] = 1
		copy(data[35:], freezeAuthority)
	}

	return solana.NewInstruction(
		tokenProgram,
		data,
		solana.NewAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

// MintToChecked mints amount base units into dest, asserting the mint's
// decimals.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L329-L343
func MintToChecked(tokenProgram, mint, dest, authority ed25519.PublicKey, amount uint64, decimals byte) solana.Instruction {
	// # Account references
	//   0. [WRITE] The mint.
	//   1. [WRITE] The account to mint tokens to.
	//   2. [SIGNER] The mint's minting authority.
	data := make([]byte, 1+8+1)
	data[0] = byte(CommandMintToChecked)
	binary.LittleEndian.PutUint64(data[1:], amount)
	data[9] = decimals

	return solana.NewInstruction(
		tokenProgram,
		data,
		solana.NewAccountMeta(mint, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

// GetCommand returns the token command of the instruction at index.
func GetCommand(m solana.Message, index int) (Command, error) {
	if index >= len(m.Instructions) {
		return 0, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !IsTokenProgram(m.Accounts[i.ProgramIndex]) {
		return 0, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 {
		return 0, solana.ErrIncorrectInstruction
	}

	return Command(i.Data[0]), nil
}

func mustBase58Decode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
