package raffle

import (
	"crypto/ed25519"

	"github.com/code-payments/raffle-client/pkg/solana"
)

// Instructions in this file are restricted to the configured authorities.

type InitConfigInstructionAccounts struct {
	Authorities [4]ed25519.PublicKey
	Config      ed25519.PublicKey
}

// NewInitConfigInstruction bootstraps the authority set. The first authority
// pays and signs.
func NewInitConfigInstruction(program ed25519.PublicKey, accounts *InitConfigInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeInitConfig)},
		solana.NewAccountMeta(accounts.Authorities[0], true),
		solana.NewReadonlyAccountMeta(accounts.Authorities[1], false),
		solana.NewReadonlyAccountMeta(accounts.Authorities[2], false),
		solana.NewReadonlyAccountMeta(accounts.Authorities[3], false),
		solana.NewAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type SetConfigInstructionAccounts struct {
	Authority   ed25519.PublicKey
	Authorities [4]ed25519.PublicKey
	Config      ed25519.PublicKey
}

func NewSetConfigInstruction(program ed25519.PublicKey, accounts *SetConfigInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeSetConfig)},
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
		solana.NewReadonlyAccountMeta(accounts.Authorities[0], false),
		solana.NewReadonlyAccountMeta(accounts.Authorities[1], false),
		solana.NewReadonlyAccountMeta(accounts.Authorities[2], false),
		solana.NewReadonlyAccountMeta(accounts.Authorities[3], false),
		solana.NewAccountMeta(accounts.Config, false),
	)
}

type InitTermInstructionAccounts struct {
	Authority ed25519.PublicKey
	Term      ed25519.PublicKey
	Config    ed25519.PublicKey
}

func NewInitTermInstruction(program ed25519.PublicKey, accounts *InitTermInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeInitTerm)},
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Term, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type InitCounterInstructionAccounts struct {
	Authority ed25519.PublicKey
	Counter   ed25519.PublicKey
}

func NewInitCounterInstruction(program ed25519.PublicKey, accounts *InitCounterInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeInitCounter)},
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Counter, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type InitFeeCollectorInstructionAccounts struct {
	Authority    ed25519.PublicKey
	FeeCollector ed25519.PublicKey
	Config       ed25519.PublicKey
}

func NewInitFeeCollectorInstruction(program ed25519.PublicKey, accounts *InitFeeCollectorInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeInitFeeCollector)},
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.FeeCollector, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type UpdateTermsInstructionAccounts struct {
	Authority ed25519.PublicKey
	Term      ed25519.PublicKey
	Config    ed25519.PublicKey
}

func NewUpdateTermsInstruction(
	program ed25519.PublicKey,
	accounts *UpdateTermsInstructionAccounts,
	args *TermAccount,
) solana.Instruction {
	var offset int

	data := make([]byte, 1+TermAccountSize)
	putInstructionType(data, InstructionTypeUpdateTerms, &offset)
	copy(data[offset:], args.Marshal())

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.Term, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
	)
}

type CollectFeeInstructionAccounts struct {
	Authority    ed25519.PublicKey
	FeeCollector ed25519.PublicKey
	Config       ed25519.PublicKey
}

// NewCollectFeeInstruction sweeps native fees from the fee collector to the
// signing authority.
func NewCollectFeeInstruction(program ed25519.PublicKey, accounts *CollectFeeInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeCollectFee)},
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.FeeCollector, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
	)
}

type CollectFeeTokenInstructionAccounts struct {
	Authority       ed25519.PublicKey
	AuthorityAta    ed25519.PublicKey
	FeeCollector    ed25519.PublicKey
	FeeCollectorAta ed25519.PublicKey
	TokenProgram    ed25519.PublicKey
	Mint            ed25519.PublicKey
	Config          ed25519.PublicKey
}

func NewCollectFeeTokenInstruction(program ed25519.PublicKey, accounts *CollectFeeTokenInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeCollectFeeToken)},
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.AuthorityAta, false),
		solana.NewAccountMeta(accounts.FeeCollector, false),
		solana.NewAccountMeta(accounts.FeeCollectorAta, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
	)
}

type InitFeeTypeInstructionAccounts struct {
	Authority       ed25519.PublicKey
	FeeType         ed25519.PublicKey
	FeeCollector    ed25519.PublicKey
	FeeCollectorAta ed25519.PublicKey
	Mint            ed25519.PublicKey
	TokenProgram    ed25519.PublicKey
	Config          ed25519.PublicKey
}

func NewInitFeeTypeInstruction(
	program ed25519.PublicKey,
	accounts *InitFeeTypeInstructionAccounts,
	args *RewardFeeTypeAccount,
) solana.Instruction {
	return solana.NewInstruction(
		program,
		rewardFeeTypeInstructionData(InstructionTypeInitFeeType, args),
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.FeeType, false),
		solana.NewReadonlyAccountMeta(accounts.FeeCollector, false),
		solana.NewAccountMeta(accounts.FeeCollectorAta, false),
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
		solana.NewReadonlyAccountMeta(SYSVAR_RENT_PUBKEY, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
		solana.NewReadonlyAccountMeta(ASSOCIATED_TOKEN_PROGRAM_ID, false),
	)
}

type InitRewardTypeInstructionAccounts struct {
	Authority  ed25519.PublicKey
	RewardType ed25519.PublicKey
	Config     ed25519.PublicKey
}

func NewInitRewardTypeInstruction(
	program ed25519.PublicKey,
	accounts *InitRewardTypeInstructionAccounts,
	args *RewardFeeTypeAccount,
) solana.Instruction {
	return solana.NewInstruction(
		program,
		rewardFeeTypeInstructionData(InstructionTypeInitRewardType, args),
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewAccountMeta(accounts.RewardType, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func rewardFeeTypeInstructionData(instructionType InstructionType, args *RewardFeeTypeAccount) []byte {
	var offset int

	data := make([]byte, 1+RewardFeeTypeAccountSize)
	putInstructionType(data, instructionType, &offset)
	copy(data[offset:], args.Marshal())
	return data
}

type CloseAccountInstructionAccounts struct {
	Authority ed25519.PublicKey
	Config    ed25519.PublicKey

	// Program owned accounts whose rent is reclaimed
	Targets []ed25519.PublicKey
}

func NewCloseAccountInstruction(program ed25519.PublicKey, accounts *CloseAccountInstructionAccounts) solana.Instruction {
	metas := []solana.AccountMeta{
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
	}
	for _, target := range accounts.Targets {
		metas = append(metas, solana.NewAccountMeta(target, false))
	}

	return solana.NewInstruction(
		program,
		[]byte{byte(InstructionTypeCloseAccount)},
		metas...,
	)
}
