package raffle

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/raffle-client/pkg/solana"
	"github.com/code-payments/raffle-client/pkg/testutil"
)

type expectedMeta struct {
	key      ed25519.PublicKey
	writable bool
	signer   bool
}

func assertAccounts(t *testing.T, expected []expectedMeta, actual []solana.AccountMeta) {
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.EqualValues(t, expected[i].key, actual[i].PublicKey, "account %d", i)
		assert.Equal(t, expected[i].writable, actual[i].IsWritable, "account %d writable", i)
		assert.Equal(t, expected[i].signer, actual[i].IsSigner, "account %d signer", i)
	}
}

func TestInitRaffleInstruction(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 16)

	args := &InitRaffleInstructionArgs{
		IsUnlimitedParticipantAllowed: 0,
		Name:                          "native",
		ParticipationFee:              0,
		ParticipantsRequired:          2,
		RaffleTime:                    600,
		MultipleParticipationAllowed:  0,
		ParticipationFeeType:          1,
		RewardType:                    2,
		Rewards:                       []uint64{100_000_000},
		RequirementToParticipate:      0,
		RequirementMint:               keys[15],
		WinnerCount:                   1,
		TransferFeeToPool:             []uint64{},
	}

	accounts := &InitRaffleInstructionAccounts{
		Initializer:          keys[0],
		InitializerRewardAta: keys[1],
		Raffle:               keys[2],
		RaffleRewardAta:      keys[3],
		RaffleFeeAta:         keys[4],
		Counter:              keys[5],
		Term:                 keys[6],
		RewardType:           keys[7],
		FeeType:              keys[8],
		RewardMint:           keys[9],
		RewardTokenProgram:   keys[10],
		FeeMint:              keys[11],
		FeeTokenProgram:      keys[12],
	}

	ixn := NewInitRaffleInstruction(program, accounts, args)
	assert.EqualValues(t, program, ixn.Program)

	require.Len(t, ixn.Data, 1+MinInitRaffleInstructionArgsSize+8)
	assert.EqualValues(t, 0, ixn.Data[0])

	// participation_fee follows the flag and the 32 byte name
	assert.Equal(t, make([]byte, 8), ixn.Data[1+1+32:1+1+32+8])

	var decoded InitRaffleInstructionArgs
	require.NoError(t, decoded.Unmarshal(ixn.Data[1:]))
	assert.Equal(t, args, &decoded)
	assert.Equal(t, []uint64{100_000_000}, decoded.Rewards)
	assert.Equal(t, args.Marshal(), ixn.Data[1:])

	base := []expectedMeta{
		{keys[0], true, true},
		{keys[1], true, false},
		{keys[2], true, false},
		{keys[3], true, false},
		{keys[4], true, false},
		{keys[5], true, false},
		{keys[6], false, false},
		{keys[7], false, false},
		{keys[8], false, false},
		{keys[9], false, false},
		{keys[10], false, false},
		{keys[11], false, false},
		{keys[12], false, false},
		{SYSVAR_RENT_PUBKEY, false, false},
	}
	trailer := []expectedMeta{
		{SYSTEM_PROGRAM_ID, false, false},
		{ASSOCIATED_TOKEN_PROGRAM_ID, false, false},
	}
	assertAccounts(t, append(append([]expectedMeta{}, base...), trailer...), ixn.Accounts)

	accounts.Requirement = &InitRaffleRequirementAccounts{
		RaffleAta:    keys[13],
		Mint:         keys[15],
		TokenProgram: keys[14],
	}
	ixn = NewInitRaffleInstruction(program, accounts, args)

	expected := append([]expectedMeta{}, base...)
	expected = append(expected,
		expectedMeta{keys[13], true, false},
		expectedMeta{keys[15], false, false},
		expectedMeta{keys[14], false, false},
	)
	expected = append(expected, trailer...)
	assertAccounts(t, expected, ixn.Accounts)
}

func TestInitRaffleInstructionArgs_Malformed(t *testing.T) {
	args := &InitRaffleInstructionArgs{
		Name:              "x",
		Rewards:           []uint64{1, 2, 3},
		RequirementMint:   make([]byte, 32),
		TransferFeeToPool: []uint64{4},
	}
	data := args.Marshal()

	var decoded InitRaffleInstructionArgs
	assert.Error(t, decoded.Unmarshal(data[:len(data)-1]))
	assert.Error(t, decoded.Unmarshal(data[:MinInitRaffleInstructionArgsSize-1]))
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, args, &decoded)
}

func TestJoinRaffleInstruction(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 11)

	prefix := []expectedMeta{
		{keys[0], true, true},
		{keys[1], true, false},
		{keys[2], true, false},
	}

	fee := &TokenTransferAccounts{Mint: keys[3], ParticipantAta: keys[4], RaffleAta: keys[5], TokenProgram: keys[6]}
	feeMetas := []expectedMeta{
		{keys[3], false, false},
		{keys[4], true, false},
		{keys[5], true, false},
		{keys[6], false, false},
	}

	requirement := &TokenTransferAccounts{Mint: keys[7], ParticipantAta: keys[8], RaffleAta: keys[9], TokenProgram: keys[10]}
	requirementMetas := []expectedMeta{
		{keys[7], false, false},
		{keys[8], true, false},
		{keys[9], true, false},
		{keys[10], false, false},
	}

	system := expectedMeta{SYSTEM_PROGRAM_ID, false, false}

	for _, tc := range []struct {
		name        string
		fee         *TokenTransferAccounts
		requirement *TokenTransferAccounts
		tail        []expectedMeta
	}{
		{"native", nil, nil, []expectedMeta{system, system}},
		{"token", fee, nil, append(append([]expectedMeta{}, feeMetas...), system)},
		{"native with requirement", nil, requirement, append(append([]expectedMeta{system}, requirementMetas...), system)},
		{"token with requirement", fee, requirement, append(append(append([]expectedMeta{}, feeMetas...), requirementMetas...), system)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ixn := NewJoinRaffleInstruction(program, &JoinRaffleInstructionAccounts{
				Participant:   keys[0],
				Raffle:        keys[1],
				Participation: keys[2],
				Fee:           tc.fee,
				Requirement:   tc.requirement,
			})

			assert.Equal(t, []byte{1}, ixn.Data)
			assertAccounts(t, append(append([]expectedMeta{}, prefix...), tc.tail...), ixn.Accounts)
		})
	}
}

func TestChooseWinnerInstruction(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 7)

	accounts := &ChooseWinnerInstructionAccounts{
		Authority:      keys[0],
		Raffle:         keys[1],
		EntropyAccount: B2C.EntropyAccount,
		RngFeeAccount:  B2C.RngFeeAccount,
		RngProgram:     B2C.RngProgram,
		Config:         keys[2],
	}

	ixn := NewChooseWinnerInstruction(program, accounts, &CallLimitInstructionArgs{Limit: 0x0a0b})
	assert.Equal(t, []byte{2, 0x0b, 0x0a, 0, 0, 0, 0, 0, 0}, ixn.Data)

	var limit CallLimitInstructionArgs
	require.NoError(t, limit.Unmarshal(ixn.Data[1:]))
	assert.EqualValues(t, 0x0a0b, limit.Limit)

	expected := []expectedMeta{
		{keys[0], true, true},
		{keys[1], true, false},
		{B2C.EntropyAccount, true, false},
		{B2C.RngFeeAccount, true, false},
		{B2C.RngProgram, false, false},
		{SYSTEM_PROGRAM_ID, false, false},
		{keys[2], false, false},
	}
	assertAccounts(t, expected, ixn.Accounts)

	accounts.Refund = &ChooseWinnerRefundAccounts{
		InitializerRewardAta: keys[3],
		RaffleRewardAta:      keys[4],
		RewardMint:           keys[5],
		RewardTokenProgram:   keys[6],
	}
	ixn = NewChooseWinnerInstruction(program, accounts, &CallLimitInstructionArgs{Limit: 1})
	expected = append(expected,
		expectedMeta{keys[3], true, false},
		expectedMeta{keys[4], true, false},
		expectedMeta{keys[5], false, false},
		expectedMeta{keys[6], false, false},
	)
	assertAccounts(t, expected, ixn.Accounts)
}

func TestPublishWinnerInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)

	ixn := NewPublishWinnerInstruction(B2C.ProgramID, &PublishWinnerInstructionAccounts{
		Raffle:  keys[0],
		Winners: keys[1:],
	})

	assert.Equal(t, []byte{3}, ixn.Data)
	assertAccounts(t, []expectedMeta{
		{keys[0], true, false},
		{keys[1], true, false},
		{keys[2], true, false},
	}, ixn.Accounts)
}

func TestClaimPrizeInstruction(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 11)

	accounts := &ClaimPrizeInstructionAccounts{
		Raffle:             keys[0],
		RaffleRewardAta:    keys[1],
		Participation:      keys[2],
		Winner:             keys[3],
		WinnerRewardAta:    keys[4],
		RewardMint:         keys[5],
		RewardTokenProgram: keys[6],
	}

	base := []expectedMeta{
		{keys[0], true, false},
		{keys[1], true, false},
		{keys[2], true, false},
		{keys[3], false, false},
		{keys[4], true, false},
		{keys[5], false, false},
		{keys[6], false, false},
		{SYSVAR_RENT_PUBKEY, false, false},
	}
	trailer := []expectedMeta{
		{SYSTEM_PROGRAM_ID, false, false},
		{ASSOCIATED_TOKEN_PROGRAM_ID, false, false},
	}

	ixn := NewClaimPrizeInstruction(program, accounts)
	assert.Equal(t, []byte{100}, ixn.Data)
	assertAccounts(t, append(append([]expectedMeta{}, base...), trailer...), ixn.Accounts)

	accounts.Requirement = &ClaimPrizeRequirementAccounts{
		RaffleAta:      keys[7],
		ParticipantAta: keys[8],
		Mint:           keys[9],
		TokenProgram:   keys[10],
	}
	ixn = NewClaimPrizeInstruction(program, accounts)

	expected := append([]expectedMeta{}, base...)
	expected = append(expected,
		expectedMeta{keys[7], true, false},
		expectedMeta{keys[8], true, false},
		expectedMeta{keys[9], false, false},
		expectedMeta{keys[10], false, false},
	)
	assertAccounts(t, append(expected, trailer...), ixn.Accounts)
}

func TestCollectFeeInitializerInstruction(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 9)

	accounts := &CollectFeeInitializerInstructionAccounts{
		Initializer:  keys[0],
		Raffle:       keys[1],
		Term:         keys[2],
		FeeCollector: keys[3],
	}

	ixn := NewCollectFeeInitializerInstruction(program, accounts)
	assert.Equal(t, []byte{200}, ixn.Data)
	assertAccounts(t, []expectedMeta{
		{keys[0], true, true},
		{keys[1], true, false},
		{keys[2], true, false},
		{keys[3], true, false},
	}, ixn.Accounts)

	accounts.Token = &CollectFeeInitializerTokenAccounts{
		FeeCollectorAta: keys[4],
		InitializerAta:  keys[5],
		RaffleAta:       keys[6],
		TokenProgram:    keys[7],
		Mint:            keys[8],
	}
	ixn = NewCollectFeeInitializerInstruction(program, accounts)
	assertAccounts(t, []expectedMeta{
		{keys[0], true, true},
		{keys[1], true, false},
		{keys[2], false, false},
		{keys[3], true, false},
		{keys[4], true, false},
		{keys[5], true, false},
		{keys[6], true, false},
		{keys[7], false, false},
		{keys[8], false, false},
		{SYSTEM_PROGRAM_ID, false, false},
		{ASSOCIATED_TOKEN_PROGRAM_ID, false, false},
	}, ixn.Accounts)
}

func TestFreezeTestInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 5)

	ixn := NewFreezeTestInstruction(B2C.ProgramID, &FreezeTestInstructionAccounts{
		Initializer:     keys[0],
		Raffle:          keys[1],
		FeeTokenProgram: keys[2],
		FeeMint:         keys[3],
		ParticipantAta:  keys[4],
	}, &FreezeTestInstructionArgs{X: 9})

	assert.Equal(t, []byte{255, 9, 0, 0, 0, 0, 0, 0, 0}, ixn.Data)
	assertAccounts(t, []expectedMeta{
		{keys[0], true, true},
		{keys[1], false, false},
		{keys[2], false, false},
		{keys[3], true, false},
		{keys[4], false, false},
		{SYSVAR_RENT_PUBKEY, false, false},
	}, ixn.Accounts)
}

func TestAdminInstructions(t *testing.T) {
	program := B2C.ProgramID
	keys := testutil.GenerateSolanaKeys(t, 10)
	authorities := [4]ed25519.PublicKey{keys[0], keys[1], keys[2], keys[3]}
	authority, config, target := keys[1], keys[4], keys[5]

	term := &TermAccount{Initialized: TermUpdated, FeePercent: 3, ExpirationTime: 60, MaximumWinnerCount: 5}
	feeType := &RewardFeeTypeAccount{Initialized: FeeTypeInitialized, Mint: keys[6], Decimals: 6, No: 2}
	rewardType := &RewardFeeTypeAccount{Initialized: RewardTypeInitialized, Mint: keys[6], Decimals: 6, No: 2}

	for _, tc := range []struct {
		name     string
		ixn      solana.Instruction
		data     []byte
		accounts []expectedMeta
	}{
		{
			name: "init_config",
			ixn:  NewInitConfigInstruction(program, &InitConfigInstructionAccounts{Authorities: authorities, Config: config}),
			data: []byte{7},
			accounts: []expectedMeta{
				{keys[0], true, true},
				{keys[1], false, false},
				{keys[2], false, false},
				{keys[3], false, false},
				{config, true, false},
				{SYSTEM_PROGRAM_ID, false, false},
			},
		},
		{
			name: "set_config",
			ixn:  NewSetConfigInstruction(program, &SetConfigInstructionAccounts{Authority: authority, Authorities: authorities, Config: config}),
			data: []byte{8},
			accounts: []expectedMeta{
				{authority, false, true},
				{keys[0], false, false},
				{keys[1], false, false},
				{keys[2], false, false},
				{keys[3], false, false},
				{config, true, false},
			},
		},
		{
			name: "init_term",
			ixn:  NewInitTermInstruction(program, &InitTermInstructionAccounts{Authority: authority, Term: keys[7], Config: config}),
			data: []byte{6},
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[7], true, false},
				{config, false, false},
				{SYSTEM_PROGRAM_ID, false, false},
			},
		},
		{
			name: "init_counter",
			ixn:  NewInitCounterInstruction(program, &InitCounterInstructionAccounts{Authority: authority, Counter: keys[7]}),
			data: []byte{4},
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[7], true, false},
				{SYSTEM_PROGRAM_ID, false, false},
			},
		},
		{
			name: "init_fee_collector",
			ixn:  NewInitFeeCollectorInstruction(program, &InitFeeCollectorInstructionAccounts{Authority: authority, FeeCollector: keys[8], Config: config}),
			data: []byte{40},
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[8], true, false},
				{config, false, false},
				{SYSTEM_PROGRAM_ID, false, false},
			},
		},
		{
			name: "update_terms",
			ixn:  NewUpdateTermsInstruction(program, &UpdateTermsInstructionAccounts{Authority: authority, Term: keys[7], Config: config}, term),
			data: append([]byte{9}, term.Marshal()...),
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[7], true, false},
				{config, false, false},
			},
		},
		{
			name: "collect_fee",
			ixn:  NewCollectFeeInstruction(program, &CollectFeeInstructionAccounts{Authority: authority, FeeCollector: keys[8], Config: config}),
			data: []byte{10},
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[8], true, false},
				{config, false, false},
			},
		},
		{
			name: "collect_fee_token",
			ixn: NewCollectFeeTokenInstruction(program, &CollectFeeTokenInstructionAccounts{
				Authority:       authority,
				AuthorityAta:    keys[9],
				FeeCollector:    keys[8],
				FeeCollectorAta: keys[7],
				TokenProgram:    SPL_TOKEN_PROGRAM_ID,
				Mint:            keys[6],
				Config:          config,
			}),
			data: []byte{20},
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[9], true, false},
				{keys[8], true, false},
				{keys[7], true, false},
				{SPL_TOKEN_PROGRAM_ID, false, false},
				{keys[6], false, false},
				{config, false, false},
			},
		},
		{
			name: "init_fee_type",
			ixn: NewInitFeeTypeInstruction(program, &InitFeeTypeInstructionAccounts{
				Authority:       authority,
				FeeType:         keys[7],
				FeeCollector:    keys[8],
				FeeCollectorAta: keys[9],
				Mint:            keys[6],
				TokenProgram:    SPL_TOKEN_PROGRAM_ID,
				Config:          config,
			}, feeType),
			data: append([]byte{35}, feeType.Marshal()...),
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[7], true, false},
				{keys[8], false, false},
				{keys[9], true, false},
				{keys[6], false, false},
				{SPL_TOKEN_PROGRAM_ID, false, false},
				{SYSVAR_RENT_PUBKEY, false, false},
				{config, false, false},
				{SYSTEM_PROGRAM_ID, false, false},
				{ASSOCIATED_TOKEN_PROGRAM_ID, false, false},
			},
		},
		{
			name: "init_reward_type",
			ixn:  NewInitRewardTypeInstruction(program, &InitRewardTypeInstructionAccounts{Authority: authority, RewardType: keys[7], Config: config}, rewardType),
			data: append([]byte{36}, rewardType.Marshal()...),
			accounts: []expectedMeta{
				{authority, true, true},
				{keys[7], true, false},
				{config, false, false},
				{SYSTEM_PROGRAM_ID, false, false},
			},
		},
		{
			name: "close_account",
			ixn:  NewCloseAccountInstruction(program, &CloseAccountInstructionAccounts{Authority: authority, Config: config, Targets: []ed25519.PublicKey{target, keys[9]}}),
			data: []byte{5},
			accounts: []expectedMeta{
				{authority, true, true},
				{config, false, false},
				{target, true, false},
				{keys[9], true, false},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, program, tc.ixn.Program)
			assert.Equal(t, tc.data, tc.ixn.Data)
			assertAccounts(t, tc.accounts, tc.ixn.Accounts)
		})
	}
}

func TestInstructionType(t *testing.T) {
	for _, tc := range []struct {
		t    InstructionType
		op   byte
		name string
	}{
		{InstructionTypeInitRaffle, 0, "init_raffle"},
		{InstructionTypeJoinRaffle, 1, "join_raffle"},
		{InstructionTypeChooseWinner, 2, "choose_winner"},
		{InstructionTypePublishWinner, 3, "publish_winner"},
		{InstructionTypeInitCounter, 4, "init_counter"},
		{InstructionTypeCloseAccount, 5, "close_account"},
		{InstructionTypeInitTerm, 6, "init_term"},
		{InstructionTypeInitConfig, 7, "init_config"},
		{InstructionTypeSetConfig, 8, "set_config"},
		{InstructionTypeUpdateTerms, 9, "update_terms"},
		{InstructionTypeCollectFee, 10, "collect_fee"},
		{InstructionTypeCollectFeeToken, 20, "collect_fee_token"},
		{InstructionTypeInitFeeType, 35, "init_fee_type"},
		{InstructionTypeInitRewardType, 36, "init_reward_type"},
		{InstructionTypeInitFeeCollector, 40, "init_fee_collector"},
		{InstructionTypeClaimPrize, 100, "claim_prize"},
		{InstructionTypeCollectFeeInitializer, 200, "collect_fee_initializer"},
		{InstructionTypeFreezeTest, 255, "freeze_test"},
	} {
		assert.EqualValues(t, tc.op, tc.t)
		assert.Equal(t, tc.name, tc.t.String())

		actual, err := GetInstructionType([]byte{tc.op, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, tc.t, actual)
	}

	assert.Equal(t, "unknown(11)", InstructionType(11).String())

	_, err := GetInstructionType(nil)
	assert.Equal(t, ErrInvalidInstructionData, err)
}
