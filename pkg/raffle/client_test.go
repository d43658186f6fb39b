package raffle

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journal_memory "github.com/code-payments/raffle-client/pkg/journal/memory"
	"github.com/code-payments/raffle-client/pkg/solana"
	compute_budget "github.com/code-payments/raffle-client/pkg/solana/computebudget"
	"github.com/code-payments/raffle-client/pkg/solana/memory"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
	"github.com/code-payments/raffle-client/pkg/testutil"
)

type countingPacer struct {
	calls int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.calls++
	return ctx.Err()
}

type testEnv struct {
	ctx     context.Context
	sc      *memory.Client
	client  *Client
	pacer   *countingPacer
	program ed25519.PublicKey

	authority   ed25519.PrivateKey
	initializer ed25519.PrivateKey

	// SPL token, 6 decimals
	rewardMint ed25519.PublicKey
	// Token-2022, 9 decimals
	feeMint ed25519.PublicKey
	// Registered under the native type, never looked up
	nativeMint ed25519.PublicKey
}

func setup(t *testing.T) *testEnv {
	env := &testEnv{
		ctx:     context.Background(),
		sc:      memory.NewClient(),
		pacer:   &countingPacer{},
		program: raffle_program.B2C.ProgramID,

		authority:   testutil.GenerateSolanaKeypair(t),
		initializer: testutil.GenerateSolanaKeypair(t),
	}

	env.client = NewClient(env.sc, WithPacer(env.pacer), WithJournal(journal_memory.New()))

	env.rewardMint = testutil.SetupMint(t, env.sc, token.ProgramKey, 6)
	env.feeMint = testutil.SetupMint(t, env.sc, token.Program2022Key, 9)
	env.nativeMint = testutil.GenerateSolanaKeys(t, 1)[0]

	env.setCounter(t, 41)

	feeType, err := env.client.GetFeeTypeAddress(raffle_program.NativeTypeNo)
	require.NoError(t, err)
	env.setProgramAccount(feeType, (&raffle_program.RewardFeeTypeAccount{
		Initialized: raffle_program.FeeTypeInitialized,
		Mint:        env.nativeMint,
		Decimals:    9,
		No:          raffle_program.NativeTypeNo,
	}).Marshal())

	feeType, err = env.client.GetFeeTypeAddress(2)
	require.NoError(t, err)
	env.setProgramAccount(feeType, (&raffle_program.RewardFeeTypeAccount{
		Initialized: raffle_program.FeeTypeInitialized,
		Mint:        env.feeMint,
		Decimals:    9,
		No:          2,
	}).Marshal())

	rewardType, err := env.client.GetRewardTypeAddress(2)
	require.NoError(t, err)
	env.setProgramAccount(rewardType, (&raffle_program.RewardFeeTypeAccount{
		Initialized: raffle_program.RewardTypeInitialized,
		Mint:        env.rewardMint,
		Decimals:    6,
		No:          2,
	}).Marshal())

	return env
}

func (env *testEnv) setProgramAccount(address ed25519.PublicKey, data []byte) {
	env.sc.SetAccount(address, solana.AccountInfo{
		Data:     data,
		Owner:    env.program,
		Lamports: 1_000_000,
	})
}

func (env *testEnv) setCounter(t *testing.T, numberOfRaffles uint64) {
	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)
	env.setProgramAccount(singletons.Counter, (&raffle_program.CounterAccount{
		Initialized:     1,
		NumberOfRaffles: numberOfRaffles,
	}).Marshal())
}

func (env *testEnv) newRaffle(raffleNo uint64) *raffle_program.RaffleAccount {
	return &raffle_program.RaffleAccount{
		State:                raffle_program.RaffleStateActive,
		Initializer:          publicKey(env.initializer),
		RewardMint:           env.rewardMint,
		Name:                 "test raffle",
		RaffleNo:             raffleNo,
		ParticipantsRequired: 10,
		ParticipationFeeMint: env.nativeMint,
		ParticipationFeeType: raffle_program.NativeTypeNo,
		Rewards:              []uint64{100_000_000},
		Winners:              []uint64{},
		RequirementMint:      make(ed25519.PublicKey, ed25519.PublicKeySize),
		RewardDecimals:       6,
		TransferFeeToPool:    []uint64{},
		WinnerCount:          1,
	}
}

func (env *testEnv) setRaffle(t *testing.T, raffle *raffle_program.RaffleAccount) ed25519.PublicKey {
	address, err := env.client.GetRaffleAddress(raffle.RaffleNo)
	require.NoError(t, err)
	env.setProgramAccount(address, raffle.Marshal())
	return address
}

func (env *testEnv) setParticipation(t *testing.T, raffle *raffle_program.RaffleAccount, wallet ed25519.PublicKey, participantNo uint64) ed25519.PublicKey {
	id := raffle_program.NewParticipationID(raffle, wallet, participantNo)
	address, err := env.client.GetParticipationAddress(raffle.RaffleNo, id)
	require.NoError(t, err)

	env.setProgramAccount(address, (&raffle_program.ParticipationAccount{
		ParticipantAddress: wallet,
		ParticipantNo:      participantNo,
		RaffleNo:           raffle.RaffleNo,
	}).Marshal())
	return address
}

func (env *testEnv) lastTransaction(t *testing.T) solana.Transaction {
	txn, ok := env.sc.LastSubmitted()
	require.True(t, ok)
	return txn
}

// instructionAt decompiles the instruction at index back into its program,
// data and ordered account keys.
func instructionAt(t *testing.T, txn solana.Transaction, index int) solana.Instruction {
	ix, err := txn.Message.DecompileInstruction(index)
	require.NoError(t, err)
	return ix
}

func keysOf(ix solana.Instruction) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, len(ix.Accounts))
	for i, account := range ix.Accounts {
		keys[i] = account.PublicKey
	}
	return keys
}

func assertInstruction(t *testing.T, expected, actual solana.Instruction) {
	assert.EqualValues(t, expected.Program, actual.Program)
	assert.Equal(t, expected.Data, actual.Data)
	assert.Equal(t, keysOf(expected), keysOf(actual))
}

func assertSigners(t *testing.T, txn solana.Transaction, signers ...ed25519.PublicKey) {
	require.EqualValues(t, len(signers), txn.Message.Header.NumSignatures)
	for i, signer := range signers {
		assert.EqualValues(t, signer, txn.Message.Accounts[i])
	}
}

func assertComputeUnitLimit(t *testing.T, txn solana.Transaction, limit uint32) {
	assertInstruction(t, compute_budget.SetComputeUnitLimit(limit), instructionAt(t, txn, 0))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(memory.NewClient())

	assert.Equal(t, raffle_program.B2C.Name, client.Deployment().Name)
	assert.Equal(t, solana.CommitmentConfirmed, client.commitment)
	assert.EqualValues(t, DefaultInitRaffleComputeUnitLimit, client.initRaffleComputeUnitLimit)
	assert.EqualValues(t, DefaultJoinRaffleComputeUnitLimit, client.joinRaffleComputeUnitLimit)
	assert.NotNil(t, client.Journal())

	client = NewClient(memory.NewClient(), WithDeployment(raffle_program.B2B), WithComputeUnitLimits(1, 2))
	assert.EqualValues(t, raffle_program.B2B.ProgramID, client.program())
	assert.EqualValues(t, 1, client.initRaffleComputeUnitLimit)
	assert.EqualValues(t, 2, client.joinRaffleComputeUnitLimit)
}

func TestSingletonAddresses(t *testing.T) {
	env := setup(t)

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	for _, tc := range []struct {
		seed     string
		expected ed25519.PublicKey
	}{
		{"config", singletons.Config},
		{"term", singletons.Term},
		{"counter", singletons.Counter},
		{"fee_collector", singletons.FeeCollector},
	} {
		address, err := solana.FindProgramAddress(env.program, []byte(tc.seed))
		require.NoError(t, err)
		assert.EqualValues(t, address, tc.expected, tc.seed)
	}
}

func TestInitCounter(t *testing.T) {
	env := setup(t)

	sig, err := env.client.InitCounter(env.ctx, env.authority)
	require.NoError(t, err)
	assert.NotEqual(t, solana.Signature{}, sig)

	counter, err := solana.FindProgramAddress(env.program, []byte("counter"))
	require.NoError(t, err)

	txn := env.lastTransaction(t)
	require.Len(t, txn.Message.Instructions, 1)
	assertSigners(t, txn, publicKey(env.authority))

	ix := instructionAt(t, txn, 0)
	assert.Equal(t, []byte{4}, ix.Data)
	assert.Equal(t, []ed25519.PublicKey{publicKey(env.authority), counter, raffle_program.SYSTEM_PROGRAM_ID}, keysOf(ix))

	// The program writes the record; a subsequent read decodes it
	env.sc.SetAccount(counter, solana.AccountInfo{
		Data:  (&raffle_program.CounterAccount{Initialized: 1}).Marshal(),
		Owner: env.program,
	})
	actual, err := env.client.GetCounter(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, actual.Account.Initialized)
	assert.EqualValues(t, 0, actual.Account.NumberOfRaffles)

	records, err := env.client.Journal().GetRecent(env.ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "init_counter", records[0].Operation)
	assert.Equal(t, sig.String(), records[0].Signature)
	assert.Nil(t, records[0].RaffleNo)
}

func TestSubmit_Logging(t *testing.T) {
	env := setup(t)
	log, hook := testutil.NewCapturingLogger()
	client := NewClient(env.sc, WithPacer(env.pacer), WithLogger(log), WithJournal(journal_memory.New()))

	sig, err := client.InitCounter(env.ctx, env.authority)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "transaction submitted", entry.Message)
	assert.Equal(t, "init_counter", entry.Data["method"])
	assert.Equal(t, sig.String(), entry.Data["signature"])
	assert.Equal(t, raffle_program.B2C.Name, entry.Data["deployment"])

	env.sc.SetSubmitError(solana.NewTransactionError(solana.TransactionErrorAccountInUse))
	_, err = client.InitCounter(env.ctx, env.authority)
	assert.Equal(t, KindOnChainReject, KindOf(err))

	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "transaction rejected", entry.Message)
}

func TestAdminInstructions(t *testing.T) {
	env := setup(t)
	authority := publicKey(env.authority)
	authorities := [4]ed25519.PublicKey{authority}
	copy(authorities[1:], testutil.GenerateSolanaKeys(t, 3))

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		submit   func() (solana.Signature, error)
		expected solana.Instruction
	}{
		{
			name: "init_config",
			submit: func() (solana.Signature, error) {
				return env.client.InitConfig(env.ctx, env.authority, authorities)
			},
			expected: raffle_program.NewInitConfigInstruction(env.program, &raffle_program.InitConfigInstructionAccounts{
				Authorities: authorities,
				Config:      singletons.Config,
			}),
		},
		{
			name: "set_config",
			submit: func() (solana.Signature, error) {
				return env.client.SetConfig(env.ctx, env.authority, authorities)
			},
			expected: raffle_program.NewSetConfigInstruction(env.program, &raffle_program.SetConfigInstructionAccounts{
				Authority:   authority,
				Authorities: authorities,
				Config:      singletons.Config,
			}),
		},
		{
			name: "init_term",
			submit: func() (solana.Signature, error) {
				return env.client.InitTerm(env.ctx, env.authority)
			},
			expected: raffle_program.NewInitTermInstruction(env.program, &raffle_program.InitTermInstructionAccounts{
				Authority: authority,
				Term:      singletons.Term,
				Config:    singletons.Config,
			}),
		},
		{
			name: "init_fee_collector",
			submit: func() (solana.Signature, error) {
				return env.client.InitFeeCollector(env.ctx, env.authority)
			},
			expected: raffle_program.NewInitFeeCollectorInstruction(env.program, &raffle_program.InitFeeCollectorInstructionAccounts{
				Authority:    authority,
				FeeCollector: singletons.FeeCollector,
				Config:       singletons.Config,
			}),
		},
		{
			name: "update_terms",
			submit: func() (solana.Signature, error) {
				return env.client.UpdateTerms(env.ctx, env.authority, &TermParams{FeePercent: 5, ExpirationTime: 3600, MaximumWinnerCount: 10})
			},
			expected: raffle_program.NewUpdateTermsInstruction(
				env.program,
				&raffle_program.UpdateTermsInstructionAccounts{
					Authority: authority,
					Term:      singletons.Term,
					Config:    singletons.Config,
				},
				&raffle_program.TermAccount{
					Initialized:        raffle_program.TermUpdated,
					FeePercent:         5,
					ExpirationTime:     3600,
					MaximumWinnerCount: 10,
				},
			),
		},
		{
			name: "collect_fee",
			submit: func() (solana.Signature, error) {
				return env.client.CollectFee(env.ctx, env.authority)
			},
			expected: raffle_program.NewCollectFeeInstruction(env.program, &raffle_program.CollectFeeInstructionAccounts{
				Authority:    authority,
				FeeCollector: singletons.FeeCollector,
				Config:       singletons.Config,
			}),
		},
		{
			name: "close_account",
			submit: func() (solana.Signature, error) {
				return env.client.CloseAccounts(env.ctx, env.authority, authorities[1:3])
			},
			expected: raffle_program.NewCloseAccountInstruction(env.program, &raffle_program.CloseAccountInstructionAccounts{
				Authority: authority,
				Config:    singletons.Config,
				Targets:   authorities[1:3],
			}),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.submit()
			require.NoError(t, err)

			txn := env.lastTransaction(t)
			require.Len(t, txn.Message.Instructions, 1)
			assertSigners(t, txn, authority)
			assertInstruction(t, tc.expected, instructionAt(t, txn, 0))
		})
	}
}

func TestInitConfig_SignerMustBeFirstAuthority(t *testing.T) {
	env := setup(t)

	authorities := [4]ed25519.PublicKey{}
	copy(authorities[:], testutil.GenerateSolanaKeys(t, 4))

	_, err := env.client.InitConfig(env.ctx, env.authority, authorities)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
	assert.Empty(t, env.sc.Submitted())
	assert.Zero(t, env.pacer.calls)
}

func TestFeeAndRewardTypes(t *testing.T) {
	env := setup(t)
	authority := publicKey(env.authority)

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	_, err = env.client.InitFeeType(env.ctx, env.authority, &TypeParams{No: 3, Mint: env.feeMint})
	require.NoError(t, err)

	feeType, err := solana.FindProgramAddress(env.program, []byte("feetype"), raffle_program.Uint64Seed(3))
	require.NoError(t, err)
	feeCollectorAta, err := token.GetAssociatedAccount(singletons.FeeCollector, env.feeMint, token.Program2022Key)
	require.NoError(t, err)

	assertInstruction(t, raffle_program.NewInitFeeTypeInstruction(
		env.program,
		&raffle_program.InitFeeTypeInstructionAccounts{
			Authority:       authority,
			FeeType:         feeType,
			FeeCollector:    singletons.FeeCollector,
			FeeCollectorAta: feeCollectorAta,
			Mint:            env.feeMint,
			TokenProgram:    token.Program2022Key,
			Config:          singletons.Config,
		},
		&raffle_program.RewardFeeTypeAccount{
			Initialized: raffle_program.FeeTypeInitialized,
			Mint:        env.feeMint,
			Decimals:    9,
			No:          3,
		},
	), instructionAt(t, env.lastTransaction(t), 0))

	decimals := uint8(2)
	_, err = env.client.InitRewardType(env.ctx, env.authority, &TypeParams{No: 4, Mint: env.rewardMint, Decimals: &decimals})
	require.NoError(t, err)

	rewardType, err := solana.FindProgramAddress(env.program, []byte("rewtype"), raffle_program.Uint64Seed(4))
	require.NoError(t, err)

	ix := instructionAt(t, env.lastTransaction(t), 0)
	assert.Equal(t, []ed25519.PublicKey{authority, rewardType, singletons.Config, raffle_program.SYSTEM_PROGRAM_ID}, keysOf(ix))
	require.Len(t, ix.Data, 1+raffle_program.RewardFeeTypeAccountSize)
	assert.EqualValues(t, 36, ix.Data[0])

	var record raffle_program.RewardFeeTypeAccount
	require.NoError(t, record.Unmarshal(ix.Data[1:]))
	assert.EqualValues(t, raffle_program.RewardTypeInitialized, record.Initialized)
	assert.EqualValues(t, 2, record.Decimals)
	assert.EqualValues(t, 4, record.No)

	all, err := env.client.GetAllFeeTypes(env.ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.EqualValues(t, 1, all[0].Account.No)
	assert.EqualValues(t, 2, all[1].Account.No)

	rewards, err := env.client.GetAllRewardTypes(env.ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.EqualValues(t, env.rewardMint, rewards[0].Account.Mint)

	_, err = env.client.GetRewardType(env.ctx, raffle_program.NativeTypeNo)
	assert.Equal(t, KindNotFound, KindOf(err))

	// A fee type record is not a reward type
	feeTypeAddress, err := env.client.GetFeeTypeAddress(2)
	require.NoError(t, err)
	rewardTypeAddress, err := env.client.GetRewardTypeAddress(9)
	require.NoError(t, err)
	info, err := env.sc.GetAccountInfo(feeTypeAddress, solana.CommitmentConfirmed)
	require.NoError(t, err)
	env.sc.SetAccount(rewardTypeAddress, info)
	_, err = env.client.GetRewardType(env.ctx, 9)
	assert.Equal(t, KindMalformed, KindOf(err))
}

func TestInitRaffle_NativeFee(t *testing.T) {
	env := setup(t)
	initializer := publicKey(env.initializer)

	sig, raffleNo, err := env.client.InitRaffle(env.ctx, env.initializer, &InitRaffleParams{
		Name:                 "weekly",
		ParticipantsRequired: 2,
		RaffleTime:           86400,
		ParticipationFeeType: raffle_program.NativeTypeNo,
		RewardType:           2,
		Rewards:              []string{"100"},
		WinnerCount:          1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, raffleNo)

	txn := env.lastTransaction(t)
	require.Len(t, txn.Message.Instructions, 2)
	assertSigners(t, txn, initializer)
	assertComputeUnitLimit(t, txn, DefaultInitRaffleComputeUnitLimit)

	ix := instructionAt(t, txn, 1)
	assert.EqualValues(t, env.program, ix.Program)
	assert.EqualValues(t, 0, ix.Data[0])

	var args raffle_program.InitRaffleInstructionArgs
	require.NoError(t, args.Unmarshal(ix.Data[1:]))
	assert.Equal(t, "weekly", args.Name)
	assert.EqualValues(t, 0, args.ParticipationFee)
	assert.EqualValues(t, 2, args.ParticipantsRequired)
	assert.Equal(t, []uint64{100_000_000}, args.Rewards)
	assert.EqualValues(t, 0, args.RequirementToParticipate)
	assert.EqualValues(t, 1, args.ParticipationFeeType)
	assert.EqualValues(t, 1, args.WinnerCount)

	raffle, err := solana.FindProgramAddress(env.program, []byte("raffle"), []byte{42, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	keys := keysOf(ix)
	require.Len(t, keys, 16)
	assert.EqualValues(t, initializer, keys[0])
	assert.EqualValues(t, raffle, keys[2])
	assert.EqualValues(t, env.rewardMint, keys[9])
	assert.EqualValues(t, token.ProgramKey, keys[10])
	assert.EqualValues(t, env.nativeMint, keys[11])
	assert.EqualValues(t, token.ProgramKey, keys[12])
	assert.EqualValues(t, raffle_program.SYSVAR_RENT_PUBKEY, keys[13])
	assert.EqualValues(t, raffle_program.SYSTEM_PROGRAM_ID, keys[14])
	assert.EqualValues(t, raffle_program.ASSOCIATED_TOKEN_PROGRAM_ID, keys[15])

	initializerAta, err := token.GetAssociatedAccount(initializer, env.rewardMint, token.ProgramKey)
	require.NoError(t, err)
	assert.EqualValues(t, initializerAta, keys[1])

	records, err := env.client.Journal().GetAllByRaffle(env.ctx, 42)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "init_raffle", records[0].Operation)
	assert.Equal(t, sig.String(), records[0].Signature)
}

func TestInitRaffle_RewardTypeOneIsToken(t *testing.T) {
	env := setup(t)
	initializer := publicKey(env.initializer)

	// Number 1 is native only for fee types; a reward type 1 is a token
	rewardMint := testutil.SetupMint(t, env.sc, token.Program2022Key, 9)
	rewardType, err := env.client.GetRewardTypeAddress(1)
	require.NoError(t, err)
	env.setProgramAccount(rewardType, (&raffle_program.RewardFeeTypeAccount{
		Initialized: raffle_program.RewardTypeInitialized,
		Mint:        rewardMint,
		Decimals:    9,
		No:          1,
	}).Marshal())

	_, raffleNo, err := env.client.InitRaffle(env.ctx, env.initializer, &InitRaffleParams{
		Name:                 "token-2022 reward",
		ParticipantsRequired: 2,
		ParticipationFeeType: raffle_program.NativeTypeNo,
		RewardType:           1,
		Rewards:              []string{"1"},
		WinnerCount:          1,
	})
	require.NoError(t, err)

	raffle, err := env.client.GetRaffleAddress(raffleNo)
	require.NoError(t, err)
	initializerAta, err := token.GetAssociatedAccount(initializer, rewardMint, token.Program2022Key)
	require.NoError(t, err)
	raffleAta, err := token.GetAssociatedAccount(raffle, rewardMint, token.Program2022Key)
	require.NoError(t, err)

	ix := instructionAt(t, env.lastTransaction(t), 1)
	keys := keysOf(ix)
	require.Len(t, keys, 16)
	assert.EqualValues(t, initializerAta, keys[1])
	assert.EqualValues(t, raffleAta, keys[3])
	assert.EqualValues(t, rewardMint, keys[9])
	assert.EqualValues(t, token.Program2022Key, keys[10])
	assert.EqualValues(t, token.ProgramKey, keys[12])

	var args raffle_program.InitRaffleInstructionArgs
	require.NoError(t, args.Unmarshal(ix.Data[1:]))
	assert.Equal(t, []uint64{1_000_000_000}, args.Rewards)
}

func TestInitRaffle_TokenFeeWithRequirement(t *testing.T) {
	env := setup(t)
	requirementMint := testutil.SetupMint(t, env.sc, token.Program2022Key, 2)

	_, raffleNo, err := env.client.InitRaffle(env.ctx, env.initializer, &InitRaffleParams{
		Name:                  "gated",
		MultipleParticipation: true,
		ParticipationFee:      "0.25",
		ParticipantsRequired:  5,
		ParticipationFeeType:  2,
		RewardType:            2,
		Rewards:               []string{"1.5", "0.000001"},
		WinnerCount:           2,
		IncreasingPool:        true,
		TransferFeeToPool:     []uint64{50},
		RequirementMint:       requirementMint,
		RequirementAmount:     "1.5",
	})
	require.NoError(t, err)

	raffle, err := env.client.GetRaffleAddress(raffleNo)
	require.NoError(t, err)

	ix := instructionAt(t, env.lastTransaction(t), 1)

	var args raffle_program.InitRaffleInstructionArgs
	require.NoError(t, args.Unmarshal(ix.Data[1:]))
	assert.EqualValues(t, 250_000_000, args.ParticipationFee)
	assert.Equal(t, []uint64{1_500_000, 1}, args.Rewards)
	assert.EqualValues(t, 1, args.MultipleParticipationAllowed)
	assert.EqualValues(t, 1, args.IsIncreasingPool)
	assert.Equal(t, []uint64{50}, args.TransferFeeToPool)
	assert.EqualValues(t, 1, args.RequirementToParticipate)
	assert.EqualValues(t, 150, args.RequirementAmountToken)
	assert.EqualValues(t, requirementMint, args.RequirementMint)
	assert.EqualValues(t, 2, args.RequiredTokenDecimals)

	raffleFeeAta, err := token.GetAssociatedAccount(raffle, env.feeMint, token.Program2022Key)
	require.NoError(t, err)
	raffleRequirementAta, err := token.GetAssociatedAccount(raffle, requirementMint, token.Program2022Key)
	require.NoError(t, err)

	keys := keysOf(ix)
	require.Len(t, keys, 19)
	assert.EqualValues(t, raffleFeeAta, keys[4])
	assert.EqualValues(t, env.feeMint, keys[11])
	assert.EqualValues(t, token.Program2022Key, keys[12])
	assert.EqualValues(t, raffleRequirementAta, keys[14])
	assert.EqualValues(t, requirementMint, keys[15])
	assert.EqualValues(t, token.Program2022Key, keys[16])
}

func TestInitRaffle_Validation(t *testing.T) {
	env := setup(t)

	for _, tc := range []struct {
		name     string
		params   *InitRaffleParams
		expected Kind
	}{
		{
			name:     "missing params",
			expected: KindInvalidArgument,
		},
		{
			name:     "name too long",
			params:   &InitRaffleParams{Name: "this raffle name is longer than thirty two bytes", ParticipationFeeType: 1, RewardType: 2},
			expected: KindRangeViolation,
		},
		{
			name:     "reward overflow",
			params:   &InitRaffleParams{ParticipationFeeType: 1, RewardType: 2, Rewards: []string{"18446744073709.551616"}},
			expected: KindRangeViolation,
		},
		{
			name:     "negative fee",
			params:   &InitRaffleParams{ParticipationFee: "-1", ParticipationFeeType: 1, RewardType: 2},
			expected: KindRangeViolation,
		},
		{
			name:     "unregistered fee type",
			params:   &InitRaffleParams{ParticipationFeeType: 7, RewardType: 2},
			expected: KindNotFound,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := env.client.InitRaffle(env.ctx, env.initializer, tc.params)
			assert.Equal(t, tc.expected, KindOf(err))
		})
	}

	assert.Empty(t, env.sc.Submitted())
	assert.Zero(t, env.pacer.calls)

	env.setCounter(t, ^uint64(0))
	_, _, err := env.client.InitRaffle(env.ctx, env.initializer, &InitRaffleParams{ParticipationFeeType: 1, RewardType: 2})
	assert.Equal(t, KindRangeViolation, KindOf(err))

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)
	env.sc.RemoveAccount(singletons.Counter)
	_, _, err = env.client.InitRaffle(env.ctx, env.initializer, &InitRaffleParams{ParticipationFeeType: 1, RewardType: 2})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestJoinRaffle_SingleEntry(t *testing.T) {
	env := setup(t)
	participant := testutil.GenerateSolanaKeypair(t)
	wallet := publicKey(participant)

	raffle := env.newRaffle(12)
	raffle.CurrentNumberOfParticipants = 5
	raffleAddress := env.setRaffle(t, raffle)

	_, id, err := env.client.JoinRaffle(env.ctx, participant, 12)
	require.NoError(t, err)
	assert.True(t, id.Equal(raffle_program.ParticipationByWallet(wallet)))

	participation, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(12), []byte("par"), wallet)
	require.NoError(t, err)

	txn := env.lastTransaction(t)
	require.Len(t, txn.Message.Instructions, 2)
	assertSigners(t, txn, wallet)
	assertComputeUnitLimit(t, txn, DefaultJoinRaffleComputeUnitLimit)

	ix := instructionAt(t, txn, 1)
	assert.EqualValues(t, env.program, ix.Program)
	assert.Equal(t, []byte{1}, ix.Data)
	assert.Equal(t, []ed25519.PublicKey{
		wallet,
		raffleAddress,
		participation,
		raffle_program.SYSTEM_PROGRAM_ID,
		raffle_program.SYSTEM_PROGRAM_ID,
	}, keysOf(ix))
}

func TestJoinRaffle_MultipleEntry(t *testing.T) {
	env := setup(t)
	requirementMint := testutil.SetupMint(t, env.sc, token.ProgramKey, 0)

	raffle := env.newRaffle(12)
	raffle.MultipleParticipationAllowed = 1
	raffle.CurrentNumberOfParticipants = 5
	raffle.ParticipationFeeType = 2
	raffle.ParticipationFeeMint = env.feeMint
	raffle.RequirementToParticipate = 1
	raffle.RequirementMint = requirementMint
	raffleAddress := env.setRaffle(t, raffle)

	participation, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(12), []byte("par"), raffle_program.Uint64Seed(6))
	require.NoError(t, err)

	first, second := testutil.GenerateSolanaKeypair(t), testutil.GenerateSolanaKeypair(t)

	_, id, err := env.client.JoinRaffle(env.ctx, first, 12)
	require.NoError(t, err)
	assert.True(t, id.Equal(raffle_program.ParticipationByNumber(6)))

	wallet := publicKey(first)
	fee, err := env.client.tokenTransferAccounts(env.ctx, wallet, raffleAddress, env.feeMint)
	require.NoError(t, err)
	requirement, err := env.client.tokenTransferAccounts(env.ctx, wallet, raffleAddress, requirementMint)
	require.NoError(t, err)
	assert.EqualValues(t, token.Program2022Key, fee.TokenProgram)
	assert.EqualValues(t, token.ProgramKey, requirement.TokenProgram)

	assertInstruction(t, raffle_program.NewJoinRaffleInstruction(env.program, &raffle_program.JoinRaffleInstructionAccounts{
		Participant:   wallet,
		Raffle:        raffleAddress,
		Participation: participation,
		Fee:           fee,
		Requirement:   requirement,
	}), instructionAt(t, env.lastTransaction(t), 1))

	// Both wallets predict the same participant number. The program accepts
	// only the first; the second is rejected but keeps its signature.
	env.sc.SetSubmitError(solana.NewTransactionError(solana.TransactionErrorAccountInUse))

	sig, id, err := env.client.JoinRaffle(env.ctx, second, 12)
	assert.Equal(t, KindOnChainReject, KindOf(err))
	assert.NotEqual(t, solana.Signature{}, sig)
	assert.True(t, id.Equal(raffle_program.ParticipationByNumber(6)))

	records, err := env.client.Journal().GetAllByRaffle(env.ctx, 12)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, sig.String(), records[0].Signature)
	assert.Equal(t, "join_raffle", records[0].Operation)

	assert.Equal(t, 2, env.pacer.calls)
}

func TestJoinRaffle_TransportError(t *testing.T) {
	env := setup(t)
	env.setRaffle(t, env.newRaffle(3))

	env.sc.SetSubmitError(solana.ErrServiceError)

	sig, _, err := env.client.JoinRaffle(env.ctx, testutil.GenerateSolanaKeypair(t), 3)
	assert.Equal(t, KindRPC, KindOf(err))
	assert.Equal(t, solana.Signature{}, sig)

	records, err := env.client.Journal().GetRecent(env.ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJoinRaffle_UnknownRaffle(t *testing.T) {
	env := setup(t)

	_, _, err := env.client.JoinRaffle(env.ctx, testutil.GenerateSolanaKeypair(t), 99)
	assert.Equal(t, KindNotFound, KindOf(err))

	// Same address, wrong owner
	address, err := env.client.GetRaffleAddress(99)
	require.NoError(t, err)
	env.sc.SetAccount(address, solana.AccountInfo{Data: env.newRaffle(99).Marshal(), Owner: token.ProgramKey})

	_, _, err = env.client.JoinRaffle(env.ctx, testutil.GenerateSolanaKeypair(t), 99)
	assert.Equal(t, KindMalformed, KindOf(err))

	// Truncated record
	env.setProgramAccount(address, env.newRaffle(99).Marshal()[:raffle_program.MinRaffleAccountSize-1])
	_, _, err = env.client.JoinRaffle(env.ctx, testutil.GenerateSolanaKeypair(t), 99)
	assert.Equal(t, KindMalformed, KindOf(err))

	assert.Empty(t, env.sc.Submitted())
}

func TestChooseWinner(t *testing.T) {
	env := setup(t)
	authority := publicKey(env.authority)

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	empty := env.newRaffle(20)
	emptyAddress := env.setRaffle(t, empty)

	joined := env.newRaffle(21)
	joined.CurrentNumberOfParticipants = 4
	joinedAddress := env.setRaffle(t, joined)

	_, err = env.client.ChooseWinner(env.ctx, env.authority, 20, 16)
	require.NoError(t, err)

	initializerAta, err := token.GetAssociatedAccount(publicKey(env.initializer), env.rewardMint, token.ProgramKey)
	require.NoError(t, err)
	raffleAta, err := token.GetAssociatedAccount(emptyAddress, env.rewardMint, token.ProgramKey)
	require.NoError(t, err)

	ix := instructionAt(t, env.lastTransaction(t), 0)
	assert.Equal(t, []byte{2, 16, 0, 0, 0, 0, 0, 0, 0}, ix.Data)
	assert.Equal(t, []ed25519.PublicKey{
		authority,
		emptyAddress,
		raffle_program.B2C.EntropyAccount,
		raffle_program.B2C.RngFeeAccount,
		raffle_program.B2C.RngProgram,
		raffle_program.SYSTEM_PROGRAM_ID,
		singletons.Config,
		initializerAta,
		raffleAta,
		env.rewardMint,
		token.ProgramKey,
	}, keysOf(ix))

	_, err = env.client.ChooseWinner(env.ctx, env.authority, 21, 16)
	require.NoError(t, err)

	ix = instructionAt(t, env.lastTransaction(t), 0)
	keys := keysOf(ix)
	require.Len(t, keys, 7)
	assert.EqualValues(t, joinedAddress, keys[1])
	assert.EqualValues(t, singletons.Config, keys[6])
}

func TestPublishWinners_SingleEntry(t *testing.T) {
	env := setup(t)
	wallets := testutil.GenerateSolanaKeys(t, 8)

	raffle := env.newRaffle(30)
	raffle.State = raffle_program.RaffleStateFinalizedUnpublished
	raffle.CurrentNumberOfParticipants = 8
	raffle.Winners = []uint64{3, 7}
	raffleAddress := env.setRaffle(t, raffle)

	participations := make([]ed25519.PublicKey, len(wallets))
	for i, wallet := range wallets {
		participations[i] = env.setParticipation(t, raffle, wallet, uint64(i+1))
	}

	// Same participant number in another raffle
	other := env.newRaffle(31)
	env.setParticipation(t, other, wallets[2], 3)

	_, err := env.client.PublishWinners(env.ctx, env.authority, 30)
	require.NoError(t, err)

	txn := env.lastTransaction(t)
	assertSigners(t, txn, publicKey(env.authority))

	ix := instructionAt(t, txn, 0)
	assert.Equal(t, []byte{3}, ix.Data)
	assert.Equal(t, []ed25519.PublicKey{raffleAddress, participations[2], participations[6]}, keysOf(ix))

	// The seeds are the winners' wallets, not their numbers
	expected, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(30), []byte("par"), wallets[6])
	require.NoError(t, err)
	assert.EqualValues(t, expected, participations[6])
}

func TestPublishWinners_MultipleEntry(t *testing.T) {
	env := setup(t)

	raffle := env.newRaffle(32)
	raffle.MultipleParticipationAllowed = 1
	raffle.Winners = []uint64{2, 5}
	raffleAddress := env.setRaffle(t, raffle)

	_, err := env.client.PublishWinners(env.ctx, env.authority, 32)
	require.NoError(t, err)

	var expected []ed25519.PublicKey
	for _, winnerNo := range raffle.Winners {
		address, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(32), []byte("par"), raffle_program.Uint64Seed(winnerNo))
		require.NoError(t, err)
		expected = append(expected, address)
	}

	ix := instructionAt(t, env.lastTransaction(t), 0)
	assert.Equal(t, append([]ed25519.PublicKey{raffleAddress}, expected...), keysOf(ix))
}

func TestPublishWinners_Errors(t *testing.T) {
	env := setup(t)

	env.setRaffle(t, env.newRaffle(33))
	_, err := env.client.PublishWinners(env.ctx, env.authority, 33)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	raffle := env.newRaffle(34)
	raffle.Winners = []uint64{1}
	env.setRaffle(t, raffle)
	_, err = env.client.PublishWinners(env.ctx, env.authority, 34)
	assert.Equal(t, KindNotFound, KindOf(err))

	assert.Empty(t, env.sc.Submitted())
}

func TestClaimPrize(t *testing.T) {
	env := setup(t)
	winner := testutil.GenerateSolanaKeypair(t)
	wallet := publicKey(winner)
	requirementMint := testutil.SetupMint(t, env.sc, token.ProgramKey, 0)

	raffle := env.newRaffle(40)
	raffle.MultipleParticipationAllowed = 1
	raffle.RequirementToParticipate = 1
	raffle.RequirementMint = requirementMint
	raffleAddress := env.setRaffle(t, raffle)

	_, err := env.client.ClaimPrize(env.ctx, winner, 40, 9)
	require.NoError(t, err)

	participation, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(40), []byte("par"), raffle_program.Uint64Seed(9))
	require.NoError(t, err)
	raffleRewardAta, err := token.GetAssociatedAccount(raffleAddress, env.rewardMint, token.ProgramKey)
	require.NoError(t, err)
	winnerRewardAta, err := token.GetAssociatedAccount(wallet, env.rewardMint, token.ProgramKey)
	require.NoError(t, err)
	raffleRequirementAta, err := token.GetAssociatedAccount(raffleAddress, requirementMint, token.ProgramKey)
	require.NoError(t, err)
	winnerRequirementAta, err := token.GetAssociatedAccount(wallet, requirementMint, token.ProgramKey)
	require.NoError(t, err)

	txn := env.lastTransaction(t)
	assertSigners(t, txn, wallet)
	assertInstruction(t, raffle_program.NewClaimPrizeInstruction(env.program, &raffle_program.ClaimPrizeInstructionAccounts{
		Raffle:             raffleAddress,
		RaffleRewardAta:    raffleRewardAta,
		Participation:      participation,
		Winner:             wallet,
		WinnerRewardAta:    winnerRewardAta,
		RewardMint:         env.rewardMint,
		RewardTokenProgram: token.ProgramKey,
		Requirement: &raffle_program.ClaimPrizeRequirementAccounts{
			RaffleAta:      raffleRequirementAta,
			ParticipantAta: winnerRequirementAta,
			Mint:           requirementMint,
			TokenProgram:   token.ProgramKey,
		},
	}), instructionAt(t, txn, 0))

	// Single entry raffles key the claim by wallet
	single := env.newRaffle(41)
	env.setRaffle(t, single)

	_, err = env.client.ClaimPrize(env.ctx, winner, 41, 0)
	require.NoError(t, err)

	expected, err := solana.FindProgramAddress(env.program, []byte("raf"), raffle_program.Uint64Seed(41), []byte("par"), wallet)
	require.NoError(t, err)
	assert.EqualValues(t, expected, keysOf(instructionAt(t, env.lastTransaction(t), 0))[2])
	submitted := len(env.sc.Submitted())

	// Multiple entry raffles need the winning entry's number
	_, err = env.client.ClaimPrize(env.ctx, winner, 40, 0)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
	assert.Len(t, env.sc.Submitted(), submitted)
}

func TestCollectFeeInitializer(t *testing.T) {
	env := setup(t)
	initializer := publicKey(env.initializer)

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	native := env.newRaffle(50)
	nativeAddress := env.setRaffle(t, native)

	_, err = env.client.CollectFeeInitializer(env.ctx, env.initializer, 50)
	require.NoError(t, err)

	ix := instructionAt(t, env.lastTransaction(t), 0)
	assert.Equal(t, []byte{200}, ix.Data)
	assert.Equal(t, []ed25519.PublicKey{initializer, nativeAddress, singletons.Term, singletons.FeeCollector}, keysOf(ix))

	tokenFee := env.newRaffle(51)
	tokenFee.ParticipationFeeType = 2
	tokenFee.ParticipationFeeMint = env.feeMint
	tokenAddress := env.setRaffle(t, tokenFee)

	_, err = env.client.CollectFeeInitializer(env.ctx, env.initializer, 51)
	require.NoError(t, err)

	feeCollectorAta, err := token.GetAssociatedAccount(singletons.FeeCollector, env.feeMint, token.Program2022Key)
	require.NoError(t, err)
	initializerAta, err := token.GetAssociatedAccount(initializer, env.feeMint, token.Program2022Key)
	require.NoError(t, err)
	raffleAta, err := token.GetAssociatedAccount(tokenAddress, env.feeMint, token.Program2022Key)
	require.NoError(t, err)

	assertInstruction(t, raffle_program.NewCollectFeeInitializerInstruction(env.program, &raffle_program.CollectFeeInitializerInstructionAccounts{
		Initializer:  initializer,
		Raffle:       tokenAddress,
		Term:         singletons.Term,
		FeeCollector: singletons.FeeCollector,
		Token: &raffle_program.CollectFeeInitializerTokenAccounts{
			FeeCollectorAta: feeCollectorAta,
			InitializerAta:  initializerAta,
			RaffleAta:       raffleAta,
			TokenProgram:    token.Program2022Key,
			Mint:            env.feeMint,
		},
	}), instructionAt(t, env.lastTransaction(t), 0))
}

func TestCollectFeeToken(t *testing.T) {
	env := setup(t)
	authority := publicKey(env.authority)

	singletons, err := env.client.GetSingletonAddresses()
	require.NoError(t, err)

	_, err = env.client.CollectFeeToken(env.ctx, env.authority, env.feeMint)
	require.NoError(t, err)

	authorityAta, err := token.GetAssociatedAccount(authority, env.feeMint, token.Program2022Key)
	require.NoError(t, err)
	feeCollectorAta, err := token.GetAssociatedAccount(singletons.FeeCollector, env.feeMint, token.Program2022Key)
	require.NoError(t, err)

	assertInstruction(t, raffle_program.NewCollectFeeTokenInstruction(env.program, &raffle_program.CollectFeeTokenInstructionAccounts{
		Authority:       authority,
		AuthorityAta:    authorityAta,
		FeeCollector:    singletons.FeeCollector,
		FeeCollectorAta: feeCollectorAta,
		TokenProgram:    token.Program2022Key,
		Mint:            env.feeMint,
		Config:          singletons.Config,
	}), instructionAt(t, env.lastTransaction(t), 0))

	_, err = env.client.CollectFeeToken(env.ctx, env.authority, testutil.GenerateSolanaKeys(t, 1)[0])
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFreezeTest(t *testing.T) {
	env := setup(t)
	participant := testutil.GenerateSolanaKeys(t, 1)[0]

	raffle := env.newRaffle(60)
	raffle.ParticipationFeeMint = env.feeMint
	raffleAddress := env.setRaffle(t, raffle)

	_, err := env.client.FreezeTest(env.ctx, env.initializer, 60, participant, 7)
	require.NoError(t, err)

	participantAta, err := token.GetAssociatedAccount(participant, env.feeMint, token.Program2022Key)
	require.NoError(t, err)

	assertInstruction(t, raffle_program.NewFreezeTestInstruction(
		env.program,
		&raffle_program.FreezeTestInstructionAccounts{
			Initializer:     publicKey(env.initializer),
			Raffle:          raffleAddress,
			FeeTokenProgram: token.Program2022Key,
			FeeMint:         env.feeMint,
			ParticipantAta:  participantAta,
		},
		&raffle_program.FreezeTestInstructionArgs{X: 7},
	), instructionAt(t, env.lastTransaction(t), 0))
}

func TestSubmit_ContextCancelled(t *testing.T) {
	env := setup(t)

	ctx, cancel := context.WithCancel(env.ctx)
	cancel()

	_, err := env.client.InitCounter(ctx, env.authority)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, env.sc.Submitted())
}
