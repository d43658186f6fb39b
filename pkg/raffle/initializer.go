package raffle

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// InitRaffleParams describes a new raffle. Amounts are human decimal strings
// scaled by the decimals of their registered type or mint.
type InitRaffleParams struct {
	Name                  string
	UnlimitedParticipants bool
	MultipleParticipation bool
	ParticipationFee      string
	ParticipantsRequired  uint64
	RaffleTime            uint64
	ParticipationFeeType  uint64
	RewardType            uint64
	Rewards               []string
	WinnerCount           uint64
	IncreasingPool        bool
	TransferFeeToPool     []uint64

	// Optional token holding required to participate
	RequirementMint   ed25519.PublicKey
	RequirementAmount string
}

// InitRaffle creates the next raffle and returns the number it is expected
// to receive. The number is predicted from the counter read just before
// submission; a concurrent creation makes the program reject this one.
func (c *Client) InitRaffle(ctx context.Context, initializer ed25519.PrivateKey, params *InitRaffleParams) (solana.Signature, uint64, error) {
	const op = "init_raffle"

	if params == nil {
		return solana.Signature{}, 0, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "raffle parameters are required"))
	}
	if len(params.Name) > raffle_program.MaxRaffleNameLength {
		return solana.Signature{}, 0, newError(op, KindRangeViolation, errors.Wrapf(ErrRangeViolation, "raffle name exceeds %d bytes", raffle_program.MaxRaffleNameLength))
	}
	if params.RequirementMint != nil && len(params.RequirementMint) != ed25519.PublicKeySize {
		return solana.Signature{}, 0, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "invalid requirement mint"))
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindUnknown, err)
	}

	counter, err := c.GetCounter(ctx)
	if err != nil {
		return solana.Signature{}, 0, classify(op, err)
	}
	raffleNo, ok := counter.Account.Next()
	if !ok {
		return solana.Signature{}, 0, newError(op, KindRangeViolation, errors.Wrap(ErrRangeViolation, "raffle counter exhausted"))
	}

	raffle, err := c.GetRaffleAddress(raffleNo)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindUnknown, err)
	}

	feeType, err := c.GetFeeType(ctx, params.ParticipationFeeType)
	if err != nil {
		return solana.Signature{}, 0, classify(op, err)
	}
	rewardType, err := c.GetRewardType(ctx, params.RewardType)
	if err != nil {
		return solana.Signature{}, 0, classify(op, err)
	}

	feeMint, err := c.typeMint(ctx, feeType.Account, true)
	if err != nil {
		return solana.Signature{}, 0, classify(op, err)
	}
	rewardMint, err := c.typeMint(ctx, rewardType.Account, false)
	if err != nil {
		return solana.Signature{}, 0, classify(op, err)
	}

	participationFee, err := ToBaseUnits(params.ParticipationFee, feeMint.Decimals)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindRangeViolation, errors.Wrap(err, "participation fee"))
	}
	rewards, err := ScaleAmounts(params.Rewards, rewardMint.Decimals)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindRangeViolation, errors.Wrap(err, "rewards"))
	}

	args := &raffle_program.InitRaffleInstructionArgs{
		IsUnlimitedParticipantAllowed: flag(params.UnlimitedParticipants),
		Name:                          params.Name,
		ParticipationFee:              participationFee,
		ParticipantsRequired:          params.ParticipantsRequired,
		RaffleTime:                    params.RaffleTime,
		MultipleParticipationAllowed:  flag(params.MultipleParticipation),
		ParticipationFeeType:          params.ParticipationFeeType,
		RewardType:                    params.RewardType,
		Rewards:                       rewards,
		RequirementMint:               make(ed25519.PublicKey, ed25519.PublicKeySize),
		WinnerCount:                   params.WinnerCount,
		IsIncreasingPool:              flag(params.IncreasingPool),
		TransferFeeToPool:             params.TransferFeeToPool,
	}
	if args.TransferFeeToPool == nil {
		args.TransferFeeToPool = []uint64{}
	}

	initializerAta, err := associatedAccount(publicKey(initializer), rewardMint)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindUnknown, err)
	}
	raffleRewardAta, err := associatedAccount(raffle, rewardMint)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindUnknown, err)
	}
	raffleFeeAta, err := associatedAccount(raffle, feeMint)
	if err != nil {
		return solana.Signature{}, 0, newError(op, KindUnknown, err)
	}

	accounts := &raffle_program.InitRaffleInstructionAccounts{
		Initializer:          publicKey(initializer),
		InitializerRewardAta: initializerAta,
		Raffle:               raffle,
		RaffleRewardAta:      raffleRewardAta,
		RaffleFeeAta:         raffleFeeAta,
		Counter:              singletons.Counter,
		Term:                 singletons.Term,
		RewardType:           rewardType.Address,
		FeeType:              feeType.Address,
		RewardMint:           rewardMint.Address,
		RewardTokenProgram:   rewardMint.TokenProgram,
		FeeMint:              feeMint.Address,
		FeeTokenProgram:      feeMint.TokenProgram,
	}

	if params.RequirementMint != nil {
		requirementMint, err := c.GetMint(ctx, params.RequirementMint)
		if err != nil {
			return solana.Signature{}, 0, classify(op, err)
		}

		amount, err := ToBaseUnits(params.RequirementAmount, requirementMint.Decimals)
		if err != nil {
			return solana.Signature{}, 0, newError(op, KindRangeViolation, errors.Wrap(err, "requirement amount"))
		}

		raffleRequirementAta, err := associatedAccount(raffle, requirementMint)
		if err != nil {
			return solana.Signature{}, 0, newError(op, KindUnknown, err)
		}

		args.RequirementToParticipate = 1
		args.RequirementAmountToken = amount
		args.RequirementMint = requirementMint.Address
		args.RequiredTokenDecimals = requirementMint.Decimals

		accounts.Requirement = &raffle_program.InitRaffleRequirementAccounts{
			RaffleAta:    raffleRequirementAta,
			Mint:         requirementMint.Address,
			TokenProgram: requirementMint.TokenProgram,
		}
	}

	c.log.WithFields(logrus.Fields{
		"raffle_no": raffleNo,
		"raffle":    base58.Encode(raffle),
		"args":      args.String(),
	}).Debug("building init_raffle")

	ix := raffle_program.NewInitRaffleInstruction(c.program(), accounts, args)
	sig, err := c.submit(ctx, &submission{
		op:           op,
		raffleNo:     &raffleNo,
		payer:        initializer,
		computeLimit: c.initRaffleComputeUnitLimit,
		instructions: []solana.Instruction{ix},
	})
	return sig, raffleNo, err
}

// CollectFeeInitializer pays the initializer its share of a finished
// raffle's participation fees.
func (c *Client) CollectFeeInitializer(ctx context.Context, initializer ed25519.PrivateKey, raffleNo uint64) (solana.Signature, error) {
	const op = "collect_fee_initializer"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	accounts := &raffle_program.CollectFeeInitializerInstructionAccounts{
		Initializer:  publicKey(initializer),
		Raffle:       raffle.Address,
		Term:         singletons.Term,
		FeeCollector: singletons.FeeCollector,
	}

	if !raffle.Account.HasNativeFee() {
		feeMint, err := c.GetMint(ctx, raffle.Account.ParticipationFeeMint)
		if err != nil {
			return solana.Signature{}, classify(op, err)
		}

		feeCollectorAta, err := associatedAccount(singletons.FeeCollector, feeMint)
		if err != nil {
			return solana.Signature{}, newError(op, KindUnknown, err)
		}
		initializerAta, err := associatedAccount(publicKey(initializer), feeMint)
		if err != nil {
			return solana.Signature{}, newError(op, KindUnknown, err)
		}
		raffleAta, err := associatedAccount(raffle.Address, feeMint)
		if err != nil {
			return solana.Signature{}, newError(op, KindUnknown, err)
		}

		accounts.Token = &raffle_program.CollectFeeInitializerTokenAccounts{
			FeeCollectorAta: feeCollectorAta,
			InitializerAta:  initializerAta,
			RaffleAta:       raffleAta,
			TokenProgram:    feeMint.TokenProgram,
			Mint:            feeMint.Address,
		}
	}

	ix := raffle_program.NewCollectFeeInitializerInstruction(c.program(), accounts)
	return c.submit(ctx, &submission{op: op, raffleNo: &raffleNo, payer: initializer, instructions: []solana.Instruction{ix}})
}

// FreezeTest submits the diagnostic freeze instruction for a participant's
// fee token account.
func (c *Client) FreezeTest(ctx context.Context, initializer ed25519.PrivateKey, raffleNo uint64, participant ed25519.PublicKey, x uint64) (solana.Signature, error) {
	const op = "freeze_test"

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	feeMint, err := c.GetMint(ctx, raffle.Account.ParticipationFeeMint)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	participantAta, err := associatedAccount(participant, feeMint)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewFreezeTestInstruction(
		c.program(),
		&raffle_program.FreezeTestInstructionAccounts{
			Initializer:     publicKey(initializer),
			Raffle:          raffle.Address,
			FeeTokenProgram: feeMint.TokenProgram,
			FeeMint:         feeMint.Address,
			ParticipantAta:  participantAta,
		},
		&raffle_program.FreezeTestInstructionArgs{X: x},
	)
	return c.submit(ctx, &submission{op: op, raffleNo: &raffleNo, payer: initializer, instructions: []solana.Instruction{ix}})
}

// typeMint resolves the mint registered under a fee or reward type. Decimals
// always come from the registration. The native fee type has no token program
// of its own and is addressed through the SPL token program. Reward mints are
// always looked up.
func (c *Client) typeMint(ctx context.Context, record *raffle_program.RewardFeeTypeAccount, isFee bool) (*Mint, error) {
	if isFee && record.IsNativeFee() {
		return &Mint{
			Address:      record.Mint,
			TokenProgram: token.ProgramKey,
			Decimals:     record.Decimals,
		}, nil
	}

	mint, err := c.GetMint(ctx, record.Mint)
	if err != nil {
		return nil, err
	}
	return &Mint{
		Address:      mint.Address,
		TokenProgram: mint.TokenProgram,
		Decimals:     record.Decimals,
	}, nil
}

// getRewardMint resolves a raffle's reward mint, scaled by the decimals
// recorded at creation.
func (c *Client) getRewardMint(ctx context.Context, raffle *raffle_program.RaffleAccount) (*Mint, error) {
	mint, err := c.GetMint(ctx, raffle.RewardMint)
	if err != nil {
		return nil, err
	}
	return &Mint{
		Address:      mint.Address,
		TokenProgram: mint.TokenProgram,
		Decimals:     raffle.RewardDecimals,
	}, nil
}

func flag(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
