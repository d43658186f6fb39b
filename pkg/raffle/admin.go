package raffle

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
)

// InitConfig bootstraps the authority set. The signer must be the first
// authority.
func (c *Client) InitConfig(ctx context.Context, authority ed25519.PrivateKey, authorities [4]ed25519.PublicKey) (solana.Signature, error) {
	const op = "init_config"

	if !bytes.Equal(publicKey(authority), authorities[0]) {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "signer must be the first authority"))
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewInitConfigInstruction(c.program(), &raffle_program.InitConfigInstructionAccounts{
		Authorities: authorities,
		Config:      singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

// SetConfig replaces the authority set. Any current authority may sign.
func (c *Client) SetConfig(ctx context.Context, authority ed25519.PrivateKey, authorities [4]ed25519.PublicKey) (solana.Signature, error) {
	const op = "set_config"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewSetConfigInstruction(c.program(), &raffle_program.SetConfigInstructionAccounts{
		Authority:   publicKey(authority),
		Authorities: authorities,
		Config:      singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

func (c *Client) InitTerm(ctx context.Context, authority ed25519.PrivateKey) (solana.Signature, error) {
	const op = "init_term"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewInitTermInstruction(c.program(), &raffle_program.InitTermInstructionAccounts{
		Authority: publicKey(authority),
		Term:      singletons.Term,
		Config:    singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

func (c *Client) InitCounter(ctx context.Context, authority ed25519.PrivateKey) (solana.Signature, error) {
	const op = "init_counter"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewInitCounterInstruction(c.program(), &raffle_program.InitCounterInstructionAccounts{
		Authority: publicKey(authority),
		Counter:   singletons.Counter,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

func (c *Client) InitFeeCollector(ctx context.Context, authority ed25519.PrivateKey) (solana.Signature, error) {
	const op = "init_fee_collector"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewInitFeeCollectorInstruction(c.program(), &raffle_program.InitFeeCollectorInstructionAccounts{
		Authority:    publicKey(authority),
		FeeCollector: singletons.FeeCollector,
		Config:       singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

type TermParams struct {
	FeePercent         uint64
	ExpirationTime     uint64
	MaximumWinnerCount uint64
}

func (c *Client) UpdateTerms(ctx context.Context, authority ed25519.PrivateKey, params *TermParams) (solana.Signature, error) {
	const op = "update_terms"

	if params == nil {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "terms are required"))
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewUpdateTermsInstruction(
		c.program(),
		&raffle_program.UpdateTermsInstructionAccounts{
			Authority: publicKey(authority),
			Term:      singletons.Term,
			Config:    singletons.Config,
		},
		&raffle_program.TermAccount{
			Initialized:        raffle_program.TermUpdated,
			FeePercent:         params.FeePercent,
			ExpirationTime:     params.ExpirationTime,
			MaximumWinnerCount: params.MaximumWinnerCount,
		},
	)
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

// CollectFee sweeps native fees held by the fee collector to the authority.
func (c *Client) CollectFee(ctx context.Context, authority ed25519.PrivateKey) (solana.Signature, error) {
	const op = "collect_fee"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewCollectFeeInstruction(c.program(), &raffle_program.CollectFeeInstructionAccounts{
		Authority:    publicKey(authority),
		FeeCollector: singletons.FeeCollector,
		Config:       singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

// CollectFeeToken sweeps the fee collector's balance of mint to the
// authority's associated token account.
func (c *Client) CollectFeeToken(ctx context.Context, authority ed25519.PrivateKey, mint ed25519.PublicKey) (solana.Signature, error) {
	const op = "collect_fee_token"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	mintInfo, err := c.GetMint(ctx, mint)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	authorityAta, err := associatedAccount(publicKey(authority), mintInfo)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}
	feeCollectorAta, err := associatedAccount(singletons.FeeCollector, mintInfo)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewCollectFeeTokenInstruction(c.program(), &raffle_program.CollectFeeTokenInstructionAccounts{
		Authority:       publicKey(authority),
		AuthorityAta:    authorityAta,
		FeeCollector:    singletons.FeeCollector,
		FeeCollectorAta: feeCollectorAta,
		TokenProgram:    mintInfo.TokenProgram,
		Mint:            mintInfo.Address,
		Config:          singletons.Config,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

// TypeParams registers a permitted token under a type number. Decimals
// default to the mint's own.
type TypeParams struct {
	No       uint64
	Mint     ed25519.PublicKey
	Decimals *uint8
}

func (c *Client) InitFeeType(ctx context.Context, authority ed25519.PrivateKey, params *TypeParams) (solana.Signature, error) {
	const op = "init_fee_type"

	if params == nil || len(params.Mint) != ed25519.PublicKeySize {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "fee type mint is required"))
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	feeType, err := c.GetFeeTypeAddress(params.No)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	mintInfo, err := c.GetMint(ctx, params.Mint)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	feeCollectorAta, err := associatedAccount(singletons.FeeCollector, mintInfo)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewInitFeeTypeInstruction(
		c.program(),
		&raffle_program.InitFeeTypeInstructionAccounts{
			Authority:       publicKey(authority),
			FeeType:         feeType,
			FeeCollector:    singletons.FeeCollector,
			FeeCollectorAta: feeCollectorAta,
			Mint:            mintInfo.Address,
			TokenProgram:    mintInfo.TokenProgram,
			Config:          singletons.Config,
		},
		&raffle_program.RewardFeeTypeAccount{
			Initialized: raffle_program.FeeTypeInitialized,
			Mint:        mintInfo.Address,
			Decimals:    decimalsOrDefault(params.Decimals, mintInfo),
			No:          params.No,
		},
	)
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

func (c *Client) InitRewardType(ctx context.Context, authority ed25519.PrivateKey, params *TypeParams) (solana.Signature, error) {
	const op = "init_reward_type"

	if params == nil || len(params.Mint) != ed25519.PublicKeySize {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "reward type mint is required"))
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	rewardType, err := c.GetRewardTypeAddress(params.No)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	var decimals uint8
	if params.Decimals != nil {
		decimals = *params.Decimals
	} else {
		mintInfo, err := c.GetMint(ctx, params.Mint)
		if err != nil {
			return solana.Signature{}, classify(op, err)
		}
		decimals = mintInfo.Decimals
	}

	ix := raffle_program.NewInitRewardTypeInstruction(
		c.program(),
		&raffle_program.InitRewardTypeInstructionAccounts{
			Authority:  publicKey(authority),
			RewardType: rewardType,
			Config:     singletons.Config,
		},
		&raffle_program.RewardFeeTypeAccount{
			Initialized: raffle_program.RewardTypeInitialized,
			Mint:        params.Mint,
			Decimals:    decimals,
			No:          params.No,
		},
	)
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

func decimalsOrDefault(decimals *uint8, mint *Mint) uint8 {
	if decimals != nil {
		return *decimals
	}
	return mint.Decimals
}

// CloseAccounts reclaims the rent of program owned accounts.
func (c *Client) CloseAccounts(ctx context.Context, authority ed25519.PrivateKey, targets []ed25519.PublicKey) (solana.Signature, error) {
	const op = "close_account"

	if len(targets) == 0 {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "no accounts to close"))
	}
	for _, target := range targets {
		if len(target) != ed25519.PublicKeySize {
			return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrapf(ErrInvalidArgument, "invalid account %s", base58.Encode(target)))
		}
	}

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	ix := raffle_program.NewCloseAccountInstruction(c.program(), &raffle_program.CloseAccountInstructionAccounts{
		Authority: publicKey(authority),
		Config:    singletons.Config,
		Targets:   targets,
	})
	return c.submit(ctx, &submission{op: op, payer: authority, instructions: []solana.Instruction{ix}})
}

// ChooseWinner requests the draw for a raffle. A raffle nobody joined is
// refunded to its initializer by the same instruction.
func (c *Client) ChooseWinner(ctx context.Context, authority ed25519.PrivateKey, raffleNo, limit uint64) (solana.Signature, error) {
	const op = "choose_winner"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	accounts := &raffle_program.ChooseWinnerInstructionAccounts{
		Authority:      publicKey(authority),
		Raffle:         raffle.Address,
		EntropyAccount: c.deployment.EntropyAccount,
		RngFeeAccount:  c.deployment.RngFeeAccount,
		RngProgram:     c.deployment.RngProgram,
		Config:         singletons.Config,
	}

	if raffle.Account.CurrentNumberOfParticipants == 0 {
		rewardMint, err := c.getRewardMint(ctx, raffle.Account)
		if err != nil {
			return solana.Signature{}, classify(op, err)
		}

		initializerAta, err := associatedAccount(raffle.Account.Initializer, rewardMint)
		if err != nil {
			return solana.Signature{}, newError(op, KindUnknown, err)
		}
		raffleAta, err := associatedAccount(raffle.Address, rewardMint)
		if err != nil {
			return solana.Signature{}, newError(op, KindUnknown, err)
		}

		c.log.WithField("raffle_no", raffleNo).Debug("raffle has no participants, refunding initializer")

		accounts.Refund = &raffle_program.ChooseWinnerRefundAccounts{
			InitializerRewardAta: initializerAta,
			RaffleRewardAta:      raffleAta,
			RewardMint:           rewardMint.Address,
			RewardTokenProgram:   rewardMint.TokenProgram,
		}
	}

	ix := raffle_program.NewChooseWinnerInstruction(c.program(), accounts, &raffle_program.CallLimitInstructionArgs{Limit: limit})
	return c.submit(ctx, &submission{op: op, raffleNo: &raffleNo, payer: authority, instructions: []solana.Instruction{ix}})
}

// PublishWinners marks the drawn participations of a raffle as entitled.
func (c *Client) PublishWinners(ctx context.Context, authority ed25519.PrivateKey, raffleNo uint64) (solana.Signature, error) {
	const op = "publish_winner"

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	if len(raffle.Account.Winners) == 0 {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrapf(ErrInvalidArgument, "raffle %d has no drawn winners", raffleNo))
	}

	winners := make([]ed25519.PublicKey, 0, len(raffle.Account.Winners))
	for _, winnerNo := range raffle.Account.Winners {
		address, err := c.winnerParticipation(ctx, raffle, winnerNo)
		if err != nil {
			return solana.Signature{}, classify(op, err)
		}

		c.log.WithFields(logrus.Fields{
			"raffle_no":     raffleNo,
			"winner_no":     winnerNo,
			"participation": base58.Encode(address),
		}).Debug("resolved winner")

		winners = append(winners, address)
	}

	ix := raffle_program.NewPublishWinnerInstruction(c.program(), &raffle_program.PublishWinnerInstructionAccounts{
		Raffle:  raffle.Address,
		Winners: winners,
	})
	return c.submit(ctx, &submission{op: op, raffleNo: &raffleNo, payer: authority, instructions: []solana.Instruction{ix}})
}

// winnerParticipation returns the participation address of a drawn number.
// Wallet keyed participations can't be derived from the number, so they are
// looked up.
func (c *Client) winnerParticipation(ctx context.Context, raffle *Raffle, winnerNo uint64) (ed25519.PublicKey, error) {
	if raffle.Account.AllowsMultipleParticipation() {
		return c.GetParticipationAddress(raffle.Account.RaffleNo, raffle_program.ParticipationByNumber(winnerNo))
	}

	participation, err := c.GetParticipationByNumber(ctx, raffle.Account.RaffleNo, winnerNo)
	if err != nil {
		return nil, err
	}
	return participation.Address, nil
}
