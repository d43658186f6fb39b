package raffle

import (
	"context"
	"crypto/ed25519"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
)

// JoinRaffle enters the participant into a raffle and returns the identity
// of the participation record it creates.
//
// In multiple entry raffles the participant number is predicted from the
// participant count read just before submission. Concurrent joins predict
// the same number and all but one are rejected by the program.
func (c *Client) JoinRaffle(ctx context.Context, participant ed25519.PrivateKey, raffleNo uint64) (solana.Signature, raffle_program.ParticipationID, error) {
	const op = "join_raffle"

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, raffle_program.ParticipationID{}, classify(op, err)
	}

	current := raffle.Account.CurrentNumberOfParticipants
	if current == math.MaxUint64 {
		return solana.Signature{}, raffle_program.ParticipationID{}, newError(op, KindRangeViolation, errors.Wrap(ErrRangeViolation, "participant count exhausted"))
	}

	wallet := publicKey(participant)
	id := raffle_program.NewParticipationID(raffle.Account, wallet, current+1)

	participation, err := c.GetParticipationAddress(raffleNo, id)
	if err != nil {
		return solana.Signature{}, raffle_program.ParticipationID{}, newError(op, KindUnknown, err)
	}

	accounts := &raffle_program.JoinRaffleInstructionAccounts{
		Participant:   wallet,
		Raffle:        raffle.Address,
		Participation: participation,
	}

	if !raffle.Account.HasNativeFee() {
		accounts.Fee, err = c.tokenTransferAccounts(ctx, wallet, raffle.Address, raffle.Account.ParticipationFeeMint)
		if err != nil {
			return solana.Signature{}, raffle_program.ParticipationID{}, classify(op, err)
		}
	}

	if raffle.Account.HasTokenRequirement() {
		accounts.Requirement, err = c.tokenTransferAccounts(ctx, wallet, raffle.Address, raffle.Account.RequirementMint)
		if err != nil {
			return solana.Signature{}, raffle_program.ParticipationID{}, classify(op, err)
		}
	}

	c.log.WithFields(logrus.Fields{
		"raffle_no":     raffleNo,
		"participation": base58.Encode(participation),
		"id":            id.String(),
	}).Debug("building join_raffle")

	ix := raffle_program.NewJoinRaffleInstruction(c.program(), accounts)
	sig, err := c.submit(ctx, &submission{
		op:           op,
		raffleNo:     &raffleNo,
		payer:        participant,
		computeLimit: c.joinRaffleComputeUnitLimit,
		instructions: []solana.Instruction{ix},
	})
	return sig, id, err
}

// ClaimPrize transfers a winner's reward. participantNo identifies the
// winning entry in multiple entry raffles and is ignored otherwise. Entries
// are numbered from 1, so zero means no entry was given.
func (c *Client) ClaimPrize(ctx context.Context, winner ed25519.PrivateKey, raffleNo, participantNo uint64) (solana.Signature, error) {
	const op = "claim_prize"

	raffle, err := c.GetRaffle(ctx, raffleNo)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}
	if raffle.Account.AllowsMultipleParticipation() && participantNo == 0 {
		return solana.Signature{}, newError(op, KindInvalidArgument, errors.Wrap(ErrInvalidArgument, "participant number is required for multiple entry raffles"))
	}

	wallet := publicKey(winner)
	id := raffle_program.NewParticipationID(raffle.Account, wallet, participantNo)

	participation, err := c.GetParticipationAddress(raffleNo, id)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	rewardMint, err := c.getRewardMint(ctx, raffle.Account)
	if err != nil {
		return solana.Signature{}, classify(op, err)
	}

	raffleRewardAta, err := associatedAccount(raffle.Address, rewardMint)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}
	winnerRewardAta, err := associatedAccount(wallet, rewardMint)
	if err != nil {
		return solana.Signature{}, newError(op, KindUnknown, err)
	}

	accounts := &raffle_program.ClaimPrizeInstructionAccounts{
		Raffle:             raffle.Address,
		RaffleRewardAta:    raffleRewardAta,
		Participation:      participation,
		Winner:             wallet,
		WinnerRewardAta:    winnerRewardAta,
		RewardMint:         rewardMint.Address,
		RewardTokenProgram: rewardMint.TokenProgram,
	}

	if raffle.Account.HasTokenRequirement() {
		requirement, err := c.tokenTransferAccounts(ctx, wallet, raffle.Address, raffle.Account.RequirementMint)
		if err != nil {
			return solana.Signature{}, classify(op, err)
		}

		accounts.Requirement = &raffle_program.ClaimPrizeRequirementAccounts{
			RaffleAta:      requirement.RaffleAta,
			ParticipantAta: requirement.ParticipantAta,
			Mint:           requirement.Mint,
			TokenProgram:   requirement.TokenProgram,
		}
	}

	ix := raffle_program.NewClaimPrizeInstruction(c.program(), accounts)
	return c.submit(ctx, &submission{op: op, raffleNo: &raffleNo, payer: winner, instructions: []solana.Instruction{ix}})
}

func (c *Client) tokenTransferAccounts(ctx context.Context, wallet, raffle, mint ed25519.PublicKey) (*raffle_program.TokenTransferAccounts, error) {
	mintInfo, err := c.GetMint(ctx, mint)
	if err != nil {
		return nil, err
	}

	participantAta, err := associatedAccount(wallet, mintInfo)
	if err != nil {
		return nil, err
	}
	raffleAta, err := associatedAccount(raffle, mintInfo)
	if err != nil {
		return nil, err
	}

	return &raffle_program.TokenTransferAccounts{
		Mint:           mintInfo.Address,
		ParticipantAta: participantAta,
		RaffleAta:      raffleAta,
		TokenProgram:   mintInfo.TokenProgram,
	}, nil
}
