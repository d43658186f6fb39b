package raffle

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/journal"
	"github.com/code-payments/raffle-client/pkg/solana"
	compute_budget "github.com/code-payments/raffle-client/pkg/solana/computebudget"
)

type submission struct {
	op           string
	raffleNo     *uint64
	payer        ed25519.PrivateKey
	extraSigners []ed25519.PrivateKey
	computeLimit uint32
	instructions []solana.Instruction
}

// submit paces, signs and sends a single transaction, then journals it.
//
// The signature is returned whenever the node produced a verdict on the
// transaction, including on-chain rejections.
func (c *Client) submit(ctx context.Context, s *submission) (solana.Signature, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return solana.Signature{}, newError(s.op, KindUnknown, err)
	}

	bh, err := c.sc.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, newError(s.op, KindRPC, errors.Wrap(err, "failed to get latest blockhash"))
	}

	instructions := s.instructions
	if s.computeLimit > 0 {
		instructions = append([]solana.Instruction{compute_budget.SetComputeUnitLimit(s.computeLimit)}, instructions...)
	}

	payer := publicKey(s.payer)
	txn := solana.NewV0Transaction(payer, instructions...)
	txn.SetBlockhash(bh)

	signers := append([]ed25519.PrivateKey{s.payer}, s.extraSigners...)
	if err := txn.Sign(signers...); err != nil {
		return solana.Signature{}, newError(s.op, KindInvalidArgument, err)
	}
	if missing := txn.Unsigned(); len(missing) > 0 {
		return solana.Signature{}, newError(s.op, KindInvalidArgument, errors.Errorf("missing signature for %s", base58.Encode(missing[0])))
	}

	if err := ctx.Err(); err != nil {
		return solana.Signature{}, newError(s.op, KindUnknown, err)
	}

	log := c.log.WithFields(logrus.Fields{
		"method": s.op,
		"payer":  base58.Encode(payer),
	})
	if s.raffleNo != nil {
		log = log.WithField("raffle_no", *s.raffleNo)
	}

	sig, err := c.sc.SubmitTransaction(txn, c.commitment)
	var txErr *solana.TransactionError
	if errors.As(err, &txErr) {
		log.WithFields(logrus.Fields{
			"signature": sig.String(),
			"logs":      txErr.Logs(),
		}).WithError(txErr).Warn("transaction rejected")

		if journalErr := c.record(ctx, s, payer, sig); journalErr != nil {
			log.WithError(journalErr).Warn("failed to journal rejected transaction")
		}
		return sig, newError(s.op, KindOnChainReject, txErr)
	} else if err != nil {
		log.WithError(err).Warn("failure submitting transaction")
		return solana.Signature{}, newError(s.op, KindRPC, err)
	}

	log.WithField("signature", sig.String()).Info("transaction submitted")

	if err := c.record(ctx, s, payer, sig); err != nil {
		log.WithError(err).Warn("failed to journal transaction")
		return sig, newError(s.op, KindUnknown, errors.Wrap(err, "transaction submitted but not journaled"))
	}
	return sig, nil
}

func (c *Client) record(ctx context.Context, s *submission, payer ed25519.PublicKey, sig solana.Signature) error {
	record := journal.NewRecord(s.op, base58.Encode(payer), sig.String(), s.raffleNo)
	return c.journal.Save(ctx, record)
}
