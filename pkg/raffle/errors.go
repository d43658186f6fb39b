package raffle

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/config"
	"github.com/code-payments/raffle-client/pkg/config/wrapper"
	"github.com/code-payments/raffle-client/pkg/keyring"
	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// Kind classifies failures surfaced by the client.
type Kind uint8

const (
	KindUnknown Kind = iota

	// A required key or setting is absent or unusable
	KindConfigMissing

	// Account bytes do not match the declared layout
	KindMalformed

	// The call to the node failed
	KindRPC

	// The node accepted the call but rejected the transaction
	KindOnChainReject

	// A numeric input cannot be encoded
	KindRangeViolation

	// An expected account does not exist
	KindNotFound

	// An argument is inconsistent with chain state or with other arguments
	KindInvalidArgument
)

var (
	ErrMalformed       = errors.New("malformed account")
	ErrRangeViolation  = errors.New("value out of range")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "config_missing"
	case KindMalformed:
		return "malformed"
	case KindRPC:
		return "rpc"
	case KindOnChainReject:
		return "on_chain_reject"
	case KindRangeViolation:
		return "range_violation"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	}
	return "unknown"
}

// Error is returned by every Client operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the underlying sentinel.
func (e *Error) Cause() error {
	return e.Err
}

// KindOf classifies err. Errors from lower layers are mapped by their
// sentinel.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var txErr *solana.TransactionError
	if errors.As(err, &txErr) {
		return KindOnChainReject
	}

	switch errors.Cause(err) {
	case keyring.ErrMissingKey, keyring.ErrInvalidKey, config.ErrNoValue, wrapper.ErrInvalidKeypair:
		return KindConfigMissing
	case ErrMalformed,
		raffle_program.ErrInvalidAccountData,
		raffle_program.ErrInvalidVectorLength,
		raffle_program.ErrInvalidInstructionData,
		token.ErrInvalidMint,
		token.ErrInvalidTokenAccount:
		return KindMalformed
	case ErrRangeViolation:
		return KindRangeViolation
	case ErrAccountNotFound, solana.ErrNoAccountInfo, solana.ErrNoBalance, token.ErrAccountNotFound:
		return KindNotFound
	case ErrInvalidArgument, raffle_program.ErrUnknownDeployment:
		return KindInvalidArgument
	case solana.ErrRateLimited, solana.ErrServiceError:
		return KindRPC
	}
	return KindUnknown
}

// classify wraps err with op, keeping an existing classification.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	kind := KindOf(err)
	if kind == KindUnknown {
		kind = KindRPC
	}
	return newError(op, kind, err)
}
