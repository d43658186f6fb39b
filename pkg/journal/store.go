package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("journal record not found")
	ErrExists   = errors.New("journal record already exists")
)

// Record is a single submitted transaction.
type Record struct {
	Id        uuid.UUID
	Operation string
	Payer     string
	Signature string
	RaffleNo  *uint64
	CreatedAt time.Time
}

type Store interface {
	// Save inserts a new record. A zero Id or CreatedAt is assigned by the
	// store. Records are unique by signature.
	Save(ctx context.Context, record *Record) error

	// Get returns the record for a transaction signature.
	Get(ctx context.Context, signature string) (*Record, error)

	// GetRecent returns up to limit records, newest first.
	GetRecent(ctx context.Context, limit int) ([]*Record, error)

	// GetAllByRaffle returns every record referring to raffleNo, newest first.
	GetAllByRaffle(ctx context.Context, raffleNo uint64) ([]*Record, error)
}

// NewRecord returns a record stamped with a fresh id and the current time.
func NewRecord(operation, payer, signature string, raffleNo *uint64) *Record {
	return &Record{
		Id:        uuid.New(),
		Operation: operation,
		Payer:     payer,
		Signature: signature,
		RaffleNo:  raffleNo,
		CreatedAt: time.Now(),
	}
}

func (r *Record) Validate() error {
	if len(r.Operation) == 0 {
		return errors.New("operation is required")
	}

	if len(r.Payer) == 0 {
		return errors.New("payer is required")
	}

	if len(r.Signature) == 0 {
		return errors.New("signature is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	var raffleNo *uint64
	if r.RaffleNo != nil {
		value := *r.RaffleNo
		raffleNo = &value
	}

	return Record{
		Id:        r.Id,
		Operation: r.Operation,
		Payer:     r.Payer,
		Signature: r.Signature,
		RaffleNo:  raffleNo,
		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	cloned := r.Clone()
	*dst = cloned
}
