package sqlite

import (
	"time"

	"github.com/google/uuid"

	"github.com/code-payments/raffle-client/pkg/journal"
)

const (
	tableName = "raffle__journal"
)

type model struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	Id        string    `gorm:"uniqueIndex;size:36;not null"`
	Operation string    `gorm:"not null"`
	Payer     string    `gorm:"index;not null"`
	Signature string    `gorm:"uniqueIndex;not null"`
	RaffleNo  *int64    `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (model) TableName() string {
	return tableName
}

func toModel(obj *journal.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	cloned := obj.Clone()
	return &model{
		Id:        cloned.Id.String(),
		Operation: cloned.Operation,
		Payer:     cloned.Payer,
		Signature: cloned.Signature,
		RaffleNo:  toColumn(cloned.RaffleNo),
		CreatedAt: cloned.CreatedAt.UTC(),
	}, nil
}

func fromModel(obj *model) (*journal.Record, error) {
	id, err := uuid.Parse(obj.Id)
	if err != nil {
		return nil, err
	}

	return &journal.Record{
		Id:        id,
		Operation: obj.Operation,
		Payer:     obj.Payer,
		Signature: obj.Signature,
		RaffleNo:  fromColumn(obj.RaffleNo),
		CreatedAt: obj.CreatedAt,
	}, nil
}

// Raffle numbers are stored by their int64 bit pattern. database/sql refuses
// uint64 arguments with the high bit set.
func raffleNoColumn(raffleNo uint64) int64 {
	return int64(raffleNo)
}

func toColumn(raffleNo *uint64) *int64 {
	if raffleNo == nil {
		return nil
	}
	v := raffleNoColumn(*raffleNo)
	return &v
}

func fromColumn(v *int64) *uint64 {
	if v == nil {
		return nil
	}
	raffleNo := uint64(*v)
	return &raffleNo
}

func fromModels(objs []model) ([]*journal.Record, error) {
	res := make([]*journal.Record, 0, len(objs))
	for i := range objs {
		record, err := fromModel(&objs[i])
		if err != nil {
			return nil, err
		}
		res = append(res, record)
	}
	return res, nil
}
