package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/code-payments/raffle-client/pkg/journal"
)

type store struct {
	mu      sync.Mutex
	records []*journal.Record
}

// New returns a new in memory journal.Store
func New() journal.Store {
	return &store{}
}

// Save implements journal.Store.Save
func (s *store) Save(_ context.Context, data *journal.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBySignature(data.Signature) != nil {
		return journal.ErrExists
	}

	if data.Id == uuid.Nil {
		data.Id = uuid.New()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	cloned := data.Clone()
	s.records = append(s.records, &cloned)
	return nil
}

// Get implements journal.Store.Get
func (s *store) Get(_ context.Context, signature string) (*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findBySignature(signature)
	if item == nil {
		return nil, journal.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetRecent implements journal.Store.GetRecent
func (s *store) GetRecent(_ context.Context, limit int) ([]*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.newestFirst(limit, func(*journal.Record) bool { return true }), nil
}

// GetAllByRaffle implements journal.Store.GetAllByRaffle
func (s *store) GetAllByRaffle(_ context.Context, raffleNo uint64) ([]*journal.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newestFirst(0, func(item *journal.Record) bool {
		return item.RaffleNo != nil && *item.RaffleNo == raffleNo
	})
	if len(res) == 0 {
		return nil, journal.ErrNotFound
	}
	return res, nil
}

func (s *store) findBySignature(signature string) *journal.Record {
	for _, item := range s.records {
		if item.Signature == signature {
			return item
		}
	}

	return nil
}

func (s *store) newestFirst(limit int, include func(*journal.Record) bool) []*journal.Record {
	var res []*journal.Record
	for i := len(s.records) - 1; i >= 0; i-- {
		if limit > 0 && len(res) >= limit {
			break
		}

		if include(s.records[i]) {
			cloned := s.records[i].Clone()
			res = append(res, &cloned)
		}
	}
	return res
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
