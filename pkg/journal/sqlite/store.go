package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/code-payments/raffle-client/pkg/journal"
)

type store struct {
	db *gorm.DB
}

// Open opens, and migrates, the sqlite database at path. Use ":memory:" for
// a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open journal database %s", path)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate journal database")
	}
	return db, nil
}

// New returns a new sqlite backed journal.Store
func New(db *gorm.DB) journal.Store {
	return &store{
		db: db,
	}
}

// Save implements journal.Store.Save
func (s *store) Save(ctx context.Context, record *journal.Record) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	m, err := toModel(record)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model{}).Where("signature = ?", m.Signature).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check for existing record")
		}
		if count > 0 {
			return journal.ErrExists
		}

		if err := tx.Create(m).Error; err != nil {
			return errors.Wrapf(err, "failed to save record for %s", m.Signature)
		}
		return nil
	})
}

// Get implements journal.Store.Get
func (s *store) Get(ctx context.Context, signature string) (*journal.Record, error) {
	var m model
	err := s.db.WithContext(ctx).Where("signature = ?", signature).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, journal.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get record for %s", signature)
	}
	return fromModel(&m)
}

// GetRecent implements journal.Store.GetRecent
func (s *store) GetRecent(ctx context.Context, limit int) ([]*journal.Record, error) {
	var models []model
	query := s.db.WithContext(ctx).Order("seq DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query recent records")
	}
	return fromModels(models)
}

// GetAllByRaffle implements journal.Store.GetAllByRaffle
func (s *store) GetAllByRaffle(ctx context.Context, raffleNo uint64) ([]*journal.Record, error) {
	var models []model
	err := s.db.WithContext(ctx).
		Where("raffle_no = ?", raffleNoColumn(raffleNo)).
		Order("seq DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query records for raffle %d", raffleNo)
	}
	if len(models) == 0 {
		return nil, journal.ErrNotFound
	}
	return fromModels(models)
}
