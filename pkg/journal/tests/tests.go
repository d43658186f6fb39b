package tests

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/raffle-client/pkg/journal"
)

func RunTests(t *testing.T, s journal.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s journal.Store){
		testHappyPath,
		testGetRecent,
		testGetAllByRaffle,
		testValidation,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s journal.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()

		raffleNo := uint64(12)
		record := &journal.Record{
			Operation: "join_raffle",
			Payer:     "payer",
			Signature: "signature",
			RaffleNo:  &raffleNo,
		}

		_, err := s.Get(ctx, record.Signature)
		assert.Equal(t, journal.ErrNotFound, err)

		require.NoError(t, s.Save(ctx, record))
		assert.NotEqual(t, uuid.Nil, record.Id)
		assert.False(t, record.CreatedAt.Before(start))
		cloned := record.Clone()

		actual, err := s.Get(ctx, record.Signature)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)

		// Records are owned by the store once saved
		raffleNo = 99
		actual, err = s.Get(ctx, record.Signature)
		require.NoError(t, err)
		assert.EqualValues(t, 12, *actual.RaffleNo)

		duplicate := journal.NewRecord("claim_prize", "other", record.Signature, nil)
		assert.Equal(t, journal.ErrExists, s.Save(ctx, duplicate))
	})
}

func testGetRecent(t *testing.T, s journal.Store) {
	t.Run("testGetRecent", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, actual)

		var expected []*journal.Record
		for i := 0; i < 5; i++ {
			record := journal.NewRecord("init_counter", "payer", fmt.Sprintf("signature%d", i), nil)
			require.NoError(t, s.Save(ctx, record))
			expected = append(expected, record)
		}

		actual, err = s.GetRecent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		for i, record := range actual {
			assertEquivalentRecords(t, expected[4-i], record)
		}

		actual, err = s.GetRecent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, actual, 5)
	})
}

func testGetAllByRaffle(t *testing.T, s journal.Store) {
	t.Run("testGetAllByRaffle", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByRaffle(ctx, 1)
		assert.Equal(t, journal.ErrNotFound, err)

		one := uint64(1)
		two := uint64(2)
		for i, raffleNo := range []*uint64{&one, &two, nil, &one} {
			record := journal.NewRecord("join_raffle", "payer", fmt.Sprintf("signature%d", i), raffleNo)
			require.NoError(t, s.Save(ctx, record))
		}

		actual, err := s.GetAllByRaffle(ctx, 1)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "signature3", actual[0].Signature)
		assert.Equal(t, "signature0", actual[1].Signature)

		actual, err = s.GetAllByRaffle(ctx, 2)
		require.NoError(t, err)
		require.Len(t, actual, 1)
		assert.Equal(t, "signature1", actual[0].Signature)

		// The full uint64 range round trips
		for i, raffleNo := range []uint64{math.MaxInt64, 1 << 63, math.MaxUint64} {
			record := journal.NewRecord("claim_prize", "payer", fmt.Sprintf("large%d", i), &raffleNo)
			require.NoError(t, s.Save(ctx, record))

			saved, err := s.Get(ctx, record.Signature)
			require.NoError(t, err)
			require.NotNil(t, saved.RaffleNo)
			assert.Equal(t, raffleNo, *saved.RaffleNo)

			actual, err = s.GetAllByRaffle(ctx, raffleNo)
			require.NoError(t, err)
			require.Len(t, actual, 1)
			assert.Equal(t, record.Signature, actual[0].Signature)
		}
	})
}

func testValidation(t *testing.T, s journal.Store) {
	t.Run("testValidation", func(t *testing.T) {
		ctx := context.Background()

		for _, record := range []*journal.Record{
			{Payer: "payer", Signature: "signature"},
			{Operation: "join_raffle", Signature: "signature"},
			{Operation: "join_raffle", Payer: "payer"},
		} {
			assert.Error(t, s.Save(ctx, record))
		}

		actual, err := s.GetRecent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *journal.Record) {
	assert.Equal(t, obj1.Id, obj2.Id)
	assert.Equal(t, obj1.Operation, obj2.Operation)
	assert.Equal(t, obj1.Payer, obj2.Payer)
	assert.Equal(t, obj1.Signature, obj2.Signature)
	assert.Equal(t, obj1.RaffleNo, obj2.RaffleNo)
	assert.WithinDuration(t, obj1.CreatedAt, obj2.CreatedAt, time.Millisecond)
}
