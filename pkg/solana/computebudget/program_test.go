package compute_budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetComputeUnitLimit(t *testing.T) {
	ixn := SetComputeUnitLimit(500_000)

	assert.Equal(t, ProgramKey, ixn.Program)
	assert.Empty(t, ixn.Accounts)
	assert.Equal(t, []byte{2, 0x20, 0xa1, 0x07, 0x00}, ixn.Data)

	limit, err := ParseSetComputeUnitLimitIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 500_000, limit)

	_, err = ParseSetComputeUnitLimitIxnData(SetComputeUnitPrice(1).Data)
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestSetComputeUnitPrice(t *testing.T) {
	ixn := SetComputeUnitPrice(1000)
	assert.Equal(t, []byte{3, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}, ixn.Data)

	price, err := ParseSetComputeUnitPriceIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, price)

	_, err = ParseSetComputeUnitPriceIxnData([]byte{3})
	assert.Equal(t, ErrInvalidInstructionData, err)
}
