package raffle

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ToBaseUnits converts a human readable amount, such as "1.5", into base
// units of a token with the given decimals. Fractions below one base unit
// are truncated. Amounts above the u64 range return math.MaxUint64 along with
// ErrRangeViolation.
func ToBaseUnits(amount string, decimals uint8) (uint64, error) {
	if len(amount) == 0 {
		return 0, nil
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(ErrRangeViolation, "invalid amount %q", amount)
	}
	return ScaleAmount(value, decimals)
}

// ScaleAmount is ToBaseUnits for an already parsed amount.
func ScaleAmount(value decimal.Decimal, decimals uint8) (uint64, error) {
	if value.IsNegative() {
		return 0, errors.Wrapf(ErrRangeViolation, "negative amount %s", value)
	}

	scaled := value.Shift(int32(decimals)).Floor()
	if scaled.GreaterThan(maxUint64) {
		return math.MaxUint64, errors.Wrapf(ErrRangeViolation, "%s with %d decimals exceeds u64", value, decimals)
	}
	return scaled.BigInt().Uint64(), nil
}

// ScaleAmounts applies ToBaseUnits to each amount.
func ScaleAmounts(amounts []string, decimals uint8) ([]uint64, error) {
	res := make([]uint64, len(amounts))
	for i, amount := range amounts {
		scaled, err := ToBaseUnits(amount, decimals)
		if err != nil {
			return nil, err
		}
		res[i] = scaled
	}
	return res, nil
}

// FromBaseUnits converts base units back into a human readable amount.
func FromBaseUnits(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
}
