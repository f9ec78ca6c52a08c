package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_TenPercent(t *testing.T) {
	calc := NewCalculator(1000)

	fee, revenue, err := calc.Split(10000)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), fee)
	assert.Equal(t, int64(9000), revenue)
}

func TestSplit_SumInvariant(t *testing.T) {
	calc := NewCalculator(1250) // 12.5%, forces rounding

	amounts := []int64{0, 1, 3, 99, 101, 4999, 10000, 123457, 99999999}
	for _, amount := range amounts {
		fee, revenue, err := calc.Split(amount)
		require.NoError(t, err)
		assert.Equal(t, amount, fee+revenue, "amount=%d", amount)
		assert.GreaterOrEqual(t, fee, int64(0))
		assert.GreaterOrEqual(t, revenue, int64(0))
	}
}

func TestSplit_RoundsToNearestMinorUnit(t *testing.T) {
	calc := NewCalculator(1000)

	// 10% of 4 = 0.4, rounds to 0; 10% of 5 = 0.5, rounds to 1
	fee, _, err := calc.Split(4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)

	fee, _, err = calc.Split(5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fee)
}

func TestSplit_ZeroAmount(t *testing.T) {
	calc := NewCalculator(1000)

	fee, revenue, err := calc.Split(0)

	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)
	assert.Equal(t, int64(0), revenue)
}

func TestSplit_NegativeAmount(t *testing.T) {
	calc := NewCalculator(1000)

	_, _, err := calc.Split(-1)

	assert.ErrorIs(t, err, ErrInvalidAmount)
}
