package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(50000, "COP")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, m.Amount)
	assert.Equal(t, "COP", m.Currency)

	_, err = NewMoney(-1, "COP")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewMoney(100, "")
	assert.ErrorIs(t, err, ErrMissingCurrency)
}

func TestMoneyAdd(t *testing.T) {
	a := Money{Amount: 100000, Currency: "COP"}
	b := Money{Amount: 5000, Currency: "COP"}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 105000.0, sum.Amount)

	// operands are not mutated
	assert.Equal(t, 100000.0, a.Amount)
	assert.Equal(t, 5000.0, b.Amount)

	_, err = a.Add(Money{Amount: 10, Currency: "USD"})
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneyMultiply(t *testing.T) {
	unit := Money{Amount: 50000, Currency: "COP"}

	line, err := unit.Multiply(2)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, line.Amount)
	assert.Equal(t, "COP", line.Currency)

	_, err = unit.Multiply(-1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
