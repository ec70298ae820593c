package domain

// Money is an immutable amount with its currency code.
// All order amounts (line prices, fees, totals) are expressed as Money.
type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		return Money{}, ErrMissingCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Add returns a new Money. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Multiply scales the amount by a non-negative factor.
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{Amount: m.Amount * factor, Currency: m.Currency}, nil
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}
