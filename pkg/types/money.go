package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount of US dollars held as integer cents. It marshals as a
// two-decimal JSON string ("12.50") so clients never see float artifacts.
type Money struct {
	cents int64
}

func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.cents).Shift(-2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("money must be a string: %w", err)
	}
	dec, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parsing money %q: %w", raw, err)
	}
	cents := dec.Shift(2)
	if !cents.IsInteger() {
		return fmt.Errorf("money %q has sub-cent precision", raw)
	}
	m.cents = cents.IntPart()
	return nil
}

// NullableMoney returns a pointer for optional amounts, keeping JSON null
// distinct from zero dollars.
func NullableMoney(cents *int64) *Money {
	if cents == nil {
		return nil
	}
	m := MoneyFromCents(*cents)
	return &m
}
