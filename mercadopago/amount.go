package mercadopago

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value. MercadoPago sends and receives
// amounts as bare JSON numbers, so Amount marshals without quotes and
// unmarshals from either a number or a quoted string.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from integer units and an exponent,
// e.g. NewAmount(10050, -2) is 100.50.
func NewAmount(value int64, exp int32) Amount {
	return Amount{decimal.New(value, exp)}
}

// AmountFromString parses a decimal string such as "100.50".
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

// AmountFromFloat converts a float; convenient for CLI flags, lossy for
// values beyond float precision.
func AmountFromFloat(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// Scale returns the number of decimal places carried by the value.
func (a Amount) Scale() int32 {
	if a.Exponent() >= 0 {
		return 0
	}
	return -a.Exponent()
}

// Negative reports whether the amount is below zero.
func (a Amount) Negative() bool {
	return a.Decimal.IsNegative()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", data, err)
	}
	a.Decimal = d
	return nil
}
