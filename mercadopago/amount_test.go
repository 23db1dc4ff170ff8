package mercadopago

import (
	"encoding/json"
	"testing"
)

func TestAmount_MarshalBareNumber(t *testing.T) {
	a := NewAmount(10050, -2)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "100.5" {
		t.Fatalf("got %s, want 100.5", data)
	}
}

func TestAmount_UnmarshalNumberAndString(t *testing.T) {
	cases := map[string]string{
		`100.5`:   "100.5",
		`"100.5"`: "100.5",
		`10`:      "10",
		`null`:    "0",
	}
	for input, want := range cases {
		var a Amount
		if err := json.Unmarshal([]byte(input), &a); err != nil {
			t.Fatalf("Unmarshal(%s): %v", input, err)
		}
		if a.String() != want {
			t.Fatalf("Unmarshal(%s) = %s, want %s", input, a.String(), want)
		}
	}

	var a Amount
	if err := json.Unmarshal([]byte(`"not a number"`), &a); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestAmount_Scale(t *testing.T) {
	if got := NewAmount(10050, -2).Scale(); got != 2 {
		t.Fatalf("Scale() = %d, want 2", got)
	}
	if got := NewAmount(100, 0).Scale(); got != 0 {
		t.Fatalf("Scale() = %d, want 0", got)
	}
}

func TestCurrency_MaxScale(t *testing.T) {
	if CurrencyCLP.MaxScale() != 0 {
		t.Fatal("CLP should be a zero-decimal currency")
	}
	if CurrencyBRL.MaxScale() != 2 {
		t.Fatal("BRL should allow two decimals")
	}
}
