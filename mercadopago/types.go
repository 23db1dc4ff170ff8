package mercadopago

// CurrencyID identifies the currency of an amount. The set mirrors the
// currencies MercadoPago operates in; unknown values are kept as-is so
// additive API changes never fail parsing.
type CurrencyID string

const (
	CurrencyARS CurrencyID = "ARS"
	CurrencyBRL CurrencyID = "BRL"
	CurrencyCLP CurrencyID = "CLP"
	CurrencyMXN CurrencyID = "MXN"
	CurrencyCOP CurrencyID = "COP"
	CurrencyPEN CurrencyID = "PEN"
	CurrencyUYU CurrencyID = "UYU"
	CurrencyVES CurrencyID = "VES"
	CurrencyUSD CurrencyID = "USD"
)

// MaxScale returns the number of decimal places the currency admits.
// CLP and COP are zero-decimal currencies; everything else MercadoPago
// handles uses two.
func (c CurrencyID) MaxScale() int32 {
	switch c {
	case CurrencyCLP, CurrencyCOP:
		return 0
	default:
		return 2
	}
}

// Paging carries pagination counters for search endpoints.
type Paging struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SearchResponse is one page of search results.
type SearchResponse[T any] struct {
	Paging  Paging `json:"paging"`
	Results []T    `json:"results"`
}
