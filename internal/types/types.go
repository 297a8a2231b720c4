package types

// Source is a named upstream feed polled once per cycle.
type Source struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// Transaction is a single record returned by a source. Fields missing from
// the payload decode to zero.
type Transaction struct {
	AmountUSD float64 `json:"amount_usd"`
	WinRate   float64 `json:"win_rate"` // percentage, 0-100
	Hash      string  `json:"hash"`
	Source    string  `json:"-"`
}
