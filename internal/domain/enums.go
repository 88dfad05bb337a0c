package domain

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// ValidCurrencies is the canonical set of accepted currency codes.
var ValidCurrencies = map[Currency]bool{
	CurrencyUSD: true, CurrencyGBP: true, CurrencyEUR: true,
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyGBP:
		return "£"
	case CurrencyEUR:
		return "€"
	default:
		return "$"
	}
}

type Region string

const (
	RegionUS   Region = "US"
	RegionEMEA Region = "EMEA"
	RegionROW  Region = "ROW"
)

// ValidRegions is the canonical set of accepted regions.
var ValidRegions = map[Region]bool{
	RegionUS: true, RegionEMEA: true, RegionROW: true,
}

// StatusSeed describes a status created with every new calendar.
type StatusSeed struct {
	Name  string
	Color string
}

// DefaultStatuses are seeded, in order, into every new calendar.
var DefaultStatuses = []StatusSeed{
	{Name: "Considering", Color: "#3B82F6"},
	{Name: "Negotiating", Color: "#F59E0B"},
	{Name: "Committed", Color: "#10B981"},
}

// FallbackColor is used for bars whose activity and status carry no color.
const FallbackColor = "#3B82F6"
