package domain

import "github.com/shopspring/decimal"

// Per-sheet rates in INR.
var (
	RateBW    = decimal.RequireFromString("1.1")
	RateColor = decimal.RequireFromString("6.0")
)

// Quote is the priced result for a single file.
type Quote struct {
	SheetsPerCopy int
	TotalSheets   int
	Price         decimal.Decimal
}

// PriceFile computes the sheet count and cost for one file. Duplex printing
// fits two pages per sheet. Prices are rounded to 2 decimal places,
// half away from zero.
func PriceFile(pages, copies int, duplex, color bool) (Quote, error) {
	if pages < 1 || copies < 1 {
		return Quote{}, ErrInvalidInput
	}

	sheetsPerCopy := pages
	if duplex {
		sheetsPerCopy = (pages + 1) / 2
	}
	totalSheets := sheetsPerCopy * copies

	rate := RateBW
	if color {
		rate = RateColor
	}
	price := rate.Mul(decimal.NewFromInt(int64(totalSheets))).Round(2)

	return Quote{
		SheetsPerCopy: sheetsPerCopy,
		TotalSheets:   totalSheets,
		Price:         price,
	}, nil
}
