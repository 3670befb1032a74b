package ctdf

import (
	"fmt"
	"strings"
)

// FareBand holds the price points for one fare category over an inclusive distance interval.
// A nil cash price means the card price of the same rider applies.
type FareBand struct {
	Category string
	MinKM    float64
	MaxKM    float64

	AdultCardCents    *int
	AdultCashCents    *int
	SeniorCardCents   *int
	SeniorCashCents   *int
	StudentCardCents  *int
	StudentCashCents  *int
	WorkfareCardCents *int
	WorkfareCashCents *int

	DataSource *DataSource `json:"-"`
}

func (f *FareBand) Covers(travelKM float64) bool {
	return travelKM >= f.MinKM && travelKM <= f.MaxKM
}

// CategoryKey is the case-insensitive form categories are matched on
func CategoryKey(category string) string {
	return strings.ToUpper(category)
}

func FormatFare(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}
