package ctdf

import "strings"

type RiderType string

const (
	RiderTypeAdult    RiderType = "adult"
	RiderTypeSenior   RiderType = "senior"
	RiderTypeStudent  RiderType = "student"
	RiderTypeWorkfare RiderType = "workfare"
)

type PayMode string

const (
	PayModeCard PayMode = "card"
	PayModeCash PayMode = "cash"
)

// FareCell describes which FareBand price is charged for a rider & payment combination,
// and which price is charged instead when that one is missing.
type FareCell struct {
	Price  func(*FareBand) *int
	Source string

	Fallback       func(*FareBand) *int
	FallbackSource string
}

type fareCellKey struct {
	RiderType RiderType
	PayMode   PayMode
}

func adultCard(f *FareBand) *int    { return f.AdultCardCents }
func adultCash(f *FareBand) *int    { return f.AdultCashCents }
func seniorCard(f *FareBand) *int   { return f.SeniorCardCents }
func seniorCash(f *FareBand) *int   { return f.SeniorCashCents }
func studentCard(f *FareBand) *int  { return f.StudentCardCents }
func studentCash(f *FareBand) *int  { return f.StudentCashCents }
func workfareCard(f *FareBand) *int { return f.WorkfareCardCents }
func workfareCash(f *FareBand) *int { return f.WorkfareCashCents }

var fareCells = map[fareCellKey]FareCell{
	{RiderTypeAdult, PayModeCard}:    {Price: adultCard, Source: "adult_card"},
	{RiderTypeAdult, PayModeCash}:    {Price: adultCash, Source: "adult_cash", Fallback: adultCard, FallbackSource: "adult_card"},
	{RiderTypeSenior, PayModeCard}:   {Price: seniorCard, Source: "senior_card"},
	{RiderTypeSenior, PayModeCash}:   {Price: seniorCash, Source: "senior_cash", Fallback: seniorCard, FallbackSource: "senior_card"},
	{RiderTypeStudent, PayModeCard}:  {Price: studentCard, Source: "student_card"},
	{RiderTypeStudent, PayModeCash}:  {Price: studentCash, Source: "student_cash", Fallback: studentCard, FallbackSource: "student_card"},
	{RiderTypeWorkfare, PayModeCard}: {Price: workfareCard, Source: "workfare_card"},
	{RiderTypeWorkfare, PayModeCash}: {Price: workfareCash, Source: "workfare_cash", Fallback: workfareCard, FallbackSource: "workfare_card"},
}

// LookupFareCell is case-insensitive. Anything not in the table is charged the adult card price.
func LookupFareCell(riderType string, payMode string) FareCell {
	key := fareCellKey{
		RiderType: RiderType(strings.ToLower(riderType)),
		PayMode:   PayMode(strings.ToLower(payMode)),
	}

	if cell, exists := fareCells[key]; exists {
		return cell
	}

	return fareCells[fareCellKey{RiderTypeAdult, PayModeCard}]
}

// Charge returns the price in cents and the tag of the price that was used.
// A nil band (no matching fare band) has no price.
func (c FareCell) Charge(band *FareBand) (*int, string) {
	var price *int
	if band != nil {
		price = c.Price(band)
	}

	if price != nil || c.Fallback == nil {
		return price, c.Source
	}

	if band != nil {
		price = c.Fallback(band)
	}

	return price, c.FallbackSource
}
