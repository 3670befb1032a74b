package busfarescsv

type Stop struct {
	PrimaryIdentifier string `csv:"bus_stop_code"`
	Description       string `csv:"description"`
	RoadName          string `csv:"road_name"`
}

type Service struct {
	ServiceNo string `csv:"service_no"`
	Direction int    `csv:"direction"`
	Operator  string `csv:"operator"`
	Category  string `csv:"category"`
}

type RouteStop struct {
	ServiceNo    string  `csv:"service_no"`
	Direction    int     `csv:"direction"`
	StopRef      string  `csv:"bus_stop_code"`
	StopSequence int     `csv:"stop_sequence"`
	DistanceKM   float64 `csv:"distance_km"`
}

// FareBand keeps the price columns as text as any of them may be blank
type FareBand struct {
	Category string  `csv:"category"`
	MinKM    float64 `csv:"min_km"`
	MaxKM    float64 `csv:"max_km"`

	AdultCardCents    string `csv:"adult_card_cents"`
	AdultCashCents    string `csv:"adult_cash_cents"`
	SeniorCardCents   string `csv:"senior_card_cents"`
	SeniorCashCents   string `csv:"senior_cash_cents"`
	StudentCardCents  string `csv:"student_card_cents"`
	StudentCashCents  string `csv:"student_cash_cents"`
	WorkfareCardCents string `csv:"workfare_card_cents"`
	WorkfareCashCents string `csv:"workfare_cash_cents"`
}
