package domain

// MonthsPerYear is the number of entries in each monthly climate series.
const MonthsPerYear = 12

// MonthNames labels the monthly series, January first.
var MonthNames = [MonthsPerYear]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormInputs holds every form field exactly as typed. Both climate shapes
// are kept side by side; Mode selects which one a submission reads.
type FormInputs struct {
	Mode ClimateMode

	TotalRainfall      string
	AverageTemperature string

	MonthlyRainfall    [MonthsPerYear]string
	MonthlyTemperature [MonthsPerYear]string

	Nitrogen   string
	Phosphorus string
	Potassium  string
	Irrigation string
	PestRisk   string

	Clay string
	Sand string
	Silt string
}

// NewFormInputs returns empty inputs in yearly mode.
func NewFormInputs() FormInputs {
	return FormInputs{Mode: ClimateYearly}
}

// Snapshot returns an independent copy. The monthly series are arrays, so a
// value copy shares nothing with the receiver.
func (f FormInputs) Snapshot() FormInputs {
	return f
}
