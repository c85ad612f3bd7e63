package domain

// FeatureSet is the fully numeric input to a prediction call.
type FeatureSet struct {
	TotalRainfallMm     float64    `json:"totalRainfallMm"`
	AverageTemperatureC float64    `json:"averageTemperatureC"`
	NKgHa               float64    `json:"nKgHa"`
	PKgHa               float64    `json:"pKgHa"`
	KKgHa               float64    `json:"kKgHa"`
	Irrigation          Irrigation `json:"irrigation"`
	PestRisk            PestRisk   `json:"pestRisk"`
	ClayPct             float64    `json:"clayPct"`
	SandPct             float64    `json:"sandPct"`
	SiltPct             float64    `json:"siltPct"`
}

type PredictionResult struct {
	YieldValue float64 `json:"yieldValue"`
	Remark     Remark  `json:"remark"`
}

// NewPredictionResult pairs a yield with its remark.
func NewPredictionResult(yield float64) PredictionResult {
	return PredictionResult{YieldValue: yield, Remark: Classify(yield)}
}

// Classify maps a yield in tons/ha to a remark. Both 3 and 6 are Moderate.
func Classify(yield float64) Remark {
	switch {
	case yield < 3:
		return RemarkLow
	case yield <= 6:
		return RemarkModerate
	default:
		return RemarkHigh
	}
}
