// Package modelstub serves a stand-in for the trained yield model: a
// linear placeholder formula behind the same POST /predict route.
package modelstub

import (
	"math"

	"github.com/alexanderramin/riceyield/internal/domain"
)

// pestFactor maps pest risk to the placeholder weight. Unknown levels
// count as Medium.
var pestFactor = map[domain.PestRisk]float64{
	domain.PestRiskLow:    1,
	domain.PestRiskMedium: 0.5,
	domain.PestRiskHigh:   0,
}

// Yield evaluates the placeholder formula in tons/ha, clamped at zero.
// Categorical values match exactly; "yes" is not irrigation.
func Yield(fs domain.FeatureSet) float64 {
	irrigation := 0.0
	if fs.Irrigation == domain.IrrigationYes {
		irrigation = 1
	}
	pest, ok := pestFactor[fs.PestRisk]
	if !ok {
		pest = 0.5
	}

	y := 0.05*fs.NKgHa +
		0.03*fs.PKgHa +
		0.02*fs.KKgHa +
		0.5*irrigation -
		0.3*pest +
		0.1*fs.AverageTemperatureC +
		0.005*fs.TotalRainfallMm +
		0.01*fs.ClayPct -
		0.005*fs.SandPct +
		0.008*fs.SiltPct

	return math.Max(0, y)
}
