package features

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/riceyield/internal/domain"
)

// ParseNumber parses a form value as a finite float. Empty, non-numeric,
// NaN and infinite values report ok=false.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// numberOrZero is only a guard for Aggregate. Validate rejects the inputs
// that would reach the zero branch.
func numberOrZero(s string) float64 {
	v, ok := ParseNumber(s)
	if !ok {
		return 0
	}
	return v
}

// Climate collapses the active climate mode to total rainfall (mm) and
// average temperature (°C). Monthly rainfall is summed, monthly
// temperature averaged over twelve months.
func Climate(in domain.FormInputs, mode domain.ClimateMode) (rainfall, temperature float64) {
	if mode != domain.ClimateMonthly {
		return numberOrZero(in.TotalRainfall), numberOrZero(in.AverageTemperature)
	}

	var rainSum, tempSum float64
	for i := 0; i < domain.MonthsPerYear; i++ {
		rainSum += numberOrZero(in.MonthlyRainfall[i])
		tempSum += numberOrZero(in.MonthlyTemperature[i])
	}
	return rainSum, tempSum / domain.MonthsPerYear
}

// Aggregate builds the FeatureSet for inputs in the given mode. It never
// fails and never yields a non-finite number; call Validate first.
func Aggregate(in domain.FormInputs, mode domain.ClimateMode) domain.FeatureSet {
	rain, temp := Climate(in, mode)

	fs := domain.FeatureSet{
		TotalRainfallMm:     rain,
		AverageTemperatureC: temp,
		NKgHa:               numberOrZero(in.Nitrogen),
		PKgHa:               numberOrZero(in.Phosphorus),
		KKgHa:               numberOrZero(in.Potassium),
		ClayPct:             numberOrZero(in.Clay),
		SandPct:             numberOrZero(in.Sand),
		SiltPct:             numberOrZero(in.Silt),
	}
	if v, ok := domain.ParseIrrigation(in.Irrigation); ok {
		fs.Irrigation = v
	}
	if v, ok := domain.ParsePestRisk(in.PestRisk); ok {
		fs.PestRisk = v
	}
	return fs
}
