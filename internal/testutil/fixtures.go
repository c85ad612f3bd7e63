package testutil

import (
	"github.com/alexanderramin/riceyield/internal/domain"
)

// Scenario values: against the placeholder formula they give 12.94 t/ha.
const (
	ScenarioRainfall    = 1200.0
	ScenarioTemperature = 27.0
	ScenarioYield       = 12.94
)

// Input options
type InputOption func(*domain.FormInputs)

// WithMonthlyUniform switches to monthly mode with every month set to the
// same rainfall and temperature. The yearly fields are cleared.
func WithMonthlyUniform(rain, temp string) InputOption {
	return func(in *domain.FormInputs) {
		in.Mode = domain.ClimateMonthly
		in.TotalRainfall = ""
		in.AverageTemperature = ""
		for i := range domain.MonthNames {
			in.MonthlyRainfall[i] = rain
			in.MonthlyTemperature[i] = temp
		}
	}
}

func WithRainfall(v string) InputOption {
	return func(in *domain.FormInputs) {
		in.TotalRainfall = v
	}
}

func WithSilt(v string) InputOption {
	return func(in *domain.FormInputs) {
		in.Silt = v
	}
}

func WithIrrigation(v string) InputOption {
	return func(in *domain.FormInputs) {
		in.Irrigation = v
	}
}

func WithPestRisk(v string) InputOption {
	return func(in *domain.FormInputs) {
		in.PestRisk = v
	}
}

// NewTestInputs returns complete yearly-mode form inputs for the scenario.
func NewTestInputs(opts ...InputOption) domain.FormInputs {
	in := domain.FormInputs{
		Mode:               domain.ClimateYearly,
		TotalRainfall:      "1200",
		AverageTemperature: "27",
		Nitrogen:           "50",
		Phosphorus:         "20",
		Potassium:          "30",
		Irrigation:         "Yes",
		PestRisk:           "Low",
		Clay:               "30",
		Sand:               "40",
		Silt:               "30",
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Feature options
type FeatureOption func(*domain.FeatureSet)

func WithFeatureRainfall(mm float64) FeatureOption {
	return func(fs *domain.FeatureSet) {
		fs.TotalRainfallMm = mm
	}
}

func WithFeatureIrrigation(v domain.Irrigation) FeatureOption {
	return func(fs *domain.FeatureSet) {
		fs.Irrigation = v
	}
}

func WithFeaturePestRisk(v domain.PestRisk) FeatureOption {
	return func(fs *domain.FeatureSet) {
		fs.PestRisk = v
	}
}

// NewTestFeatures returns the scenario feature set.
func NewTestFeatures(opts ...FeatureOption) domain.FeatureSet {
	fs := domain.FeatureSet{
		TotalRainfallMm:     ScenarioRainfall,
		AverageTemperatureC: ScenarioTemperature,
		NKgHa:               50,
		PKgHa:               20,
		KKgHa:               30,
		Irrigation:          domain.IrrigationYes,
		PestRisk:            domain.PestRiskLow,
		ClayPct:             30,
		SandPct:             40,
		SiltPct:             30,
	}
	for _, opt := range opts {
		opt(&fs)
	}
	return fs
}
