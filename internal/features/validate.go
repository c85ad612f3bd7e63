package features

import (
	"fmt"

	"github.com/alexanderramin/riceyield/internal/domain"
)

type numericField struct {
	key   string
	label string
	value string
}

// Validate checks every field the mode requires and returns the aggregated
// FeatureSet. The first failing field is reported as a *ValidationError
// wrapping ErrMissingField. Only the active mode's climate data is checked.
func Validate(in domain.FormInputs, mode domain.ClimateMode) (domain.FeatureSet, error) {
	var fields []numericField

	switch mode {
	case domain.ClimateYearly:
		fields = append(fields,
			numericField{"total_rainfall_mm", "Total Rainfall (mm)", in.TotalRainfall},
			numericField{"average_temperature_c", "Average Temperature (°C)", in.AverageTemperature},
		)
	case domain.ClimateMonthly:
		for i, month := range domain.MonthNames {
			fields = append(fields, numericField{
				fmt.Sprintf("monthly_rainfall[%d]", i),
				fmt.Sprintf("Rainfall (%s)", month),
				in.MonthlyRainfall[i],
			})
		}
		for i, month := range domain.MonthNames {
			fields = append(fields, numericField{
				fmt.Sprintf("monthly_temperature[%d]", i),
				fmt.Sprintf("Temperature (%s)", month),
				in.MonthlyTemperature[i],
			})
		}
	default:
		return domain.FeatureSet{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	fields = append(fields,
		numericField{"n_kg_ha", "Nitrogen (kg/ha)", in.Nitrogen},
		numericField{"p_kg_ha", "Phosphorus (kg/ha)", in.Phosphorus},
		numericField{"k_kg_ha", "Potassium (kg/ha)", in.Potassium},
	)

	for _, f := range fields {
		if _, ok := ParseNumber(f.value); !ok {
			return domain.FeatureSet{}, missing(f.key, f.label)
		}
	}

	if _, ok := domain.ParseIrrigation(in.Irrigation); !ok {
		return domain.FeatureSet{}, missing("irrigation", "Irrigation")
	}
	if _, ok := domain.ParsePestRisk(in.PestRisk); !ok {
		return domain.FeatureSet{}, missing("pest_risk", "Pest Risk")
	}

	soil := []numericField{
		{"clay", "Clay (%)", in.Clay},
		{"sand", "Sand (%)", in.Sand},
		{"silt", "Silt (%)", in.Silt},
	}
	for _, f := range soil {
		if _, ok := ParseNumber(f.value); !ok {
			return domain.FeatureSet{}, missing(f.key, f.label)
		}
	}

	return Aggregate(in, mode), nil
}
