package cli

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/features"
)

// numberInput returns a huh.Input for a numeric field. Empty input is
// accepted here; required fields are enforced on submit.
func numberInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalNumber)
}

// validateOptionalNumber accepts empty or a finite number.
func validateOptionalNumber(s string) error {
	if s == "" {
		return nil
	}
	if _, ok := features.ParseNumber(s); !ok {
		return errors.New("enter a number")
	}
	return nil
}

// newInputForm builds the full input form bound to in. The climate mode
// select comes first and hides the other mode's groups; values typed in
// either mode stay in in.
func newInputForm(in *domain.FormInputs) *huh.Form {
	if in.Mode == "" {
		in.Mode = domain.ClimateYearly
	}

	hideYearly := func() bool { return in.Mode != domain.ClimateYearly }
	hideMonthly := func() bool { return in.Mode != domain.ClimateMonthly }

	rain := make([]huh.Field, 0, domain.MonthsPerYear)
	temp := make([]huh.Field, 0, domain.MonthsPerYear)
	for i, month := range domain.MonthNames {
		rain = append(rain, numberInput(month+" Rainfall (mm)", "100", &in.MonthlyRainfall[i]))
		temp = append(temp, numberInput(month+" Temperature (°C)", "27", &in.MonthlyTemperature[i]))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.ClimateMode]().
				Title("Climate Data").
				Description("Enter yearly totals or month-by-month values").
				Options(
					huh.NewOption("Yearly", domain.ClimateYearly),
					huh.NewOption("Monthly", domain.ClimateMonthly),
				).
				Value(&in.Mode),
		),
		huh.NewGroup(
			numberInput("Total Rainfall (mm)", "1200", &in.TotalRainfall),
			numberInput("Average Temperature (°C)", "27", &in.AverageTemperature),
		).WithHideFunc(hideYearly),
		huh.NewGroup(rain...).
			Title("Monthly Rainfall").
			WithHideFunc(hideMonthly),
		huh.NewGroup(temp...).
			Title("Monthly Temperature").
			WithHideFunc(hideMonthly),
		huh.NewGroup(
			numberInput("Nitrogen (kg/ha)", "50", &in.Nitrogen),
			numberInput("Phosphorus (kg/ha)", "20", &in.Phosphorus),
			numberInput("Potassium (kg/ha)", "30", &in.Potassium),
			huh.NewSelect[string]().
				Title("Irrigation").
				Options(huh.NewOptions(string(domain.IrrigationYes), string(domain.IrrigationNo))...).
				Value(&in.Irrigation),
			huh.NewSelect[string]().
				Title("Pest Risk").
				Options(huh.NewOptions(
					string(domain.PestRiskLow),
					string(domain.PestRiskMedium),
					string(domain.PestRiskHigh),
				)...).
				Value(&in.PestRisk),
		).Title("Nutrients and Management"),
		huh.NewGroup(
			numberInput("Clay (%)", "30", &in.Clay),
			numberInput("Sand (%)", "40", &in.Sand),
			numberInput("Silt (%)", "30", &in.Silt),
		).Title("Soil Composition"),
	).WithTheme(riceHuhTheme()).WithShowHelp(true)
}
