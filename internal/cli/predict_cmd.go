package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/riceyield/internal/cli/formatter"
	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/features"
)

// inputFlags mirrors the form fields. Numbers stay strings so an omitted
// flag reaches the validator as a missing field.
type inputFlags struct {
	mode               string
	rainfall           string
	temperature        string
	monthlyRainfall    []string
	monthlyTemperature []string
	n, p, k            string
	irrigation         string
	pestRisk           string
	clay, sand, silt   string
}

func bindInputFlags(fs *pflag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.mode, "mode", "", "Climate mode: yearly or monthly (default: inferred from the flags given)")
	fs.StringVar(&f.rainfall, "rainfall", "", "Total yearly rainfall (mm)")
	fs.StringVar(&f.temperature, "temperature", "", "Average yearly temperature (°C)")
	fs.StringSliceVar(&f.monthlyRainfall, "monthly-rainfall", nil, "12 comma-separated monthly rainfall values (mm)")
	fs.StringSliceVar(&f.monthlyTemperature, "monthly-temperature", nil, "12 comma-separated monthly temperatures (°C)")
	fs.StringVar(&f.n, "n", "", "Nitrogen (kg/ha)")
	fs.StringVar(&f.p, "p", "", "Phosphorus (kg/ha)")
	fs.StringVar(&f.k, "k", "", "Potassium (kg/ha)")
	fs.StringVar(&f.irrigation, "irrigation", "", "Irrigation: Yes or No")
	fs.StringVar(&f.pestRisk, "pest-risk", "", "Pest risk: Low, Medium or High")
	fs.StringVar(&f.clay, "clay", "", "Clay share of the soil (%)")
	fs.StringVar(&f.sand, "sand", "", "Sand share of the soil (%)")
	fs.StringVar(&f.silt, "silt", "", "Silt share of the soil (%)")
}

// formInputs converts the flags to FormInputs, canonicalising the
// categorical values where they parse.
func (f inputFlags) formInputs() (domain.FormInputs, error) {
	in := domain.NewFormInputs()

	switch {
	case f.mode != "":
		mode, ok := domain.ParseClimateMode(f.mode)
		if !ok {
			return in, fmt.Errorf("%w: %q", features.ErrUnknownMode, f.mode)
		}
		in.Mode = mode
	case len(f.monthlyRainfall) > 0 || len(f.monthlyTemperature) > 0:
		in.Mode = domain.ClimateMonthly
	}

	if len(f.monthlyRainfall) > domain.MonthsPerYear {
		return in, fmt.Errorf("--monthly-rainfall takes %d values, got %d", domain.MonthsPerYear, len(f.monthlyRainfall))
	}
	if len(f.monthlyTemperature) > domain.MonthsPerYear {
		return in, fmt.Errorf("--monthly-temperature takes %d values, got %d", domain.MonthsPerYear, len(f.monthlyTemperature))
	}
	copy(in.MonthlyRainfall[:], f.monthlyRainfall)
	copy(in.MonthlyTemperature[:], f.monthlyTemperature)

	in.TotalRainfall = f.rainfall
	in.AverageTemperature = f.temperature
	in.Nitrogen, in.Phosphorus, in.Potassium = f.n, f.p, f.k
	in.Clay, in.Sand, in.Silt = f.clay, f.sand, f.silt

	in.Irrigation = f.irrigation
	if v, ok := domain.ParseIrrigation(f.irrigation); ok {
		in.Irrigation = string(v)
	}
	in.PestRisk = f.pestRisk
	if v, ok := domain.ParsePestRisk(f.pestRisk); ok {
		in.PestRisk = string(v)
	}

	return in, nil
}

type predictOutput struct {
	Features       domain.FeatureSet `json:"features"`
	PredictedYield float64           `json:"predicted_yield"`
	Remark         domain.Remark     `json:"remark"`
	Advice         string            `json:"advice,omitempty"`
}

func newPredictCmd(app *App) *cobra.Command {
	var flags inputFlags
	var withAdvice, jsonOut bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict rice yield from flags",
		Long: `Validate the given field conditions, request a yield prediction and
print it with its remark. Climate data is either yearly (--rainfall,
--temperature) or monthly (--monthly-rainfall, --monthly-temperature).`,
		Example: `  riceyield predict --rainfall 1200 --temperature 27 --n 50 --p 20 --k 30 \
    --irrigation Yes --pest-risk Low --clay 30 --sand 40 --silt 30 --advice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.formInputs()
			if err != nil {
				return err
			}

			fs, err := features.Validate(in, in.Mode)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			showSpinner := app.interactive() && !jsonOut

			var status *formatter.Spinner
			if showSpinner {
				status = formatter.StartSpinner(cmd.ErrOrStderr(), "Predicting yield...")
			}
			yield, err := app.predictor().Predict(ctx, fs)
			if err != nil {
				status.Stop()
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatPredictionError())
				return fmt.Errorf("prediction failed: %w", err)
			}

			res := domain.NewPredictionResult(yield)

			var adviceText string
			if withAdvice {
				status.SetMessage("Getting advice...")
				adviceText = app.advisor().Advise(ctx, fs, yield)
			}
			status.Stop()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(predictOutput{
					Features:       fs,
					PredictedYield: yield,
					Remark:         res.Remark,
					Advice:         adviceText,
				})
			}

			fmt.Fprintln(out, formatter.FormatPrediction(fs, res))
			if withAdvice {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.FormatAdvice(adviceText, 80))
			}
			return nil
		},
	}

	bindInputFlags(cmd.Flags(), &flags)
	cmd.Flags().BoolVar(&withAdvice, "advice", false, "Also request agronomic advice")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")

	return cmd
}
