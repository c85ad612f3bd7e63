package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/features"
)

// PredictionErrorText is the banner shown for any failed prediction call.
const PredictionErrorText = "Failed to fetch prediction. Please ensure the backend server is running."

const labelWidth = 22

// FormatYield renders a yield with four decimals, e.g. "12.9400".
func FormatYield(y float64) string {
	return fmt.Sprintf("%.4f", y)
}

// FormatPrediction renders the result box: yield and remark first, then
// the feature set the prediction was made from.
func FormatPrediction(fs domain.FeatureSet, res domain.PredictionResult) string {
	var b strings.Builder

	b.WriteString(KeyValue("Predicted Yield", Bold(FormatYield(res.YieldValue))+Dim(" tons/ha"), labelWidth))
	b.WriteString("\n")
	b.WriteString(KeyValue("Remark", RemarkBadge(res.Remark), labelWidth))
	b.WriteString("\n\n")
	b.WriteString(FormatFeatures(fs))

	return RenderBox("Prediction", b.String())
}

// FormatFeatures lists the inputs of a prediction.
func FormatFeatures(fs domain.FeatureSet) string {
	rows := []string{
		KeyValue("Total Rainfall", FormatNumber(fs.TotalRainfallMm)+" mm", labelWidth),
		KeyValue("Average Temperature", FormatNumber(fs.AverageTemperatureC)+" °C", labelWidth),
		KeyValue("N / P / K", fmt.Sprintf("%s / %s / %s kg/ha",
			FormatNumber(fs.NKgHa), FormatNumber(fs.PKgHa), FormatNumber(fs.KKgHa)), labelWidth),
		KeyValue("Irrigation", string(fs.Irrigation), labelWidth),
		KeyValue("Pest Risk", string(fs.PestRisk), labelWidth),
		"",
		SoilBars(fs.ClayPct, fs.SandPct, fs.SiltPct, 20),
	}
	return strings.Join(rows, "\n")
}

// FormatPredictionError renders the generic failure banner. The cause is
// not shown.
func FormatPredictionError() string {
	return StyleRed.Render("✖ " + PredictionErrorText)
}

// FormatValidationError renders an inline message naming the first missing
// field.
func FormatValidationError(err error) string {
	var verr *features.ValidationError
	if errors.As(err, &verr) {
		return StyleYellow.Render("▲ Please fill in " + verr.Label + ".")
	}
	return StyleYellow.Render("▲ " + err.Error())
}
