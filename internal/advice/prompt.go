package advice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/riceyield/internal/domain"
)

const systemBrief = "You are an agronomist advising a smallholder rice farmer. " +
	"Using the field conditions and the model's yield estimate below, give short, " +
	"practical recommendations on fertilizer, irrigation, pest management and soil " +
	"to improve or sustain the yield. Use a brief markdown bullet list."

// BuildPrompt renders a single prompt embedding every feature and the
// predicted yield. Climate values are the aggregated yearly figures, so
// monthly and yearly submissions with equal totals produce equal prompts.
func BuildPrompt(fs domain.FeatureSet, yield float64) string {
	var b strings.Builder

	b.WriteString(systemBrief)
	b.WriteString("\n\nField conditions:\n")
	fmt.Fprintf(&b, "- Nitrogen (N): %s kg/ha\n", num(fs.NKgHa))
	fmt.Fprintf(&b, "- Phosphorus (P): %s kg/ha\n", num(fs.PKgHa))
	fmt.Fprintf(&b, "- Potassium (K): %s kg/ha\n", num(fs.KKgHa))
	fmt.Fprintf(&b, "- Irrigation: %s\n", fs.Irrigation)
	fmt.Fprintf(&b, "- Pest risk: %s\n", fs.PestRisk)
	fmt.Fprintf(&b, "- Soil composition: clay %s%%, sand %s%%, silt %s%%\n",
		num(fs.ClayPct), num(fs.SandPct), num(fs.SiltPct))
	fmt.Fprintf(&b, "- Total annual rainfall: %s mm\n", num(fs.TotalRainfallMm))
	fmt.Fprintf(&b, "- Average annual temperature: %s °C\n", num(fs.AverageTemperatureC))
	fmt.Fprintf(&b, "\nPredicted rice yield: %.4f tons/ha (%s)\n", yield, domain.Classify(yield))

	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
