package predict

import "github.com/alexanderramin/riceyield/internal/domain"

// MinimalRequest is the two-feature body accepted by the trained climate model.
type MinimalRequest struct {
	TotalRainfallMm     float64 `json:"Total_Rainfall_mm"`
	AverageTemperatureC float64 `json:"Average_Temperature_C"`
}

// FeatureRequest is the full body, keyed exactly as the Flask backend reads
// it. The backend looks keys up case-sensitively, so the climate keys are
// lowercase here even though MinimalRequest capitalizes them.
type FeatureRequest struct {
	TotalRainfallMm     float64 `json:"total_rainfall_mm"`
	AverageTemperatureC float64 `json:"average_temperature_c"`
	NKgHa               float64 `json:"n_kg_ha"`
	PKgHa               float64 `json:"p_kg_ha"`
	KKgHa               float64 `json:"k_kg_ha"`
	Irrigation          string  `json:"irrigation"`
	PestRisk            string  `json:"pest_risk"`
	Clay                float64 `json:"clay"`
	Sand                float64 `json:"sand"`
	Silt                float64 `json:"silt"`
}

// Response is the body returned by POST /predict. A nil PredictedYield
// means the key was absent.
type Response struct {
	PredictedYield *float64 `json:"predicted_yield"`
}

// NewFeatureRequest converts a FeatureSet to the full wire body.
func NewFeatureRequest(fs domain.FeatureSet) FeatureRequest {
	return FeatureRequest{
		TotalRainfallMm:     fs.TotalRainfallMm,
		AverageTemperatureC: fs.AverageTemperatureC,
		NKgHa:               fs.NKgHa,
		PKgHa:               fs.PKgHa,
		KKgHa:               fs.KKgHa,
		Irrigation:          string(fs.Irrigation),
		PestRisk:            string(fs.PestRisk),
		Clay:                fs.ClayPct,
		Sand:                fs.SandPct,
		Silt:                fs.SiltPct,
	}
}

// FeatureSet converts the wire body back to a FeatureSet. Categorical
// values are passed through verbatim so unknown levels stay visible.
func (r FeatureRequest) FeatureSet() domain.FeatureSet {
	return domain.FeatureSet{
		TotalRainfallMm:     r.TotalRainfallMm,
		AverageTemperatureC: r.AverageTemperatureC,
		NKgHa:               r.NKgHa,
		PKgHa:               r.PKgHa,
		KKgHa:               r.KKgHa,
		Irrigation:          domain.Irrigation(r.Irrigation),
		PestRisk:            domain.PestRisk(r.PestRisk),
		ClayPct:             r.Clay,
		SandPct:             r.Sand,
		SiltPct:             r.Silt,
	}
}

func requestBody(fs domain.FeatureSet, payload Payload) any {
	if payload == PayloadMinimal {
		return MinimalRequest{
			TotalRainfallMm:     fs.TotalRainfallMm,
			AverageTemperatureC: fs.AverageTemperatureC,
		}
	}
	return NewFeatureRequest(fs)
}
