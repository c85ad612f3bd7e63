package domain

import "strings"

type ClimateMode string

const (
	ClimateYearly  ClimateMode = "yearly"
	ClimateMonthly ClimateMode = "monthly"
)

type Irrigation string

const (
	IrrigationYes Irrigation = "Yes"
	IrrigationNo  Irrigation = "No"
)

type PestRisk string

const (
	PestRiskLow    PestRisk = "Low"
	PestRiskMedium PestRisk = "Medium"
	PestRiskHigh   PestRisk = "High"
)

type Remark string

const (
	RemarkLow      Remark = "Low Yield"
	RemarkModerate Remark = "Moderate Yield"
	RemarkHigh     Remark = "High Yield"
)

// ValidIrrigation is the canonical set of accepted irrigation values.
var ValidIrrigation = map[Irrigation]bool{
	IrrigationYes: true, IrrigationNo: true,
}

// ValidPestRisk is the canonical set of accepted pest risk values.
var ValidPestRisk = map[PestRisk]bool{
	PestRiskLow: true, PestRiskMedium: true, PestRiskHigh: true,
}

// ParseIrrigation matches s case-insensitively against the irrigation values.
func ParseIrrigation(s string) (Irrigation, bool) {
	for v := range ValidIrrigation {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}

// ParsePestRisk matches s case-insensitively against the pest risk levels.
func ParsePestRisk(s string) (PestRisk, bool) {
	for v := range ValidPestRisk {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}

// ParseClimateMode accepts "yearly" or "monthly" in any case.
func ParseClimateMode(s string) (ClimateMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ClimateYearly):
		return ClimateYearly, true
	case string(ClimateMonthly):
		return ClimateMonthly, true
	}
	return "", false
}
