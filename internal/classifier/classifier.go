package classifier

import (
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	godsutils "github.com/emirpasic/gods/utils"
)

// StrengthTier is one bucket of the EN 206 style strength ladder. LowerMPa
// is inclusive; the tier ends where the next one begins.
type StrengthTier struct {
	Name     string  `json:"name"`
	Class    string  `json:"class"`
	UseCase  string  `json:"use_case"`
	LowerMPa float64 `json:"lower_mpa"`
}

// The ladder partitions the whole real line: the bottom tier is unbounded
// below and the top tier unbounded above, so negative or implausibly large
// predictions still classify instead of failing.
var tiers = []StrengthTier{
	{Name: "Very Low Strength Concrete", Class: "C12/15", UseCase: "non-structural applications", LowerMPa: math.Inf(-1)},
	{Name: "Low Strength Concrete", Class: "C16/20", UseCase: "foundations and mass concrete", LowerMPa: 20},
	{Name: "Moderate Strength Concrete", Class: "C25/30", UseCase: "general purpose construction", LowerMPa: 25},
	{Name: "Standard Strength Concrete", Class: "C30/37", UseCase: "reinforced concrete structures", LowerMPa: 30},
	{Name: "High Strength Concrete", Class: "C40/50", UseCase: "pre-stressed concrete, high-rise buildings", LowerMPa: 40},
	{Name: "Very High Strength Concrete", Class: "C50/60", UseCase: "special structures, bridges", LowerMPa: 50},
	{Name: "Ultra High Strength Concrete", Class: "C60/75+", UseCase: "high-performance structures", LowerMPa: 60},
}

var thresholds = buildThresholds()

func buildThresholds() *treemap.Map {
	m := treemap.NewWith(godsutils.Float64Comparator)
	for _, tier := range tiers {
		m.Put(tier.LowerMPa, tier)
	}
	return m
}

// Classify maps a predicted MPa value to its strength tier. A value exactly
// on a boundary belongs to the higher tier. Total over all float64 inputs.
func Classify(mpa float64) StrengthTier {
	if math.IsNaN(mpa) {
		return tiers[0]
	}
	_, value := thresholds.Floor(mpa)
	if value == nil {
		return tiers[0]
	}
	return value.(StrengthTier)
}

// Tiers returns the full ladder, lowest first.
func Tiers() []StrengthTier {
	out := make([]StrengthTier, len(tiers))
	copy(out, tiers)
	return out
}
