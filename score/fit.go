package score

import (
	"math"

	"github.com/rrabbani2/GolfMaps/schema"
)

// Reference ranges used to normalize raw course attributes.
const (
	fitSlopeMin   = 55
	fitSlopeMax   = 155
	fitYardageMin = 5000
	fitYardageMax = 7500
)

// Defaults applied when a course attribute is absent.
const (
	defaultYardage   = 6000
	defaultSlope     = 113
	defaultCondition = 5
)

// FitWeights control how slope and yardage are combined by
// CalculateCourseFit. Weights that do not sum to 1 are re-normalized.
type FitWeights struct {
	Slope   float64
	Yardage float64
}

// CalculateCourseFit scores how demanding a course is from its raw
// attributes alone: slope and yardage are normalized against typical
// course ranges and combined into a 0-100 score. nil weights means an
// even 0.5/0.5 split.
func CalculateCourseFit(slope, yardage float64, weights *FitWeights) int {
	wSlope, wYardage := 0.5, 0.5
	if weights != nil {
		wSlope = weights.Slope
		wYardage = weights.Yardage
	}

	totalWeight := wSlope + wYardage
	if totalWeight == 0 {
		totalWeight = 1
	}
	ws := wSlope / totalWeight
	wy := wYardage / totalWeight

	normSlope := clamp01((slope - fitSlopeMin) / (fitSlopeMax - fitSlopeMin))
	normYardage := clamp01((yardage - fitYardageMin) / (fitYardageMax - fitYardageMin))

	return int(math.Round((ws*normSlope + wy*normYardage) * 100))
}

// fitCurve is one skill level's scoring shape: how yardage and slope map
// to 0-100 sub-scores, and how the three sub-scores are weighted.
type fitCurve struct {
	yardage       func(yardage float64) float64
	slope         func(slope float64) float64
	yardageWeight float64
	slopeWeight   float64
	condWeight    float64
}

// fitCurves is the closed set of per-skill scoring shapes. Beginners
// reward shorter and easier courses inversely; experts reward longer and
// harder ones.
var fitCurves = map[schema.SkillLevel]fitCurve{
	schema.SkillLevelBeginner: {
		yardage:       func(y float64) float64 { return math.Max(0, 100-(y-5000)/20) },
		slope:         func(s float64) float64 { return math.Max(0, 100-(s-113)*2) },
		yardageWeight: 0.4,
		slopeWeight:   0.4,
		condWeight:    0.2,
	},
	schema.SkillLevelIntermediate: {
		yardage: func(y float64) float64 {
			if y >= 5500 && y <= 6500 {
				return 100
			}
			return 100 - math.Abs(y-6000)/10
		},
		slope: func(s float64) float64 {
			if s >= 113 && s <= 130 {
				return 100
			}
			return 100 - math.Abs(s-121.5)*1.5
		},
		yardageWeight: 0.35,
		slopeWeight:   0.35,
		condWeight:    0.3,
	},
	schema.SkillLevelAdvanced: {
		yardage:       func(y float64) float64 { return math.Min(100, 50+(y-5000)/30) },
		slope:         func(s float64) float64 { return math.Min(100, 50+(s-113)*0.5) },
		yardageWeight: 0.3,
		slopeWeight:   0.3,
		condWeight:    0.4,
	},
	schema.SkillLevelExpert: {
		yardage:       func(y float64) float64 { return math.Min(100, 60+(y-6000)/25) },
		slope:         func(s float64) float64 { return math.Min(100, 60+(s-120)*0.4) },
		yardageWeight: 0.3,
		slopeWeight:   0.3,
		condWeight:    0.4,
	},
}

// ComputeCourseFitRating scores how well a course matches a player.
// Without a profile (or with an unrecognized skill level) the rating is a
// fixed neutral {50, Moderate}.
func ComputeCourseFitRating(course schema.Course, profile *schema.Profile) schema.FitRating {
	if profile == nil || profile.SkillLevel == "" {
		return schema.FitRating{Score: 50, Label: "Moderate"}
	}

	curve, ok := fitCurves[profile.SkillLevel]
	if !ok {
		return schema.FitRating{Score: 50, Label: "Moderate"}
	}

	// zero counts as absent, same as a missing attribute
	yardage := float64(defaultYardage)
	if course.Yardage != nil && *course.Yardage != 0 {
		yardage = *course.Yardage
	}
	slope := float64(defaultSlope)
	if course.SlopeRating != nil && *course.SlopeRating != 0 {
		slope = *course.SlopeRating
	}
	condition := float64(defaultCondition)
	if course.ConditionScore != nil && *course.ConditionScore != 0 {
		condition = *course.ConditionScore
	}

	raw := curve.yardage(yardage)*curve.yardageWeight +
		curve.slope(slope)*curve.slopeWeight +
		condition*10*curve.condWeight

	clamped := math.Max(0, math.Min(100, raw))

	return schema.FitRating{
		Score: int(math.Round(clamped)),
		Label: fitLabel(clamped),
	}
}

func fitLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Moderate"
	default:
		return "Challenging"
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
