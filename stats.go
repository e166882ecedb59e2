package neighborhood

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// zScore returns (observed - mean(null)) / popstd(null). A null distribution
// whose samples are all identical (or empty) has no spread; the z-score is
// then 0 and degenerate is true.
func zScore(observed float64, null []float64) (z float64, degenerate bool) {
	if len(null) == 0 || floats.Min(null) == floats.Max(null) {
		return 0, true
	}
	mean, std := stat.PopMeanStdDev(null, nil)
	if std == 0 || math.IsNaN(std) {
		return 0, true
	}
	return (observed - mean) / std, false
}

// tailProportions returns the continuity-corrected fractions of null samples
// at or above (gt) and at or below (lt) observed, each divided by
// len(null)+1. Ties are tallied according to ties.
func tailProportions(observed float64, null []float64, ties TieMode) (gt, lt float64) {
	for _, v := range null {
		switch ties {
		case TiesSplit:
			switch {
			case v > observed:
				gt++
			case v < observed:
				lt++
			default:
				gt += 0.5
				lt += 0.5
			}
		default:
			if v >= observed {
				gt++
			}
			if v <= observed {
				lt++
			}
		}
	}
	denom := float64(len(null) + 1)
	return gt / denom, lt / denom
}

// significance returns +1 when observed sits significantly in the upper tail
// of null (co-localization), -1 when significantly in the lower tail
// (avoidance), and 0 otherwise. The direction is the smaller tail.
func significance(observed float64, null []float64, pThreshold float64, ties TieMode) float64 {
	gt, lt := tailProportions(observed, null, ties)
	if gt < lt {
		if gt < pThreshold {
			return 1
		}
		return 0
	}
	if lt < pThreshold {
		return -1
	}
	return 0
}
