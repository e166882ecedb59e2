// Package neighborhood tests whether categorical labels attached to 2D
// points (for example cell types in a tissue section) are found next to each
// other more or less often than chance.
//
// A neighbor relation is built once from the coordinates and a radius. A
// combination registry lists the label pairs under test. For each pair the
// observed mean number of partner-labeled neighbors around center-labeled
// points is compared against a null distribution obtained by shuffling the
// labels over the same spatial layout.
//
// Basic usage:
//
//	rel, err := neighborhood.Neighbors(points, 30, neighborhood.DefaultConfig())
//	combos, err := neighborhood.NewCombinations(cellTypes, false)
//	cfg := neighborhood.DefaultConfig()
//	cfg.Trials = 1000
//	result, err := combos.Bootstrap(cellTypes, rel, cfg)
//	// result.Values[i] is +1 (co-localization), -1 (avoidance) or 0
//	// for the label pair result.Pairs[i]
//
// Set Config.Method to MethodZScore to get z-scores instead of calls. For
// two binary markers use BooleanBootstrap.
//
// # Spatial indexes
//
// Neighbors uses a KD-tree by default. Set Config.Index to force a
// specific index:
//
//	cfg.Index = neighborhood.IndexKDTree   // axis-aligned splits (default)
//	cfg.Index = neighborhood.IndexBallTree // works with any metric
//	cfg.Index = neighborhood.IndexBrute    // O(n²) scan
//
// # Reproducibility
//
// Every permutation trial draws from its own random source seeded by the
// session seed and the trial number. Config.Seed fixes the session seed;
// Result.Seed reports the one that was used.
package neighborhood
