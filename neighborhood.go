package neighborhood

import (
	"fmt"
	"math"
	"runtime"
)

// Method selects how a null distribution is reduced to a per-pair statistic.
type Method string

const (
	// MethodPValue reports +1 (co-localization), -1 (avoidance) or 0 (not
	// significant at Config.PThreshold).
	MethodPValue Method = "pval"
	// MethodZScore reports (observed - mean(null)) / popstd(null).
	MethodZScore Method = "zscore"
)

// TieMode controls how a null sample equal to the observed value is tallied
// in p-value mode.
type TieMode string

const (
	// TiesInclusive counts a tie toward both the upper (>=) and lower (<=)
	// tails.
	TiesInclusive TieMode = "inclusive"
	// TiesSplit uses disjoint comparisons and adds half a count to each tail
	// for a tie.
	TiesSplit TieMode = "split"
)

// IndexKind selects the spatial index used to build a neighbor relation.
type IndexKind string

const (
	IndexAuto     IndexKind = "auto"
	IndexKDTree   IndexKind = "kdtree"
	IndexBallTree IndexKind = "balltree"
	IndexBrute    IndexKind = "brute"
)

// Config controls neighbor search and the permutation test.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Trials is the number of label permutations used to build the null
	// distribution. Must be >= 1. Default: 500.
	Trials int

	// PThreshold is the significance threshold for MethodPValue. Must be in
	// (0, 1]. Default: 0.05.
	PThreshold float64

	// Method selects the reduction of the null distribution.
	// Default: MethodPValue.
	Method Method

	// Ties controls tie handling for MethodPValue. Default: TiesInclusive.
	Ties TieMode

	// IgnoreSelf drops a point from its own neighbor list while counting.
	// The neighbor relation itself always keeps the point. Default: false.
	IgnoreSelf bool

	// Seed is the session seed. Trial t draws its permutation from a source
	// seeded with (Seed, t), so results are reproducible for a fixed Seed
	// regardless of Workers. 0 means draw a fresh seed per call.
	Seed uint64

	// Workers controls the number of goroutines used for neighbor queries and
	// permutation trials. 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Index selects the spatial index for Neighbors. Default: IndexAuto,
	// which resolves to IndexKDTree.
	Index IndexKind

	// Metric is the distance used for radius queries. Default: EuclideanMetric.
	Metric DistanceMetric

	// LeafSize controls the maximum number of points in a tree leaf.
	// Default: 40.
	LeafSize int
}

// DefaultConfig returns a Config with the standard neighborhood analysis
// settings: 500 trials, p < 0.05, p-value calls.
func DefaultConfig() Config {
	return Config{
		Trials:     500,
		PThreshold: 0.05,
		Method:     MethodPValue,
		Ties:       TiesInclusive,
		Index:      IndexAuto,
		Metric:     EuclideanMetric{},
		LeafSize:   40,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Trials == 0 {
		cfg.Trials = 500
	}
	if cfg.PThreshold == 0 {
		cfg.PThreshold = 0.05
	}
	if cfg.Method == "" {
		cfg.Method = MethodPValue
	}
	if cfg.Ties == "" {
		cfg.Ties = TiesInclusive
	}
	if cfg.Index == "" || cfg.Index == IndexAuto {
		cfg.Index = IndexKDTree
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Trials < 1 {
		return fmt.Errorf("neighborhood: Trials must be >= 1, got %d", cfg.Trials)
	}
	if math.IsNaN(cfg.PThreshold) || cfg.PThreshold <= 0 || cfg.PThreshold > 1 {
		return fmt.Errorf("neighborhood: PThreshold must be in (0, 1], got %g", cfg.PThreshold)
	}
	if cfg.Method != MethodPValue && cfg.Method != MethodZScore {
		return fmt.Errorf("neighborhood: Method must be %q or %q, got %q", MethodPValue, MethodZScore, cfg.Method)
	}
	if cfg.Ties != TiesInclusive && cfg.Ties != TiesSplit {
		return fmt.Errorf("neighborhood: Ties must be %q or %q, got %q", TiesInclusive, TiesSplit, cfg.Ties)
	}
	switch cfg.Index {
	case IndexKDTree, IndexBallTree, IndexBrute:
		// valid
	default:
		return fmt.Errorf("neighborhood: invalid Index %q", cfg.Index)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("neighborhood: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("neighborhood: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// prepareConfig applies defaults and validates, returning the effective Config.
func prepareConfig(cfg Config) (Config, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
