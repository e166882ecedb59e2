package neighborhood

import (
	"log"
	"math/rand/v2"
	"time"
)

// Result is the outcome of a permutation test over a combination registry.
// All slices are aligned with Pairs.
type Result struct {
	Pairs []Pair

	// Values holds the per-pair statistic: a z-score for MethodZScore, or
	// +1 / -1 / 0 (co-localization / avoidance / none) for MethodPValue.
	Values []float64

	// Observed holds the mean neighbor counts under the real labeling.
	Observed []float64

	// Null holds, per pair, the mean neighbor count of every trial in trial
	// order. Each row has exactly Trials entries.
	Null [][]float64

	Method Method
	Trials int
	// Seed is the session seed the trials were drawn from; passing it back
	// in Config.Seed reproduces the run.
	Seed uint64

	combos *Combinations
}

// Lookup returns the statistic for the combination of labels a and b.
func (r *Result) Lookup(a, b string) (float64, bool) {
	slot, ok := r.combos.Key(a, b)
	if !ok {
		return 0, false
	}
	return r.Values[slot], true
}

// Bootstrap tests every registered combination for spatial association
// under the labeling types and neighbor relation rel.
//
// The observed counts are compared against cfg.Trials counts computed on
// full shuffles of types (the label multiset is preserved). Trials run on
// cfg.Workers goroutines; trial t shuffles with a source seeded by
// (Seed, t), so the result does not depend on scheduling.
func (c *Combinations) Bootstrap(types []string, rel Relation, cfg Config) (*Result, error) {
	cfg, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}
	labels, err := c.prepare(types, rel)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	seed := sessionSeed(cfg.Seed)
	nPairs := c.Len()

	observed := make([]float64, nPairs)
	c.newCounter(rel, cfg.IgnoreSelf).count(labels, observed)

	// Each trial writes only its own table; tables are folded afterwards.
	tables := make([][]float64, cfg.Trials)
	parallelRanges(cfg.Trials, cfg.Workers, func(lo, hi int) {
		ct := c.newCounter(rel, cfg.IgnoreSelf)
		shuffled := make([]int, len(labels))
		for t := lo; t < hi; t++ {
			copy(shuffled, labels)
			permute(shuffled, seed, t)
			table := make([]float64, nPairs)
			ct.count(shuffled, table)
			tables[t] = table
		}
	})

	null := make([][]float64, nPairs)
	for s := range null {
		null[s] = make([]float64, cfg.Trials)
	}
	for t, table := range tables {
		for s, v := range table {
			null[s][t] = v
		}
	}

	values := make([]float64, nPairs)
	degenerate := 0
	for s := range values {
		switch cfg.Method {
		case MethodZScore:
			z, flat := zScore(observed[s], null[s])
			if flat {
				degenerate++
			}
			values[s] = z
		default:
			values[s] = significance(observed[s], null[s], cfg.PThreshold, cfg.Ties)
		}
	}
	if degenerate > 0 {
		zeroVariancePairs.Add(float64(degenerate))
		log.Printf("neighborhood: %d of %d combination(s) have a zero-variance null distribution; z-score reported as 0", degenerate, nPairs)
	}

	bootstrapRuns.WithLabelValues(string(cfg.Method)).Inc()
	bootstrapTrials.Add(float64(cfg.Trials))
	bootstrapDuration.WithLabelValues(string(cfg.Method)).Observe(time.Since(start).Seconds())

	return &Result{
		Pairs:    c.Pairs,
		Values:   values,
		Observed: observed,
		Null:     null,
		Method:   cfg.Method,
		Trials:   cfg.Trials,
		Seed:     seed,
		combos:   c,
	}, nil
}

// sessionSeed returns seed, or a fresh random seed when seed is 0.
func sessionSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

// permute shuffles s in place with a source private to the given trial.
func permute[T any](s []T, seed uint64, trial int) {
	rng := rand.New(rand.NewPCG(seed, uint64(trial)))
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
