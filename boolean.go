package neighborhood

import (
	"log"
	"time"
)

// coOccurrence counts, over every point k with x[k], the neighbors j of k
// with y[j]. With ignoreSelf, k is skipped in its own neighbor list.
func coOccurrence(x, y []bool, rel Relation, ignoreSelf bool) int {
	count := 0
	for k, neigh := range rel {
		if !x[k] {
			continue
		}
		for _, j := range neigh {
			if ignoreSelf && j == k {
				continue
			}
			if y[j] {
				count++
			}
		}
	}
	return count
}

// BooleanBootstrap tests whether points flagged by x have neighbors flagged
// by y more often than chance. Each trial shuffles y and recounts; the
// result is the z-score of the observed count against the trial counts, or 0
// when every trial produced the same count. cfg.Method is ignored.
func BooleanBootstrap(x, y []bool, rel Relation, cfg Config) (float64, error) {
	cfg, err := prepareConfig(cfg)
	if err != nil {
		return 0, err
	}
	n := len(rel)
	if len(x) != n {
		return 0, argError("x", "list of bool with one flag per point", "got %d flags for %d points", len(x), n)
	}
	if len(y) != n {
		return 0, argError("y", "list of bool with one flag per point", "got %d flags for %d points", len(y), n)
	}
	if err := rel.validate(); err != nil {
		return 0, err
	}

	start := time.Now()
	seed := sessionSeed(cfg.Seed)
	observed := float64(coOccurrence(x, y, rel, cfg.IgnoreSelf))

	null := make([]float64, cfg.Trials)
	parallelRanges(cfg.Trials, cfg.Workers, func(lo, hi int) {
		shuffled := make([]bool, n)
		for t := lo; t < hi; t++ {
			copy(shuffled, y)
			permute(shuffled, seed, t)
			null[t] = float64(coOccurrence(x, shuffled, rel, cfg.IgnoreSelf))
		}
	})

	z, flat := zScore(observed, null)
	if flat {
		zeroVariancePairs.Inc()
		log.Printf("neighborhood: boolean co-occurrence null distribution has zero variance; z-score reported as 0")
	}

	bootstrapRuns.WithLabelValues(methodBoolean).Inc()
	bootstrapTrials.Add(float64(cfg.Trials))
	bootstrapDuration.WithLabelValues(methodBoolean).Observe(time.Since(start).Seconds())

	return z, nil
}
