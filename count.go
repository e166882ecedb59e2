package neighborhood

// counter holds the scratch state for counting neighbor types over one
// labeling. It is not safe for concurrent use; each worker owns one.
type counter struct {
	c          *Combinations
	rel        Relation
	ignoreSelf bool

	freq []int // neighbor frequency per label code, zeroed between points
	sums []int // raw observation totals per slot
	obs  []int // observation counts per slot
}

func (c *Combinations) newCounter(rel Relation, ignoreSelf bool) *counter {
	return &counter{
		c:          c,
		rel:        rel,
		ignoreSelf: ignoreSelf,
		freq:       make([]int, len(c.Types)),
		sums:       make([]int, c.Len()),
		obs:        make([]int, c.Len()),
	}
}

// count writes, for every combination slot, the mean number of partner-label
// neighbors observed around points carrying the center label. labels holds
// one vocabulary code per point. Slots without observations get 0.
func (ct *counter) count(labels []int, out []float64) {
	clear(ct.sums)
	clear(ct.obs)

	for k, neigh := range ct.rel {
		for _, j := range neigh {
			if ct.ignoreSelf && j == k {
				continue
			}
			ct.freq[labels[j]]++
		}

		// A point without neighbors still records a 0 observation.
		for _, rt := range ct.c.routes[labels[k]] {
			ct.sums[rt.slot] += ct.freq[rt.partner]
			ct.obs[rt.slot]++
		}

		for _, j := range neigh {
			ct.freq[labels[j]] = 0
		}
	}

	for s := range out {
		if ct.obs[s] == 0 {
			out[s] = 0
			continue
		}
		out[s] = float64(ct.sums[s]) / float64(ct.obs[s])
	}
}

// Count computes the per-combination mean neighbor counts for the labeling
// types over rel. The result is aligned with c.Pairs. With ignoreSelf, a
// point is dropped from its own neighbor list by identity.
func (c *Combinations) Count(types []string, rel Relation, ignoreSelf bool) ([]float64, error) {
	labels, err := c.prepare(types, rel)
	if err != nil {
		return nil, err
	}
	out := make([]float64, c.Len())
	c.newCounter(rel, ignoreSelf).count(labels, out)
	return out, nil
}

// prepare validates a labeling against rel and encodes it.
func (c *Combinations) prepare(types []string, rel Relation) ([]int, error) {
	if len(types) != len(rel) {
		return nil, argError("types", "list of string with one label per point",
			"got %d labels for %d points", len(types), len(rel))
	}
	if err := rel.validate(); err != nil {
		return nil, err
	}
	return c.encode(types)
}
