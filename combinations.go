package neighborhood

// Pair is a combination of two labels under test. For an unordered registry
// A is the label registered first.
type Pair struct {
	A, B string
}

func (p Pair) String() string { return "(" + p.A + ", " + p.B + ")" }

// route sends an observation made at a center label to the canonical slot of
// the (center, partner) combination.
type route struct {
	partner int
	slot    int
}

// Combinations is the registry of label pairs to test, built once from a
// label vocabulary and shared read-only by every count and permutation trial.
//
// In ordered mode (A, B) and (B, A) are distinct and all k² pairs are
// registered. In unordered mode only the k(k+1)/2 canonical pairs exist, and
// an observation made at center B for partner A is routed to (A, B).
type Combinations struct {
	// Types is the label vocabulary in order of first appearance.
	Types []string
	// Pairs lists the canonical combinations. Count tables and results are
	// aligned with it.
	Pairs []Pair
	// Ordered reports whether (A, B) and (B, A) are distinct combinations.
	Ordered bool

	codes map[string]int
	// slots[a*k+b] is the canonical slot of (Types[a], Types[b]).
	slots []int
	// routes[c] lists, for center label c, every partner label with its slot.
	routes [][]route
}

// NewCombinations registers the combinations of the distinct labels in types.
// Duplicates are coalesced in first-seen order. A vocabulary of one label
// yields the single self-pair.
func NewCombinations(types []string, ordered bool) (*Combinations, error) {
	if len(types) == 0 {
		return nil, argError("types", "list of string", "no labels given")
	}

	c := &Combinations{Ordered: ordered, codes: make(map[string]int)}
	for _, t := range types {
		if _, ok := c.codes[t]; !ok {
			c.codes[t] = len(c.Types)
			c.Types = append(c.Types, t)
		}
	}

	k := len(c.Types)
	c.slots = make([]int, k*k)
	for a := 0; a < k; a++ {
		lo := a
		if ordered {
			lo = 0
		}
		for b := lo; b < k; b++ {
			slot := len(c.Pairs)
			c.Pairs = append(c.Pairs, Pair{A: c.Types[a], B: c.Types[b]})
			c.slots[a*k+b] = slot
			if !ordered {
				c.slots[b*k+a] = slot
			}
		}
	}

	c.routes = make([][]route, k)
	for a := 0; a < k; a++ {
		c.routes[a] = make([]route, k)
		for b := 0; b < k; b++ {
			c.routes[a][b] = route{partner: b, slot: c.slots[a*k+b]}
		}
	}

	return c, nil
}

// Len returns the number of registered combinations.
func (c *Combinations) Len() int { return len(c.Pairs) }

// Key returns the canonical slot of the combination of labels a and b, in
// either orientation for an unordered registry.
func (c *Combinations) Key(a, b string) (int, bool) {
	ia, ok := c.codes[a]
	if !ok {
		return 0, false
	}
	ib, ok := c.codes[b]
	if !ok {
		return 0, false
	}
	return c.slots[ia*len(c.Types)+ib], true
}

// Adjacency returns the combinations an observation at center label gets
// routed to: one per vocabulary label. In unordered mode this includes the
// canonical pairs where label is the second element.
func (c *Combinations) Adjacency(label string) []Pair {
	code, ok := c.codes[label]
	if !ok {
		return nil
	}
	out := make([]Pair, len(c.routes[code]))
	for i, rt := range c.routes[code] {
		out[i] = c.Pairs[rt.slot]
	}
	return out
}

// encode interns a per-point label slice into vocabulary codes.
func (c *Combinations) encode(types []string) ([]int, error) {
	labels := make([]int, len(types))
	for i, t := range types {
		code, ok := c.codes[t]
		if !ok {
			return nil, argError("types", "list of string drawn from the combination vocabulary",
				"point %d has unregistered label %q", i, t)
		}
		labels[i] = code
	}
	return labels, nil
}
