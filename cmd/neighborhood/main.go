// Command neighborhood runs neighbor co-occurrence tests on JSON requests.
//
// Usage:
//
//	neighborhood <command> [flags] [request.json]
//
// Commands:
//
//	neighbors     {"points": [[x, y], ...], "r": 30}
//	combinations  {"types": ["A", "B", ...], "order": false}
//	bootstrap     {"types": [...], "neighbors": {"0": [0, 3], ...}, "order": false,
//	               "times": 500, "pval": 0.05, "method": "pval", "ignore_self": false}
//	boolean       {"x_status": [...], "y_status": [...], "neighbors": {...},
//	               "times": 500, "ignore_self": false}
//
// "times" must be a positive integer and "pval" must lie in (0, 1]; an
// explicit 0 is rejected rather than replaced by the default.
//
// The request is read from the named file or stdin; the response is written
// to stdout as JSON. Flags override the corresponding request fields.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/TrevorS/neighborhood"
)

const usage = "usage: neighborhood <neighbors|combinations|bootstrap|boolean> [flags] [request.json]"

func main() {
	log.SetFlags(0)
	log.SetPrefix("neighborhood: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	trials := fs.Int("trials", 500, "number of label permutations")
	pval := fs.Float64("pval", 0.05, "significance threshold for -method pval")
	method := fs.String("method", string(neighborhood.MethodPValue), "reduction: pval or zscore")
	ties := fs.String("ties", string(neighborhood.TiesInclusive), "tie handling for pval: inclusive or split")
	ignoreSelf := fs.Bool("ignore-self", false, "exclude a point from its own neighbors when counting")
	ordered := fs.Bool("ordered", false, "treat (A, B) and (B, A) as distinct combinations")
	seed := fs.Uint64("seed", 0, "session seed (0 = random)")
	workers := fs.Int("workers", 0, "worker goroutines (0 = NumCPU)")
	index := fs.String("index", string(neighborhood.IndexAuto), "spatial index: auto, kdtree, balltree or brute")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	req, err := readRequest(in)
	if err != nil {
		return err
	}

	cfg, err := req.config(neighborhood.DefaultConfig())
	if err != nil {
		return err
	}
	order, err := req.bool("order", false)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trials":
			cfg.Trials = *trials
		case "pval":
			cfg.PThreshold = *pval
		case "method":
			cfg.Method = neighborhood.Method(*method)
		case "ignore-self":
			cfg.IgnoreSelf = *ignoreSelf
		case "ordered":
			order = *ordered
		}
	})
	cfg.Ties = neighborhood.TieMode(*ties)
	cfg.Seed = *seed
	cfg.Workers = *workers
	cfg.Index = neighborhood.IndexKind(*index)
	// The library treats zero as "use the default"; on the command line it is an error.
	if cfg.Trials < 1 {
		return fmt.Errorf("-trials must be >= 1, got %d", cfg.Trials)
	}
	if !(cfg.PThreshold > 0 && cfg.PThreshold <= 1) {
		return fmt.Errorf("-pval must be in (0, 1], got %g", cfg.PThreshold)
	}

	var out any
	switch cmd {
	case "neighbors":
		out, err = runNeighbors(req, cfg)
	case "combinations":
		out, err = runCombinations(req, order)
	case "bootstrap":
		out, err = runBootstrap(req, cfg, order)
	case "boolean":
		out, err = runBoolean(req, cfg)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runNeighbors(req request, cfg neighborhood.Config) (any, error) {
	points, err := req.points("points")
	if err != nil {
		return nil, err
	}
	var r float64
	if err := req.decode("r", "float", &r); err != nil {
		return nil, err
	}
	rel, err := neighborhood.Neighbors(points, r, cfg)
	if err != nil {
		return nil, err
	}
	return map[string]any{"neighbors": rel.ToMap()}, nil
}

type combinationsResponse struct {
	Types         []string               `json:"cell_types"`
	Combinations  [][2]string            `json:"cell_combs"`
	Relationships map[string][][2]string `json:"cell_relationships"`
}

func runCombinations(req request, order bool) (any, error) {
	types, err := req.strings("types")
	if err != nil {
		return nil, err
	}
	combos, err := neighborhood.NewCombinations(types, order)
	if err != nil {
		return nil, err
	}
	resp := combinationsResponse{
		Types:         combos.Types,
		Combinations:  pairsJSON(combos.Pairs),
		Relationships: make(map[string][][2]string, len(combos.Types)),
	}
	for _, t := range combos.Types {
		resp.Relationships[t] = pairsJSON(combos.Adjacency(t))
	}
	return resp, nil
}

type pairResult struct {
	Pair  [2]string `json:"pair"`
	Value float64   `json:"value"`
}

type bootstrapResponse struct {
	Method  neighborhood.Method `json:"method"`
	Trials  int                 `json:"times"`
	Seed    uint64              `json:"seed"`
	Results []pairResult        `json:"results"`
}

func runBootstrap(req request, cfg neighborhood.Config, order bool) (any, error) {
	types, err := req.strings("types")
	if err != nil {
		return nil, err
	}
	rel, err := req.neighbors("neighbors", len(types))
	if err != nil {
		return nil, err
	}
	combos, err := neighborhood.NewCombinations(types, order)
	if err != nil {
		return nil, err
	}
	res, err := combos.Bootstrap(types, rel, cfg)
	if err != nil {
		return nil, err
	}
	resp := bootstrapResponse{Method: res.Method, Trials: res.Trials, Seed: res.Seed}
	for i, p := range res.Pairs {
		resp.Results = append(resp.Results, pairResult{Pair: [2]string{p.A, p.B}, Value: res.Values[i]})
	}
	return resp, nil
}

func runBoolean(req request, cfg neighborhood.Config) (any, error) {
	x, err := req.bools("x_status")
	if err != nil {
		return nil, err
	}
	y, err := req.bools("y_status")
	if err != nil {
		return nil, err
	}
	if len(y) != len(x) {
		return nil, &neighborhood.ArgumentError{Arg: "y_status", Want: "list of bool with one flag per point",
			Detail: fmt.Sprintf("got %d flags, x_status has %d", len(y), len(x))}
	}
	rel, err := req.neighbors("neighbors", len(x))
	if err != nil {
		return nil, err
	}
	z, err := neighborhood.BooleanBootstrap(x, y, rel, cfg)
	if err != nil {
		return nil, err
	}
	return map[string]float64{"zscore": z}, nil
}

func pairsJSON(pairs []neighborhood.Pair) [][2]string {
	out := make([][2]string, len(pairs))
	for i, p := range pairs {
		out[i] = [2]string{p.A, p.B}
	}
	return out
}
