package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/TrevorS/neighborhood"
)

// request is a JSON object whose fields are decoded one at a time, so a
// malformed field is reported by name instead of failing the whole document.
type request map[string]json.RawMessage

func readRequest(r io.Reader) (request, error) {
	var req request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if req == nil {
		req = request{}
	}
	return req, nil
}

func (r request) has(name string) bool {
	raw, ok := r[name]
	return ok && string(raw) != "null"
}

// decode unmarshals field name into v, or reports an ArgumentError naming
// the field and the expected shape.
func (r request) decode(name, want string, v any) error {
	raw, ok := r[name]
	if !ok || string(raw) == "null" {
		return &neighborhood.ArgumentError{Arg: name, Want: want, Detail: "missing"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &neighborhood.ArgumentError{Arg: name, Want: want, Detail: err.Error()}
	}
	return nil
}

func (r request) strings(name string) ([]string, error) {
	var out []string
	if err := r.decode(name, "list of string", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r request) bools(name string) ([]bool, error) {
	var out []bool
	if err := r.decode(name, "list of bool", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r request) points(name string) ([]neighborhood.Point, error) {
	const want = "list of (float, float)"
	var raw [][]float64
	if err := r.decode(name, want, &raw); err != nil {
		return nil, err
	}
	pts := make([]neighborhood.Point, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, &neighborhood.ArgumentError{Arg: name, Want: want, Detail: fmt.Sprintf("point %d has %d coordinates", i, len(p))}
		}
		pts[i] = neighborhood.Point{X: p[0], Y: p[1]}
	}
	return pts, nil
}

// neighbors decodes a {"index": [indices]} mapping over n points.
func (r request) neighbors(name string, n int) (neighborhood.Relation, error) {
	const want = "a dict of point index to list of point index"
	var raw map[string][]int
	if err := r.decode(name, want, &raw); err != nil {
		return nil, err
	}
	m := make(map[int][]int, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, &neighborhood.ArgumentError{Arg: name, Want: want, Detail: fmt.Sprintf("key %q is not an integer", k)}
		}
		m[idx] = v
	}
	return neighborhood.RelationFromMap(m, n)
}

func (r request) float(name string, def float64) (float64, error) {
	if !r.has(name) {
		return def, nil
	}
	var v float64
	if err := r.decode(name, "float", &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r request) int(name string, def int) (int, error) {
	if !r.has(name) {
		return def, nil
	}
	var v int
	if err := r.decode(name, "int", &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r request) bool(name string, def bool) (bool, error) {
	if !r.has(name) {
		return def, nil
	}
	var v bool
	if err := r.decode(name, "bool", &v); err != nil {
		return false, err
	}
	return v, nil
}

func (r request) string(name string, def string) (string, error) {
	if !r.has(name) {
		return def, nil
	}
	var v string
	if err := r.decode(name, "string", &v); err != nil {
		return "", err
	}
	return v, nil
}

// config reads the permutation options carried in the request on top of base.
func (r request) config(base neighborhood.Config) (neighborhood.Config, error) {
	cfg := base
	var err error
	if cfg.Trials, err = r.int("times", cfg.Trials); err != nil {
		return cfg, err
	}
	if cfg.Trials < 1 {
		return cfg, &neighborhood.ArgumentError{Arg: "times", Want: "a positive int", Detail: fmt.Sprintf("got %d", cfg.Trials)}
	}
	if cfg.PThreshold, err = r.float("pval", cfg.PThreshold); err != nil {
		return cfg, err
	}
	if !(cfg.PThreshold > 0 && cfg.PThreshold <= 1) {
		return cfg, &neighborhood.ArgumentError{Arg: "pval", Want: "a float in (0, 1]", Detail: fmt.Sprintf("got %g", cfg.PThreshold)}
	}
	method, err := r.string("method", string(cfg.Method))
	if err != nil {
		return cfg, err
	}
	cfg.Method = neighborhood.Method(method)
	if cfg.IgnoreSelf, err = r.bool("ignore_self", cfg.IgnoreSelf); err != nil {
		return cfg, err
	}
	return cfg, nil
}
