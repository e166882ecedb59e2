package neighborhood

import (
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Trials != 500 {
		t.Errorf("Trials = %d, want 500", cfg.Trials)
	}
	if cfg.PThreshold != 0.05 {
		t.Errorf("PThreshold = %v, want 0.05", cfg.PThreshold)
	}
	if cfg.Method != MethodPValue {
		t.Errorf("Method = %q, want %q", cfg.Method, MethodPValue)
	}
	if cfg.Index != IndexAuto {
		t.Errorf("Index = %q, want %q", cfg.Index, IndexAuto)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
	if _, err := prepareConfig(cfg); err != nil {
		t.Fatalf("DefaultConfig should prepare cleanly: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Trials:     7,
		PThreshold: 0.01,
		Method:     MethodZScore,
		Ties:       TiesSplit,
		IgnoreSelf: true,
		Seed:       9,
		Workers:    3,
		Index:      IndexBrute,
		Metric:     ManhattanMetric{},
		LeafSize:   5,
	}
	applyDefaults(&cfg)
	if cfg.Trials != 7 || cfg.PThreshold != 0.01 || cfg.Method != MethodZScore || cfg.Ties != TiesSplit {
		t.Errorf("explicit permutation settings overwritten: %+v", cfg)
	}
	if !cfg.IgnoreSelf || cfg.Seed != 9 || cfg.Workers != 3 {
		t.Errorf("explicit run settings overwritten: %+v", cfg)
	}
	if cfg.Index != IndexBrute || cfg.LeafSize != 5 {
		t.Errorf("explicit index settings overwritten: %+v", cfg)
	}
	if _, ok := cfg.Metric.(ManhattanMetric); !ok {
		t.Errorf("Metric = %T, want ManhattanMetric", cfg.Metric)
	}
}

func TestApplyDefaults_Workers(t *testing.T) {
	cfg := Config{}
	applyDefaults(&cfg)
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative trials", func(c *Config) { c.Trials = -5 }, "Trials"},
		{"negative threshold", func(c *Config) { c.PThreshold = -0.1 }, "PThreshold"},
		{"NaN threshold", func(c *Config) { c.PThreshold = math.NaN() }, "PThreshold"},
		{"threshold of one", func(c *Config) { c.PThreshold = 1 }, ""},
		{"unknown method", func(c *Config) { c.Method = "bonferroni" }, "Method"},
		{"unknown ties", func(c *Config) { c.Ties = "drop" }, "Ties"},
		{"unknown index", func(c *Config) { c.Index = "rtree" }, "Index"},
		{"negative leaf size", func(c *Config) { c.LeafSize = -1 }, "LeafSize"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := prepareConfig(cfg)
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not mention %q", err, tt.errMsg)
			}
			if !strings.HasPrefix(err.Error(), "neighborhood: ") {
				t.Errorf("error %q lacks package prefix", err)
			}
		})
	}
}

func TestArgumentError_Message(t *testing.T) {
	err := error(argError("x_status", "list of bool", "got %d flags for %d points", 2, 3))
	want := "neighborhood: can't resolve `x_status`, should be list of bool: got 2 flags for 3 points"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var argErr *ArgumentError
	if !errors.As(err, &argErr) || argErr.Arg != "x_status" {
		t.Errorf("errors.As failed for %v", err)
	}

	bare := &ArgumentError{Arg: "types", Want: "list of string"}
	if got := bare.Error(); got != "neighborhood: can't resolve `types`, should be list of string" {
		t.Errorf("Error() = %q", got)
	}
}
