package model

import "time"

// Config is the complete configuration, overridable via CLI flags,
// CLAUSELINT_* environment variables, or ~/.clauselint/config.yaml.
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig tunes the detection heuristics.
type AnalysisConfig struct {
	// DupThreshold is the Jaccard similarity at which a pair is flagged as a
	// duplicate. Callers must stay within [MinDupThreshold, MaxDupThreshold];
	// the boundaries clamp, the core does not validate.
	DupThreshold float64 `yaml:"dup_threshold" mapstructure:"dup_threshold"`
}

// ConcurrencyConfig controls the worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
	// ParallelMinClauses is the clause count above which the pairwise loop
	// fans out over the pool instead of running sequentially.
	ParallelMinClauses int `yaml:"parallel_min_clauses" mapstructure:"parallel_min_clauses"`
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	Store        string        `yaml:"store" mapstructure:"store"` // "memory" or "sqlite"
	SQLitePath   string        `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	RateLimit    float64       `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/sec per client
	RateBurst    int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins  []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	ShowResolved  bool `yaml:"show_resolved" mapstructure:"show_resolved"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			DupThreshold: 0.85,
		},
		Concurrency: ConcurrencyConfig{
			Workers:            1,
			ParallelMinClauses: 200,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.clauselint/cache when empty
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Store:        "memory",
			SQLitePath:   "clauselint.db",
			RateLimit:    10,
			RateBurst:    20,
			CORSOrigins:  []string{"http://localhost:3000"},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			ShowResolved:  false,
		},
	}
}
