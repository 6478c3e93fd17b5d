package model

// Config represents the complete harness configuration
type Config struct {
	Oracle OracleConfig `mapstructure:"oracle" yaml:"oracle"`
	Run    RunConfig    `mapstructure:"run" yaml:"run"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// OracleConfig holds oracle provider settings
type OracleConfig struct {
	Provider          string  `mapstructure:"provider" yaml:"provider"`                       // openai, anthropic, ollama, exact
	Model             string  `mapstructure:"model" yaml:"model"`                             // Model name (provider-specific)
	BaseURL           string  `mapstructure:"base_url" yaml:"base_url"`                       // Custom endpoint (Ollama, proxies)
	Timeout           int     `mapstructure:"timeout" yaml:"timeout"`                         // Per-attempt timeout in seconds
	MaxRetries        int     `mapstructure:"max_retries" yaml:"max_retries"`                 // Attempts per query
	RetryDelaySeconds int     `mapstructure:"retry_delay" yaml:"retry_delay"`                 // Fixed delay between attempts
	MaxTokens         int     `mapstructure:"max_tokens" yaml:"max_tokens"`                   // Response length cap
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"` // Outgoing query throttle
	Burst             int     `mapstructure:"burst" yaml:"burst"`                             // Rate limiter burst
	HTTPProxy         string  `mapstructure:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy        string  `mapstructure:"https_proxy" yaml:"https_proxy"`
}

// RunConfig selects which frameworks the harness generates
type RunConfig struct {
	Classes []string `mapstructure:"classes" yaml:"classes"` // Empty means all classes
	Sizes   []int    `mapstructure:"sizes" yaml:"sizes"`     // Argument counts per class
	Seed    int64    `mapstructure:"seed" yaml:"seed"`       // 0 means time-seeded
}

// CacheConfig controls oracle response caching
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled" yaml:"enabled"`
	TTLSeconds int  `mapstructure:"ttl" yaml:"ttl"`
}

// OutputConfig controls where results land
type OutputConfig struct {
	JSONPath string `mapstructure:"json" yaml:"json"` // Nested results file, empty disables
	CSVPath  string `mapstructure:"csv" yaml:"csv"`   // Flat rows file, empty disables
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider:          "exact",
			Timeout:           60,
			MaxRetries:        3,
			RetryDelaySeconds: 5,
			MaxTokens:         2000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Run: RunConfig{
			Sizes: []int{4, 8, 16, 20},
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
		},
		Output: OutputConfig{
			JSONPath: "results.json",
		},
	}
}
