package neat

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters for population generation and packing.
type Config struct {
	Population PopulationConfig
	Pack       PackConfig
}

// PopulationConfig holds parameters for generating random populations.
type PopulationConfig struct {
	PopSize              int      `ini:"pop_size"`
	MinNodes             int      `ini:"min_nodes"`
	MaxNodes             int      `ini:"max_nodes"`
	ConnProb             float64  `ini:"conn_prob"`              // Probability of each candidate connection
	FeedForward          bool     `ini:"feed_forward"`           // If true, recurrent connections are disallowed
	AllowSelfConnections bool     `ini:"allow_self_connections"` // Ignored when feed_forward is set
	WeightInitMean       float64  `ini:"weight_init_mean"`
	WeightInitStdev      float64  `ini:"weight_init_stdev"`
	WeightInitType       string   `ini:"weight_init_type"` // Default: 'gaussian'
	WeightMaxValue       float64  `ini:"weight_max_value"`
	WeightMinValue       float64  `ini:"weight_min_value"`
	EnabledDefault       string   `ini:"enabled_default"`              // Default: 'True'
	ActivationDefault    string   `ini:"activation_default"`           // Default: 'random'
	ActivationOptions    []string `ini:"activation_options" delim:" "` // Space-separated list of presets
	ActivationJitter     float64  `ini:"activation_jitter"`            // Stdev of noise added to preset coefficients
}

// PackConfig holds parameters for the texture packer.
type PackConfig struct {
	EdgeCountPolicy string `ini:"edge_count_policy"` // 'derive' or 'declare'
	MaxEdgeCount    uint32 `ini:"max_edge_count"`    // Declared edge layers, used with 'declare'
	Workers         int    `ini:"workers"`           // 0 selects GOMAXPROCS
	BiasTexture     bool   `ini:"bias_texture"`      // Emit the e coefficient as a separate texture
	MaxBufferBytes  int64  `ini:"max_buffer_bytes"`  // Size limit per packed buffer; 0 selects the packer default
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true, // Allow # comments starting with # or ;
		UnescapeValueCommentSymbols: true, // If # or ; appear in value, treat as value
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig parses configuration parameters from INI data.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := &Config{}

	// Map sections to structs
	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Pack").MapTo(&config.Pack); err != nil {
		return nil, fmt.Errorf("failed to map [Pack] section: %w", err)
	}

	// --- Explicitly clean potentially problematic string values ---
	config.Population.WeightInitType = cleanIniString(config.Population.WeightInitType)
	config.Population.EnabledDefault = cleanIniString(config.Population.EnabledDefault)
	config.Population.ActivationDefault = cleanIniString(config.Population.ActivationDefault)
	config.Pack.EdgeCountPolicy = strings.ToLower(cleanIniString(config.Pack.EdgeCountPolicy))
	opts := config.Population.ActivationOptions[:0]
	for _, opt := range config.Population.ActivationOptions {
		if opt = strings.TrimSpace(opt); opt != "" {
			opts = append(opts, opt)
		}
	}
	config.Population.ActivationOptions = opts

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults fills in values left empty by the file.
func (c *Config) applyDefaults() {
	p := &c.Population
	if p.PopSize == 0 {
		p.PopSize = 16
	}
	if p.MinNodes == 0 {
		p.MinNodes = 1
	}
	if p.MaxNodes == 0 {
		p.MaxNodes = 8
	}
	if p.WeightInitType == "" {
		p.WeightInitType = "gaussian"
	}
	if p.WeightInitStdev == 0 {
		p.WeightInitStdev = 1.0
	}
	if p.WeightMinValue == 0 && p.WeightMaxValue == 0 {
		p.WeightMinValue = -30
		p.WeightMaxValue = 30
	}
	if p.EnabledDefault == "" {
		p.EnabledDefault = "True"
	}
	if p.ActivationDefault == "" {
		p.ActivationDefault = "random"
	}
	if len(p.ActivationOptions) == 0 {
		p.ActivationOptions = []string{"identity"}
	}
	if c.Pack.EdgeCountPolicy == "" {
		c.Pack.EdgeCountPolicy = "derive"
	}
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	p := c.Population
	if p.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if p.MinNodes <= 0 {
		return fmt.Errorf("config error: min_nodes must be positive")
	}
	if p.MaxNodes < p.MinNodes {
		return fmt.Errorf("config error: max_nodes cannot be less than min_nodes")
	}
	if p.ConnProb < 0 || p.ConnProb > 1 {
		return fmt.Errorf("config error: conn_prob must be between 0 and 1")
	}
	if p.WeightInitStdev < 0 {
		return fmt.Errorf("config error: weight_init_stdev cannot be negative")
	}
	if p.WeightMaxValue < p.WeightMinValue {
		return fmt.Errorf("config error: weight_max_value cannot be less than weight_min_value")
	}
	if p.ActivationJitter < 0 {
		return fmt.Errorf("config error: activation_jitter cannot be negative")
	}
	switch strings.ToLower(p.WeightInitType) {
	case "gaussian", "normal", "uniform":
	default:
		return fmt.Errorf("config error: invalid weight_init_type '%s'", p.WeightInitType)
	}
	for _, opt := range p.ActivationOptions {
		if _, err := GetPreset(opt); err != nil {
			return fmt.Errorf("config error: activation_options: %w", err)
		}
	}
	if d := strings.ToLower(p.ActivationDefault); d != "random" && d != "none" {
		if _, err := GetPreset(d); err != nil {
			return fmt.Errorf("config error: activation_default: %w", err)
		}
	}

	switch c.Pack.EdgeCountPolicy {
	case "derive", "declare":
	default:
		return fmt.Errorf("config error: invalid edge_count_policy '%s', must be one of 'derive', 'declare'", c.Pack.EdgeCountPolicy)
	}
	if c.Pack.Workers < 0 {
		return fmt.Errorf("config error: workers cannot be negative")
	}
	if c.Pack.MaxBufferBytes < 0 {
		return fmt.Errorf("config error: max_buffer_bytes cannot be negative")
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	// Remove comments starting with # or ;
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
