// Package config provides configuration structures and loading for docscan.
package config

// Config represents the complete application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Sampling SamplingConfig `yaml:"sampling" mapstructure:"sampling"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// StoreConfig represents the remote document store connection.
type StoreConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"` // empty uses the built-in endpoint
	Project  string `yaml:"project" mapstructure:"project"`   // target identity
	Database string `yaml:"database" mapstructure:"database"`
	Token    string `yaml:"token" mapstructure:"token"` // bearer credential, supports ${VAR}
}

// SamplingConfig represents how collections are sampled.
type SamplingConfig struct {
	SampleSize int    `yaml:"sample_size" mapstructure:"sample_size"` // documents fetched per collection
	Collection string `yaml:"collection" mapstructure:"collection"`   // optional single starting path
	Recurse    bool   `yaml:"recurse" mapstructure:"recurse"`         // descend into sub-collections
	MaxDepth   int    `yaml:"max_depth" mapstructure:"max_depth"`     // recursion depth budget
}

// OutputConfig represents where the schema report is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format     string `yaml:"format" mapstructure:"format"` // json or text
	Output     string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Database: "(default)",
		},
		Sampling: SamplingConfig{
			SampleSize: 10,
			Recurse:    false,
			MaxDepth:   0,
		},
		Output: OutputConfig{
			Path: "schema.json",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}
