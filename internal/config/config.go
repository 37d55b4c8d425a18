// Package config defines the nightwatch configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and NIGHTWATCH_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

// Defaults.
const (
	DefaultInput         = "input.txt"
	DefaultTopN          = 10
	DefaultHeatmapGuards = 3
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Input is the path of the guard log, relative to the working directory.
	Input string `koanf:"input"`

	// TopN is the length of the sleep ranking printed first.
	TopN int `koanf:"top_n"`

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`

	// Heatmap renders the sleepiest guards' minute tables on stderr.
	Heatmap bool `koanf:"heatmap"`

	// HeatmapGuards caps the number of guards in the heatmap.
	HeatmapGuards int `koanf:"heatmap_guards"`

	// MinuteStrategy also reports the guard most often asleep on one minute.
	MinuteStrategy bool `koanf:"minute_strategy"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Input:         DefaultInput,
		TopN:          DefaultTopN,
		HeatmapGuards: DefaultHeatmapGuards,
	}
}
