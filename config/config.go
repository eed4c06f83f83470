// Package config loads the description of a run from a YAML file, with
// overrides taken from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Stream kinds.
const (
	KindUniform = "uniform"
	KindTime    = "time"
	KindRain    = "rain"
)

// Environment variables that override the file.
const (
	EnvLogLevel    = "ASTK_LOG_LEVEL"
	EnvMonitorPort = "ASTK_MONITOR_PORT"
	EnvOutput      = "ASTK_OUTPUT"
	EnvWeatherFile = "ASTK_WEATHER_FILE"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// WeatherFile is a CSV file with a time column and a rain column.
	// Relative paths are resolved against the config file directory first.
	WeatherFile string `yaml:"weather_file"`

	// StartDate is the first simulated hour. Empty means the first record of
	// the weather file.
	StartDate string `yaml:"start_date"`

	Steps int `yaml:"steps"`
	Delay int `yaml:"delay"`

	// Split is the kind of the streams that do not name one.
	Split string `yaml:"split"`

	Streams  []StreamConfig `yaml:"streams"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Output   string         `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
}

// StreamConfig describes one stream of the run.
type StreamConfig struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Delay int    `yaml:"delay"`
}

// MonitorConfig controls the monitoring server.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// Default returns the configuration used for missing fields.
func Default() Config {
	return Config{
		Steps:    24,
		Delay:    1,
		Split:    KindUniform,
		LogLevel: "info",
	}
}

// LoadEnv reads .env files into the environment. Missing files are ignored;
// variables that are already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

// Load reads, completes and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadUnchecked loads a config file, applies defaults and environment
// overrides, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	c.ApplyEnv()
	c.complete()

	if c.WeatherFile != "" && !filepath.IsAbs(c.WeatherFile) {
		cand := filepath.Join(filepath.Dir(path), c.WeatherFile)
		if _, err := os.Stat(cand); err == nil {
			c.WeatherFile = cand
		}
	}

	return &c, nil
}

// ApplyEnv overwrites fields with the ASTK_* environment variables that are
// set.
func (c *Config) ApplyEnv() {
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.Output = getEnv(EnvOutput, c.Output)
	c.WeatherFile = getEnv(EnvWeatherFile, c.WeatherFile)

	port := getEnvInt(EnvMonitorPort, 0)
	if port > 0 {
		c.Monitor.Port = port
		c.Monitor.Enabled = true
	}
}

func (c *Config) complete() {
	if c.Split == "" {
		c.Split = KindUniform
	}

	if len(c.Streams) == 0 {
		c.Streams = []StreamConfig{{Name: "model"}}
	}

	for i := range c.Streams {
		s := &c.Streams[i]

		if s.Kind == "" {
			s.Kind = c.Split
		}

		if s.Delay == 0 {
			s.Delay = c.Delay
		}

		if s.Name == "" {
			s.Name = fmt.Sprintf("%s%d", s.Kind, i)
		}
	}
}

// Validate checks the fields that can be checked without reading the
// weather file.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative", ErrInvalidConfig)
	}

	if !isKind(c.Split) {
		return fmt.Errorf("%w: unknown split %q", ErrInvalidConfig, c.Split)
	}

	if _, err := c.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool)
	needsWeather := false

	for _, s := range c.Streams {
		if seen[s.Name] {
			return fmt.Errorf("%w: stream %s defined twice",
				ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = true

		if !isKind(s.Kind) {
			return fmt.Errorf("%w: stream %s has unknown kind %q",
				ErrInvalidConfig, s.Name, s.Kind)
		}

		if s.Kind != KindRain && s.Delay <= 0 {
			return fmt.Errorf("%w: stream %s needs a positive delay",
				ErrInvalidConfig, s.Name)
		}

		needsWeather = needsWeather || s.Kind != KindUniform
	}

	if needsWeather && c.WeatherFile == "" {
		return fmt.Errorf("%w: weather_file is required by time and rain streams",
			ErrInvalidConfig)
	}

	if c.Monitor.Port != 0 && c.Monitor.Port < 1000 {
		return fmt.Errorf("%w: monitor port %d is not allowed",
			ErrInvalidConfig, c.Monitor.Port)
	}

	return nil
}

var startLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Start parses StartDate. An empty StartDate gives the zero time.
func (c *Config) Start() (time.Time, error) {
	if strings.TrimSpace(c.StartDate) == "" {
		return time.Time{}, nil
	}

	for _, layout := range startLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(c.StartDate), time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse start_date %q", c.StartDate)
}

func isKind(kind string) bool {
	switch kind {
	case KindUniform, KindTime, KindRain:
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return def
}
