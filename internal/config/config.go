package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/audi70r/logstat/internal/gitlog"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLimit    = errors.New("limits must not be negative")
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidAlias    = errors.New("invalid author alias")
)

const (
	dateLayout = "2006-01-02"
	envPrefix  = "LOGSTAT"
	configName = ".logstat"
)

// Config holds application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Display DisplayConfig `mapstructure:"display"`
	Authors AuthorsConfig `mapstructure:"authors"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Derived by Validate
	Timezone *time.Location     `mapstructure:"-"`
	Since    time.Time          `mapstructure:"-"`
	Until    time.Time          `mapstructure:"-"`
	Policy   gitlog.ErrorPolicy `mapstructure:"-"`
	Aliases  map[string]string  `mapstructure:"-"` // alias -> primary
}

// LogConfig controls how git log text is parsed
type LogConfig struct {
	DateLayout  string `mapstructure:"date_layout"`
	ErrorPolicy string `mapstructure:"error_policy"` // "fail-fast" or "skip"
}

// FilterConfig selects commits before aggregation
type FilterConfig struct {
	Authors []string `mapstructure:"authors"`
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	Since   string   `mapstructure:"since"` // YYYY-MM-DD, inclusive
	Until   string   `mapstructure:"until"` // YYYY-MM-DD, inclusive
}

// DisplayConfig holds report and TUI settings
type DisplayConfig struct {
	Timezone       string `mapstructure:"timezone"` // IANA name, "" or "Local"
	Format         string `mapstructure:"format"`   // table, json, yaml
	NoColor        bool   `mapstructure:"no_color"`
	TimeFormat24h  bool   `mapstructure:"time_format_24h"`
	MaxAuthors     int    `mapstructure:"max_authors"`
	MaxFiles       int    `mapstructure:"max_files"`
	SparklineWidth int    `mapstructure:"sparkline_width"`
	RollingWindow  int    `mapstructure:"rolling_window"` // days for rolling average
}

// AuthorsConfig lists alias identities folded into a primary one.
// Kept as a list: viper splits map keys on "." and lowercases them.
type AuthorsConfig struct {
	Aliases []AliasConfig `mapstructure:"aliases"`
}

// AliasConfig maps one identity (raw author or email) to its primary
type AliasConfig struct {
	Alias   string `mapstructure:"alias"`
	Primary string `mapstructure:"primary"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			DateLayout:  gitlog.DefaultDateLayout,
			ErrorPolicy: gitlog.FailFast.String(),
		},
		Display: DisplayConfig{
			Format:         "table",
			TimeFormat24h:  true,
			MaxAuthors:     20,
			MaxFiles:       30,
			SparklineWidth: 52,
			RollingWindow:  7,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Timezone: time.Local,
		Policy:   gitlog.FailFast,
		Aliases:  map[string]string{},
	}
}

// Load reads configuration from file and LOGSTAT_* environment variables.
// An empty path searches for .logstat.yaml in the working and home directories;
// a missing file is not an error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults mirrors Default into viper so env variables can override every key
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.date_layout", d.Log.DateLayout)
	v.SetDefault("log.error_policy", d.Log.ErrorPolicy)

	v.SetDefault("filter.authors", []string{})
	v.SetDefault("filter.include", []string{})
	v.SetDefault("filter.exclude", []string{})
	v.SetDefault("filter.since", "")
	v.SetDefault("filter.until", "")

	v.SetDefault("display.timezone", "")
	v.SetDefault("display.format", d.Display.Format)
	v.SetDefault("display.no_color", false)
	v.SetDefault("display.time_format_24h", d.Display.TimeFormat24h)
	v.SetDefault("display.max_authors", d.Display.MaxAuthors)
	v.SetDefault("display.max_files", d.Display.MaxFiles)
	v.SetDefault("display.sparkline_width", d.Display.SparklineWidth)
	v.SetDefault("display.rolling_window", d.Display.RollingWindow)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks the raw settings and fills the derived fields
func (c *Config) Validate() error {
	switch c.Display.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q (must be table, json or yaml)", ErrInvalidFormat, c.Display.Format)
	}

	if c.Display.MaxAuthors < 0 || c.Display.MaxFiles < 0 || c.Display.RollingWindow < 0 {
		return ErrInvalidLimit
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	policy, err := gitlog.ParsePolicy(c.Log.ErrorPolicy)
	if err != nil {
		return err
	}
	c.Policy = policy

	if c.Log.DateLayout == "" {
		c.Log.DateLayout = gitlog.DefaultDateLayout
	}

	tz, err := loadTimezone(c.Display.Timezone)
	if err != nil {
		return err
	}
	c.Timezone = tz

	if c.Since, err = parseDay(c.Filter.Since, tz, false); err != nil {
		return err
	}
	if c.Until, err = parseDay(c.Filter.Until, tz, true); err != nil {
		return err
	}

	aliases, err := aliasMap(c.Authors.Aliases)
	if err != nil {
		return err
	}
	c.Aliases = aliases

	return nil
}

func aliasMap(entries []AliasConfig) (map[string]string, error) {
	aliases := make(map[string]string, len(entries))
	for i, e := range entries {
		alias, primary := strings.TrimSpace(e.Alias), strings.TrimSpace(e.Primary)
		if alias == "" || primary == "" {
			return nil, fmt.Errorf("%w: entry %d needs both alias and primary", ErrInvalidAlias, i+1)
		}
		aliases[alias] = primary
	}
	return aliases, nil
}

func loadTimezone(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, name, err)
	}
	return tz, nil
}

// parseDay parses YYYY-MM-DD; endOfDay moves the result to the last nanosecond
func parseDay(value string, tz *time.Location, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
