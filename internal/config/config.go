package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application settings
type Config struct {
	CurrencySymbol string   `mapstructure:"currency_symbol"`
	DatabasePath   string   `mapstructure:"database_path"`
	WeekStart      string   `mapstructure:"week_start"` // monday or sunday
	Pomodoro       Pomodoro `mapstructure:"pomodoro"`
	Idle           Idle     `mapstructure:"idle"`
}

// Pomodoro holds the work/break cycling settings
type Pomodoro struct {
	Enabled         bool `mapstructure:"enabled"`
	WorkMinutes     int  `mapstructure:"work_minutes"`
	BreakMinutes    int  `mapstructure:"break_minutes"`
	BigBreakEvery   int  `mapstructure:"big_break_every"`
	BigBreakMinutes int  `mapstructure:"big_break_minutes"`
}

// Idle holds the idle-detection settings
type Idle struct {
	Enabled          bool `mapstructure:"enabled"`
	ThresholdMinutes int  `mapstructure:"threshold_minutes"`
}

// Load reads the config file from ~/.config/furt/config.toml, creating the
// directory on first run. Every key has a default so a missing file is fine.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "furt")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("FURT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, homeDir)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error, anything else is
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("database_path", filepath.Join(homeDir, ".furt", "furt.db"))
	v.SetDefault("week_start", "monday")
	v.SetDefault("pomodoro.enabled", false)
	v.SetDefault("pomodoro.work_minutes", 25)
	v.SetDefault("pomodoro.break_minutes", 5)
	v.SetDefault("pomodoro.big_break_every", 4)
	v.SetDefault("pomodoro.big_break_minutes", 25)
	v.SetDefault("idle.enabled", true)
	v.SetDefault("idle.threshold_minutes", 6)
}

// Currency returns the configured currency marker as a rune, defaulting to '$'.
func (c *Config) Currency() rune {
	for _, r := range c.CurrencySymbol {
		return r
	}
	return '$'
}

// WeekStartDay maps the week_start setting to a weekday. Anything that is
// not "sunday" means Monday.
func (c *Config) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.WeekStart, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

// AutosavePath returns where the in-flight session snapshot lives.
func AutosavePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".furt", "autosave.txt"), nil
}
