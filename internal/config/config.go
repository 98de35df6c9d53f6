package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/bao/internal/game"
	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/match"
	"github.com/mitchelldurbincs/bao/internal/player"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Players PlayersConfig `mapstructure:"players"`
	Match   MatchConfig   `mapstructure:"match"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
	Events  EventsConfig  `mapstructure:"events"`
}

// GameConfig holds the rule variant
type GameConfig struct {
	Direction string `mapstructure:"direction"`
	Mode      string `mapstructure:"mode"`
	// MaxSowSteps caps single-stone drops per move; 0 means the engine
	// default and a negative value disables the cap.
	MaxSowSteps int `mapstructure:"max_sow_steps"`
}

// PlayersConfig holds both seats and the settings shared by random agents
type PlayersConfig struct {
	One    SeatConfig   `mapstructure:"one"`
	Two    SeatConfig   `mapstructure:"two"`
	Random RandomConfig `mapstructure:"random"`
}

// SeatConfig describes who sits in one seat
type SeatConfig struct {
	Name  string `mapstructure:"name"`
	Agent string `mapstructure:"agent"`
}

// RandomConfig holds random agent settings
type RandomConfig struct {
	Strategy string `mapstructure:"strategy"`
	Seed     uint64 `mapstructure:"seed"`
}

// MatchConfig holds driver loop settings
type MatchConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	Games       int `mapstructure:"games"`
}

// RenderConfig holds board output settings
type RenderConfig struct {
	Mode  string `mapstructure:"mode"`
	Color bool   `mapstructure:"color"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig controls the event log subscriber
type EventsConfig struct {
	LogEvents bool `mapstructure:"log_events"`
	DevMode   bool `mapstructure:"dev_mode"`
}

// Seats returns both seats in seat order.
func (p PlayersConfig) Seats() [2]SeatConfig {
	return [2]SeatConfig{p.One, p.Two}
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.direction", "ccw")
	v.SetDefault("game.mode", "normal")
	v.SetDefault("game.max_sow_steps", game.DefaultMaxSowSteps)

	// Player defaults
	v.SetDefault("players.one.name", "Player 1")
	v.SetDefault("players.one.agent", "human")
	v.SetDefault("players.two.name", "Player 2")
	v.SetDefault("players.two.agent", "random")
	v.SetDefault("players.random.strategy", "legal")
	v.SetDefault("players.random.seed", 0)

	// Match defaults
	v.SetDefault("match.max_attempts", 0)
	v.SetDefault("match.games", 1)

	// Render defaults
	v.SetDefault("render.mode", "human")
	v.SetDefault("render.color", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Event defaults
	v.SetDefault("events.log_events", false)
	v.SetDefault("events.dev_mode", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/bao")
	}

	v.SetEnvPrefix("BAO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "":
			// A missing explicit file falls back to defaults, a broken one does not.
			if !isMissingFile(err) {
				return fmt.Errorf("error reading config file: %w", err)
			}
		case !errors.As(err, &notFound):
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	// Keep watching and reporting the base file after the merge.
	if base := v.ConfigFileUsed(); base != "" {
		defer v.SetConfigFile(base)
	}
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
// Set overrides key at runtime. A value that fails to decode or validate is
// rolled back and the current config stays in effect.
func Set(key string, value any) error {
	prev := v.Get(key)
	v.Set(key, value)

	next, err := decode()
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	cfg = next
	return nil
}

// decode unmarshals and validates the current viper state into a fresh Config.
func decode() (*Config, error) {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// BindFlags binds command line flags to config keys (flag name -> key) so a
// flag the user set wins over file and environment values.
func BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q for key %s", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	next, err := decode()
	if err != nil {
		return err
	}
	cfg = next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange runs after
// the struct has been refreshed; an invalid edit is reported and not applied.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if err := Validate(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		cfg = next
		if onChange != nil {
			onChange(cfg, nil)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := core.ParseDirection(c.Game.Direction); err != nil {
		return fmt.Errorf("game.direction: %w", err)
	}
	if _, err := core.ParseMode(c.Game.Mode); err != nil {
		return fmt.Errorf("game.mode: %w", err)
	}

	for i, seat := range c.Players.Seats() {
		key := [2]string{"one", "two"}[i]
		if _, err := game.ParseAgentKind(seat.Agent); err != nil {
			return fmt.Errorf("players.%s.agent: %w", key, err)
		}
	}
	if _, err := player.ParseStrategy(c.Players.Random.Strategy); err != nil {
		return fmt.Errorf("players.random.strategy: %w", err)
	}

	if c.Match.MaxAttempts < 0 {
		return fmt.Errorf("match.max_attempts must be non-negative")
	}
	if c.Match.Games < 1 {
		return fmt.Errorf("match.games must be at least 1")
	}

	if _, err := match.ParseRenderMode(c.Render.Mode); err != nil {
		return fmt.Errorf("render.mode: %w", err)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
