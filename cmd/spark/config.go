package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tinytelemetry/spark/internal/model"
)

var validScreens = map[string]bool{"map": true, "discover": true, "sparks": true, "profile": true}

// appConfig holds everything the CLI and TUI can be tuned with.
type appConfig struct {
	StartScreen    string        `mapstructure:"start-screen"`
	DataDir        string        `mapstructure:"data-dir"`
	PxPerColumn    float64       `mapstructure:"px-per-column"`
	PxPerRow       float64       `mapstructure:"px-per-row"`
	SwipeThreshold float64       `mapstructure:"swipe-threshold"`
	RotationPerPx  float64       `mapstructure:"rotation-per-px"`
	FadeDistance   float64       `mapstructure:"fade-distance"`
	ClampOpacity   bool          `mapstructure:"clamp-opacity"`
	SettleDelay    time.Duration `mapstructure:"settle-delay"`
	RearmDelay     time.Duration `mapstructure:"rearm-delay"`
	NotifyDuration time.Duration `mapstructure:"notify-duration"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`
	LogFile        string        `mapstructure:"log-file"`
	Debug          bool          `mapstructure:"debug"`

	ConfigPath string `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SPARK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("start-screen", model.DefaultStartScreen)
	v.SetDefault("data-dir", "")
	v.SetDefault("px-per-column", model.DefaultPxPerColumn)
	v.SetDefault("px-per-row", model.DefaultPxPerRow)
	v.SetDefault("swipe-threshold", model.DefaultSwipeThreshold)
	v.SetDefault("rotation-per-px", model.DefaultRotationPerPx)
	v.SetDefault("fade-distance", model.DefaultFadeDistance)
	v.SetDefault("clamp-opacity", true)
	v.SetDefault("settle-delay", model.DefaultSettleDelay)
	v.SetDefault("rearm-delay", model.DefaultRearmDelay)
	v.SetDefault("notify-duration", model.DefaultNotifyDuration)
	v.SetDefault("query-timeout", model.DefaultQueryTimeout)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "spark", "spark.log"))
	v.SetDefault("debug", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "spark", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if !validScreens[cfg.StartScreen] {
		return cfg, fmt.Errorf("invalid start-screen: %q", cfg.StartScreen)
	}
	if cfg.PxPerColumn <= 0 || cfg.PxPerRow <= 0 {
		return cfg, fmt.Errorf("invalid pixel scale: %gx%g", cfg.PxPerColumn, cfg.PxPerRow)
	}
	if cfg.SwipeThreshold <= 0 {
		return cfg, fmt.Errorf("invalid swipe-threshold: %g", cfg.SwipeThreshold)
	}
	if cfg.FadeDistance <= 0 {
		return cfg, fmt.Errorf("invalid fade-distance: %g", cfg.FadeDistance)
	}

	// Expand ~ in paths
	for _, p := range []*string{&cfg.DataDir, &cfg.LogFile} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}

	return cfg, nil
}
