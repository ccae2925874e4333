// Package config loads dripsim settings from defaults, an optional
// dripsim.yaml and DRIPSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"dripsim/internal/application/journey"
	"dripsim/internal/domain"
)

const (
	DefaultProgram         = "pm"
	DefaultTemplateTimeout = 3 * time.Second
	envPrefix              = "DRIPSIM"
)

// Config holds every setting the binaries read
type Config struct {
	Catalog         string
	Templates       string
	TemplateURL     string
	CacheDir        string
	ExportDB        string
	Program         string
	Speed           int
	Mode            string
	BaseInterval    time.Duration
	TimelineCap     int
	TemplateTimeout time.Duration
	Relaxed         bool
	Seed            uint64
	LogFile         string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("catalog", "")
	v.SetDefault("templates", "")
	v.SetDefault("template_url", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("export_db", "")
	v.SetDefault("program", DefaultProgram)
	v.SetDefault("speed", int(domain.DefaultSpeed))
	v.SetDefault("mode", string(domain.DefaultMode))
	v.SetDefault("base_interval", domain.DefaultBaseInterval)
	v.SetDefault("timeline_cap", domain.DefaultTimelineCap)
	v.SetDefault("template_timeout", DefaultTemplateTimeout)
	v.SetDefault("relaxed", false)
	v.SetDefault("seed", 0)
	v.SetDefault("log_file", "")

	v.SetConfigName("dripsim") // .yaml is implicit
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. A missing config file is not an error.
func Load() (Config, error) {
	v := newViper()
	if override := os.Getenv("DRIPSIM_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Catalog:         v.GetString("catalog"),
		Templates:       v.GetString("templates"),
		TemplateURL:     v.GetString("template_url"),
		CacheDir:        v.GetString("cache_dir"),
		ExportDB:        v.GetString("export_db"),
		Program:         v.GetString("program"),
		Speed:           v.GetInt("speed"),
		Mode:            v.GetString("mode"),
		BaseInterval:    v.GetDuration("base_interval"),
		TimelineCap:     v.GetInt("timeline_cap"),
		TemplateTimeout: v.GetDuration("template_timeout"),
		Relaxed:         v.GetBool("relaxed"),
		Seed:            v.GetUint64("seed"),
		LogFile:         v.GetString("log_file"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot use
func (c Config) Validate() error {
	if _, err := domain.ParseSpeed(c.Speed); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := domain.ParseBehaviorMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.BaseInterval <= 0 {
		return fmt.Errorf("config: base_interval must be positive, got %s", c.BaseInterval)
	}
	if c.Program == "" {
		return fmt.Errorf("config: program is required")
	}
	return nil
}

// Journey returns the engine tunables
func (c Config) Journey() journey.Config {
	mode, _ := domain.ParseBehaviorMode(c.Mode)
	return journey.Config{
		BaseInterval: c.BaseInterval,
		Speed:        domain.Speed(c.Speed),
		Mode:         mode,
		TimelineCap:  c.TimelineCap,
		Relaxed:      c.Relaxed,
		Seed:         c.Seed,
	}
}
