// Package config loads pagesnap command settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	pagesnap "github.com/porticus-lab/go-pagesnap"
)

// Config holds all command configuration.
type Config struct {
	Source SourceConfig
	Output OutputConfig
	Chrome ChromeConfig
	Page   PageConfig
	Log    LogConfig
}

// SourceConfig names the page to load.
type SourceConfig struct {
	URL string
}

// OutputConfig controls local copies of the snapshot.
type OutputConfig struct {
	Path string // empty = do not save
}

// ChromeConfig holds browser settings.
type ChromeConfig struct {
	Path         string
	NoSandbox    bool
	AutoDownload bool
	Timeout      time.Duration // 0 disables
}

// PageConfig holds snapshot layout settings.
type PageConfig struct {
	Size            string // a4, a5, letter, legal
	Landscape       bool
	MarginCM        float64
	Scale           float64
	PrintBackground bool
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load reads configuration. Priority (highest to lowest):
//  1. Environment variables with PAGESNAP_ prefix (e.g. PAGESNAP_CHROME_PATH)
//  2. the config file: path if given, else pagesnap.toml in . or $HOME/.config/pagesnap
//  3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pagesnap")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pagesnap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PAGESNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Zero is meaningful for these, so they cannot go through applyDefaults.
	v.SetDefault("chrome.timeout", 30*time.Second)
	v.SetDefault("page.print_background", true)

	cfg := &Config{
		Source: SourceConfig{
			URL: v.GetString("source.url"),
		},
		Output: OutputConfig{
			Path: v.GetString("output.path"),
		},
		Chrome: ChromeConfig{
			Path:         v.GetString("chrome.path"),
			NoSandbox:    v.GetBool("chrome.no_sandbox"),
			AutoDownload: v.GetBool("chrome.auto_download"),
			Timeout:      v.GetDuration("chrome.timeout"),
		},
		Page: PageConfig{
			Size:            v.GetString("page.size"),
			Landscape:       v.GetBool("page.landscape"),
			MarginCM:        v.GetFloat64("page.margin_cm"),
			Scale:           v.GetFloat64("page.scale"),
			PrintBackground: v.GetBool("page.print_background"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.Source.URL == "" {
		cfg.Source.URL = pagesnap.DefaultSourceURL
	}
	if cfg.Page.Size == "" {
		cfg.Page.Size = "a4"
	}
	if cfg.Page.MarginCM == 0 {
		cfg.Page.MarginCM = 1.0
	}
	if cfg.Page.Scale == 0 {
		cfg.Page.Scale = 1.0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	cfg.Page.Size = strings.ToLower(cfg.Page.Size)
}

func (c *Config) validate() error {
	if _, ok := pagesnap.PageSizeByName[c.Page.Size]; !ok {
		return fmt.Errorf("invalid page.size %q", c.Page.Size)
	}
	if c.Page.Scale < 0.1 || c.Page.Scale > 2 {
		return fmt.Errorf("page.scale must be between 0.1 and 2.0, got %v", c.Page.Scale)
	}
	if c.Page.MarginCM < 0 {
		return fmt.Errorf("page.margin_cm must not be negative, got %v", c.Page.MarginCM)
	}
	if c.Chrome.Timeout < 0 {
		return fmt.Errorf("chrome.timeout must not be negative, got %v", c.Chrome.Timeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	return nil
}
