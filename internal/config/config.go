// Package config loads named link templates and logging settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/pspoerri/viewlink/internal/logging"
	"github.com/pspoerri/viewlink/internal/reproject"
)

// EnvPrefix prefixes environment overrides: VIEWLINK_LOG_LEVEL sets log.level.
const EnvPrefix = "VIEWLINK"

// Config holds all viewlink configuration.
type Config struct {
	Log   logging.Config `mapstructure:"log"`
	Links []Link         `mapstructure:"links"`
}

// Link is a named URL template with the projection its coordinates are sent in.
type Link struct {
	Title       string         `mapstructure:"title"`
	TemplateURL string         `mapstructure:"template_url"`
	Projection  reproject.Spec `mapstructure:"projection"`
}

// Load reads configuration from path, or when path is empty from an optional
// viewlink.{yaml,json,toml} in . or ./configs, then applies environment
// overrides. Dropped links are reported to logger.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := viper.New()

	v.SetDefault("log.level", logging.Default.Level)
	v.SetDefault("log.format", logging.Default.Format)
	v.SetDefault("log.file", logging.Default.File)
	v.SetDefault("log.max_size", logging.Default.MaxSize)
	v.SetDefault("log.max_backups", logging.Default.MaxBackups)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("viewlink")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize(logger)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize drops links without a template and links whose title was already used.
func (c *Config) normalize(logger *slog.Logger) {
	seen := make(map[string]bool, len(c.Links))
	links := c.Links[:0]
	for _, l := range c.Links {
		if strings.TrimSpace(l.TemplateURL) == "" {
			logger.Debug("link without template_url ignored", "title", l.Title)
			continue
		}
		if seen[l.Title] {
			logger.Warn("link with title already added", "title", l.Title)
			continue
		}
		seen[l.Title] = true
		links = append(links, l)
	}
	c.Links = links
}

// Link returns the link with the given title. An empty title selects the
// first configured link.
func (c *Config) Link(title string) (Link, bool) {
	if len(c.Links) == 0 {
		return Link{}, false
	}
	if title == "" {
		return c.Links[0], true
	}
	for _, l := range c.Links {
		if l.Title == title {
			return l, true
		}
	}
	return Link{}, false
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, "log: "+err.Error())
	}
	for i, l := range c.Links {
		if strings.Contains(l.TemplateURL, "{{") && !strings.Contains(l.TemplateURL, "}}") {
			errs = append(errs, fmt.Sprintf("links[%d] %q: unterminated placeholder", i, l.Title))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
