// Package config loads band-recaps settings from an optional config file,
// a .env file and RECAPS_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pfrederiksen/band-recaps/internal/export"
	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
	"github.com/pfrederiksen/band-recaps/internal/recap"
	"github.com/pfrederiksen/band-recaps/internal/scraper"
	"github.com/pfrederiksen/band-recaps/internal/storage"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RECAPS_DATA_DIR.
const EnvPrefix = "RECAPS"

// Default season crawled when none is configured.
var DefaultSeason = orgscores.Season{Name: "UMEA 2025", GUID: "ff7a5f4b-b7dc-4cbc-ad0b-1295fdd971a8"}

type Config struct {
	DataDir  string             `mapstructure:"data_dir"`
	LogLevel string             `mapstructure:"log_level"`
	Format   string             `mapstructure:"format"`
	Schedule string             `mapstructure:"schedule"`
	Seasons  []orgscores.Season `mapstructure:"seasons"`
	// Schools extends the built-in school to city/state table.
	Schools map[string]string `mapstructure:"schools"`

	Recap  RecapConfig  `mapstructure:"recap"`
	API    APIConfig    `mapstructure:"api"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Notify NotifyConfig `mapstructure:"notify"`
}

type RecapConfig struct {
	TableIndex    int  `mapstructure:"table_index"`
	DataRowOffset int  `mapstructure:"data_row_offset"`
	Lenient       bool `mapstructure:"lenient"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Delay   time.Duration `mapstructure:"delay"`
	Jitter  time.Duration `mapstructure:"jitter"`
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Retries   int           `mapstructure:"retries"`
}

type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
	DryRun  bool `mapstructure:"dry_run"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", storage.DefaultDataDir)
	v.SetDefault("log_level", "info")
	v.SetDefault("format", string(export.FormatCSV))
	v.SetDefault("schedule", "0 6 * * *")
	v.SetDefault("seasons", []map[string]interface{}{
		{"name": DefaultSeason.Name, "guid": DefaultSeason.GUID},
	})
	v.SetDefault("schools", map[string]string{})

	v.SetDefault("recap.table_index", recap.DefaultTableIndex)
	v.SetDefault("recap.data_row_offset", recap.DataRowOffset)
	v.SetDefault("recap.lenient", false)

	v.SetDefault("api.base_url", orgscores.BaseURL)
	v.SetDefault("api.delay", "0s")
	v.SetDefault("api.jitter", orgscores.DefaultJitter.String())

	v.SetDefault("http.timeout", scraper.Timeout.String())
	v.SetDefault("http.user_agent", scraper.UserAgent)
	v.SetDefault("http.retries", scraper.DefaultRetries)

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.dry_run", false)
}

// New returns a Viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads .env from the working directory if there is one. Variables
// already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	return nil
}

// Load reads .env, then path (if not empty), then the environment.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return LoadFrom(New(), path)
}

// LoadFrom reads path into v and decodes the result. Flags bound to v take
// precedence over the file.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		logger.Debug("Loaded config file", logger.Fields{"path": v.ConfigFileUsed()})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	for i, s := range c.Seasons {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("seasons[%d]: name is required", i)
		}
		if _, err := uuid.Parse(s.GUID); err != nil {
			return fmt.Errorf("seasons[%d] (%s): invalid guid %q: %w", i, s.Name, s.GUID, err)
		}
	}
	if c.Recap.TableIndex < 0 {
		return fmt.Errorf("recap.table_index must not be negative, got %d", c.Recap.TableIndex)
	}
	if c.Recap.DataRowOffset < 0 {
		return fmt.Errorf("recap.data_row_offset must not be negative, got %d", c.Recap.DataRowOffset)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	return nil
}

// ExportFormat returns the validated output format.
func (c *Config) ExportFormat() export.Format {
	f, _ := export.ParseFormat(c.Format)
	return f
}

// Resolver returns the built-in schools extended by c.Schools.
func (c *Config) Resolver() *recap.StaticResolver {
	return recap.NewStaticResolver(recap.DefaultSchools).With(c.Schools)
}

// RecapOptions builds loader options, recording mismatches to rec.
func (c *Config) RecapOptions(rec recap.MismatchRecorder) recap.Options {
	opts := recap.DefaultOptions()
	opts.TableIndex = c.Recap.TableIndex
	opts.DataRowOffset = c.Recap.DataRowOffset
	opts.Lenient = c.Recap.Lenient
	opts.Resolver = c.Resolver()
	opts.Mismatches = rec
	return opts
}

// OrgscoresConfig builds the API client configuration.
func (c *Config) OrgscoresConfig() orgscores.Config {
	return orgscores.Config{
		BaseURL: c.API.BaseURL,
		Delay:   c.API.Delay,
		Jitter:  c.API.Jitter,
	}
}

// NewScraper builds the HTTP fetcher.
func (c *Config) NewScraper() *scraper.Scraper {
	return scraper.NewWithConfig(c.HTTP.Timeout, c.HTTP.UserAgent, c.HTTP.Retries)
}
