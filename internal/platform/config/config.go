// Package config loads the dashboard settings with koanf and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

const (
	// DefaultServerPort matches the port the dashboard has always served on.
	DefaultServerPort     = 8501
	DefaultMaxRequestSize = 1 << 20

	// DefaultDatabasePath and DefaultImagesDir are relative to the working
	// directory.
	DefaultDatabasePath         = "./data/vivino.db"
	DefaultDatabaseMaxOpenConns = 4
	DefaultImagesDir            = "./output"

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Config is everything the dashboard reads at startup.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	Assets    AssetsConfig    `koanf:"assets"    validate:"required"`
	Reports   ReportsConfig   `koanf:"reports"   validate:"required"`
}

// AppConfig names the running build.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig tunes the HTTP listener and per-request deadlines.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms,ltefield=WriteTimeout"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
	HealthTimeout   time.Duration `koanf:"health_timeout"   validate:"required,min=10ms"`
}

// LogConfig selects the console log level and format.
type LogConfig struct {
	Level        string        `koanf:"level"         validate:"required,oneof=trace debug info warn error"`
	Format       string        `koanf:"format"        validate:"required,oneof=json text pretty"`
	File         LogFileConfig `koanf:"file"`
	RedactFields []string      `koanf:"redact_fields" validate:"dive,required"`
}

// LogFileConfig adds a lumberjack-rotated JSON file next to the console.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig points the OTLP exporters at a collector.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	Insecure     bool    `koanf:"insecure"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// DatabaseConfig locates the read-only wine dataset.
type DatabaseConfig struct {
	Path            string        `koanf:"path"              validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"required,min=1,max=64"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"min=0"`
}

// AssetsConfig locates static report assets.
type AssetsConfig struct {
	ImagesDir string `koanf:"images_dir" validate:"required"`
}

// ReportsConfig holds the fixed identifiers and thresholds used by the reports.
type ReportsConfig struct {
	TopGrapeIDs          []int64  `koanf:"top_grape_ids"           validate:"required,min=1,unique,dive,min=1"`
	FeaturedGrapeID      int64    `koanf:"featured_grape_id"       validate:"required,min=1"`
	TasteKeywords        []string `koanf:"taste_keywords"          validate:"required,min=1,unique,dive,required"`
	TasteKeywordMinCount int      `koanf:"taste_keyword_min_count" validate:"min=0"`
	TasteKeywordType     string   `koanf:"taste_keyword_type"      validate:"required"`
	GrapeRankingMinCount int      `koanf:"grape_ranking_min_count" validate:"min=0"`
	GrapeRankingLimit    int      `koanf:"grape_ranking_limit"     validate:"required,min=1,max=100"`
	HighlightRowLimit    int      `koanf:"highlight_row_limit"     validate:"required,min=1,max=1000"`
}

// Catalog converts the reports section into the domain catalog.
func (r ReportsConfig) Catalog() domain.Catalog {
	return domain.Catalog{
		TopGrapeIDs:          slices.Clone(r.TopGrapeIDs),
		FeaturedGrapeID:      r.FeaturedGrapeID,
		TasteKeywords:        slices.Clone(r.TasteKeywords),
		TasteKeywordMinCount: r.TasteKeywordMinCount,
		TasteKeywordType:     r.TasteKeywordType,
		GrapeRankingMinCount: r.GrapeRankingMinCount,
		GrapeRankingLimit:    r.GrapeRankingLimit,
		HighlightRowLimit:    r.HighlightRowLimit,
	}
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":        "wine-dashboard",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "30s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.health_timeout":   "2s",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.insecure":      true,
		"telemetry.service_name":  "wine-dashboard",
		"telemetry.sampling_rate": 1.0,

		"database.path":              DefaultDatabasePath,
		"database.max_open_conns":    DefaultDatabaseMaxOpenConns,
		"database.conn_max_lifetime": "0s",

		"assets.images_dir": DefaultImagesDir,

		"reports.top_grape_ids":           slices.Clone(domain.DefaultTopGrapeIDs),
		"reports.featured_grape_id":       domain.DefaultFeaturedGrapeID,
		"reports.taste_keywords":          slices.Clone(domain.DefaultTasteKeywords),
		"reports.taste_keyword_min_count": domain.DefaultTasteKeywordMinCount,
		"reports.taste_keyword_type":      domain.DefaultTasteKeywordType,
		"reports.grape_ranking_min_count": domain.DefaultGrapeRankingMinCount,
		"reports.grape_ranking_limit":     domain.DefaultGrapeRankingLimit,
		"reports.highlight_row_limit":     domain.DefaultHighlightRowLimit,
	}
}

// Load reads configs/base.yaml and configs/<profile>.yaml.
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom layers, lowest first: defaults, <dir>/base.yaml,
// <dir>/<profile>.yaml and APP_* environment variables. Missing files are
// skipped.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	files := []struct{ what, path string }{
		{"base config", filepath.Join(dir, "base.yaml")},
	}
	if profile != "" {
		files = append(files, struct{ what, path string }{
			fmt.Sprintf("profile config %q", profile), filepath.Join(dir, profile+".yaml"),
		})
	}

	for _, f := range files {
		if err := loadYAML(k, f.path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", f.what, err)
		}
	}

	// Keys such as database.max_open_conns contain underscores, so variables
	// are resolved against the keys already loaded.
	known := k.Keys()
	if err := k.Load(env.Provider("APP_", ".", func(v string) string { return envKey(known, v) }), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_DATABASE_MAX_OPEN_CONNS to database.max_open_conns.
// Variables matching no known key become dotted paths.
func envKey(known []string, name string) string {
	flat := strings.ToLower(strings.TrimPrefix(name, "APP_"))

	if i := slices.IndexFunc(known, func(k string) bool { return strings.ReplaceAll(k, ".", "_") == flat }); i >= 0 {
		return known[i]
	}

	return strings.ReplaceAll(flat, "_", ".")
}

func loadYAML(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
