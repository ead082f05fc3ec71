package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// GlobalFileName is looked up in the working directory first, then /etc.
	GlobalFileName = "sitegen.toml"
	// DomainSettingsFileName lives at the root of a domain's source tree.
	DomainSettingsFileName = "__settings__.toml"

	etcConfigPath = "/etc/sitegen.toml"
)

// ErrSrcRootRequired indicates no source root was supplied by CLI or config.
var ErrSrcRootRequired = errors.New("sitegen config: src_root not set via CLI or config")

// ErrDstRootRequired indicates no destination root was supplied by CLI or config.
var ErrDstRootRequired = errors.New("sitegen config: dst_root not set via CLI or config")

// Config is the effective, precedence-resolved configuration handed to the
// build pipeline: CLI flags beat the per-domain settings file, which beats the
// global file, which beats the defaults. The Markdown converter itself takes
// no configuration and behaves identically regardless of these values.
type Config struct {
	SiteTitle  string
	BaseURL    string
	CSSHref    string
	DateFormat string
	SrcRoot    string
	DstRoot    string
	Workers    int
	Logging    LoggingConfig
}

// LoggingConfig selects the go-logger provider behaviour.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		SiteTitle:  "Site",
		BaseURL:    "/",
		CSSHref:    "/style.css",
		DateFormat: "2006-01-02",
		Workers:    runtime.NumCPU(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Layer mirrors one settings source (a TOML file or the CLI flag set).
// Pointer fields distinguish "absent" from explicit zero values so later
// layers only override what they actually set.
type Layer struct {
	SiteTitle  *string `toml:"site_title"`
	BaseURL    *string `toml:"base_url"`
	CSSHref    *string `toml:"css_href"`
	DateFormat *string `toml:"date_format"`
	SrcRoot    *string `toml:"src_root"`
	DstRoot    *string `toml:"dst_root"`
	Workers    *int    `toml:"workers"`
	LogLevel   *string `toml:"log_level"`
	LogFormat  *string `toml:"log_format"`
}

// LoadFile decodes one TOML settings file into a Layer.
func LoadFile(path string) (Layer, error) {
	var layer Layer
	if _, err := toml.DecodeFile(path, &layer); err != nil {
		return Layer{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return layer, nil
}

// FindGlobal loads the global settings file, preferring the working directory
// over /etc. A missing file is not an error; it yields an empty layer.
func FindGlobal() (Layer, error) {
	for _, path := range []string{GlobalFileName, etcConfigPath} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return Layer{}, nil
}

// LoadDomainSettings loads the per-domain settings file from the domain's
// source root. A missing file yields an empty layer.
func LoadDomainSettings(srcRoot, domain string) (Layer, error) {
	if strings.TrimSpace(srcRoot) == "" || strings.TrimSpace(domain) == "" {
		return Layer{}, nil
	}
	path := filepath.Join(srcRoot, domain, DomainSettingsFileName)
	if _, err := os.Stat(path); err != nil {
		return Layer{}, nil
	}
	return LoadFile(path)
}

// Resolve folds the supplied layers over the defaults, lowest precedence
// first. Callers pass (global, domain, cli) in that order.
func Resolve(layers ...Layer) Config {
	cfg := Default()
	for _, layer := range layers {
		apply(&cfg, layer)
	}
	return cfg
}

func apply(cfg *Config, layer Layer) {
	if layer.SiteTitle != nil {
		cfg.SiteTitle = *layer.SiteTitle
	}
	if layer.BaseURL != nil {
		cfg.BaseURL = *layer.BaseURL
	}
	if layer.CSSHref != nil {
		cfg.CSSHref = *layer.CSSHref
	}
	if layer.DateFormat != nil {
		cfg.DateFormat = *layer.DateFormat
	}
	if layer.SrcRoot != nil {
		cfg.SrcRoot = *layer.SrcRoot
	}
	if layer.DstRoot != nil {
		cfg.DstRoot = *layer.DstRoot
	}
	if layer.Workers != nil {
		cfg.Workers = *layer.Workers
	}
	if layer.LogLevel != nil {
		cfg.Logging.Level = *layer.LogLevel
	}
	if layer.LogFormat != nil {
		cfg.Logging.Format = *layer.LogFormat
	}
}

// ValidateBuild checks the invariants a build run depends on.
func (c Config) ValidateBuild() error {
	if strings.TrimSpace(c.SrcRoot) == "" {
		return ErrSrcRootRequired
	}
	if strings.TrimSpace(c.DstRoot) == "" {
		return ErrDstRootRequired
	}
	return c.validateCommon()
}

// ValidateClean checks the invariants a clean run depends on.
func (c Config) ValidateClean() error {
	if strings.TrimSpace(c.DstRoot) == "" {
		return ErrDstRootRequired
	}
	return c.validateCommon()
}

func (c Config) validateCommon() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SiteTitle, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.DateFormat, validation.Required),
		validation.Field(&c.Workers, validation.Min(1)),
	)
}
