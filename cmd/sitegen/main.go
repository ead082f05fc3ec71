// Command sitegen converts per-domain Markdown source trees into static HTML
// sites. Settings resolve with CLI flags taking precedence over the domain's
// __settings__.toml, then the global sitegen.toml, then built-in defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitegen/internal/commands"
	"github.com/goliatone/go-sitegen/internal/commands/sitecmd"
	"github.com/goliatone/go-sitegen/internal/config"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/logging/gologger"
	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitInterrupted = 130
)

var cli struct {
	Config    string `help:"Explicit global settings file; skips sitegen.toml discovery." type:"path"`
	Verbose   bool   `short:"v" help:"Force debug logging."`
	LogFormat string `help:"Log output format." enum:"console,json,pretty," default:""`

	Build BuildCmd `cmd:"" help:"Generate the static site for one domain."`
	Clean CleanCmd `cmd:"" help:"Remove generated artifacts for one domain."`
}

// settingsFlags mirror config.Layer: nil means "flag not given", so file
// settings survive unless explicitly overridden.
type settingsFlags struct {
	SrcRoot    *string `name:"src-root" help:"Root directory containing per-domain source trees." type:"path"`
	DstRoot    *string `name:"dst-root" help:"Root directory receiving generated sites." type:"path"`
	SiteTitle  *string `name:"site-title" help:"Site title used in the header and index."`
	BaseURL    *string `name:"base-url" help:"Base URL for canonical links."`
	CSSHref    *string `name:"css-href" help:"Stylesheet href injected into every page."`
	DateFormat *string `name:"date-format" help:"Go reference layout for dates."`
	Workers    *int    `help:"Page conversion concurrency."`
}

func (f settingsFlags) layer() config.Layer {
	return config.Layer{
		SrcRoot:    f.SrcRoot,
		DstRoot:    f.DstRoot,
		SiteTitle:  f.SiteTitle,
		BaseURL:    f.BaseURL,
		CSSHref:    f.CSSHref,
		DateFormat: f.DateFormat,
		Workers:    f.Workers,
	}
}

// BuildCmd generates the site for one domain.
type BuildCmd struct {
	Domain string `arg:"" help:"Domain directory name under the source root."`
	settingsFlags
	Drafts     bool `help:"Include pages marked draft in front matter."`
	Force      bool `help:"Rebuild pages even when their checksum is unchanged."`
	CleanFirst bool `name:"clean-first" help:"Remove previous artifacts before building."`
	DryRun     bool `name:"dry-run" help:"Log actions without writing any files."`
}

// CleanCmd removes the generated artifacts for one domain.
type CleanCmd struct {
	Domain string `arg:"" help:"Domain directory name under the destination root."`
	settingsFlags
	DryRun bool `name:"dry-run" help:"Log removals without deleting any files."`
}

type runEnv struct {
	ctx context.Context
}

func (c *BuildCmd) Run(env *runEnv) error {
	cfg, err := resolveConfig(c.Domain, c.layer())
	if err != nil {
		return err
	}
	if err := cfg.ValidateBuild(); err != nil {
		return wrapConfigError(err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return wrapConfigError(err)
	}
	logResolvedConfig(provider, c.Domain, cfg)

	svc, err := newService(cfg, c.Domain, c.Drafts, c.DryRun, provider)
	if err != nil {
		return err
	}

	handler := sitecmd.NewBuildSiteHandler(
		svc,
		commands.CommandLogger(provider, "site"),
		commands.WithTimeout[sitecmd.BuildSiteCommand](0),
	)

	return handler.Execute(env.ctx, sitecmd.BuildSiteCommand{
		Domain:     c.Domain,
		Force:      c.Force,
		CleanFirst: c.CleanFirst,
		ResultCallback: func(e sitecmd.BuildEnvelope) {
			printBuildSummary(c.Domain, e.Result)
		},
	})
}

func (c *CleanCmd) Run(env *runEnv) error {
	cfg, err := resolveConfig(c.Domain, c.layer())
	if err != nil {
		return err
	}
	if err := cfg.ValidateClean(); err != nil {
		return wrapConfigError(err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return wrapConfigError(err)
	}
	logResolvedConfig(provider, c.Domain, cfg)

	svc, err := newService(cfg, c.Domain, false, c.DryRun, provider)
	if err != nil {
		return err
	}

	handler := sitecmd.NewCleanSiteHandler(
		svc,
		commands.CommandLogger(provider, "site"),
		commands.WithTimeout[sitecmd.CleanSiteCommand](0),
	)

	return handler.Execute(env.ctx, sitecmd.CleanSiteCommand{
		Domain: c.Domain,
		ResultCallback: func(e sitecmd.CleanEnvelope) {
			printCleanSummary(c.Domain, e.Result)
		},
	})
}

// resolveConfig folds the settings sources in precedence order: defaults,
// then the global file, then the domain's __settings__.toml, then CLI flags.
// The source root must be known before the domain layer can be located, so
// global and CLI layers resolve first.
func resolveConfig(domain string, flags config.Layer) (config.Config, error) {
	global, err := loadGlobalLayer()
	if err != nil {
		return config.Config{}, wrapConfigError(err)
	}

	partial := config.Resolve(global, flags)
	domainLayer, err := config.LoadDomainSettings(partial.SrcRoot, domain)
	if err != nil {
		return config.Config{}, wrapConfigError(err)
	}

	return config.Resolve(global, domainLayer, flags), nil
}

func loadGlobalLayer() (config.Layer, error) {
	if cli.Config != "" {
		return config.LoadFile(cli.Config)
	}
	return config.FindGlobal()
}

func newProvider(cfg config.Config) (interfaces.LoggerProvider, error) {
	level := cfg.Logging.Level
	if cli.Verbose {
		level = "debug"
	}
	format := cfg.Logging.Format
	if cli.LogFormat != "" {
		format = cli.LogFormat
	}
	return gologger.NewProvider(gologger.Config{
		Level:     level,
		Format:    format,
		AddSource: cfg.Logging.AddSource,
	})
}

func logResolvedConfig(provider interfaces.LoggerProvider, domain string, cfg config.Config) {
	logging.ConfigLogger(provider).Debug("config.resolved",
		"domain", domain,
		"src_root", cfg.SrcRoot,
		"dst_root", cfg.DstRoot,
		"site_title", cfg.SiteTitle,
		"base_url", cfg.BaseURL,
		"workers", cfg.Workers,
	)
}

func newService(cfg config.Config, domain string, drafts, dryRun bool, provider interfaces.LoggerProvider) (site.Service, error) {
	return site.NewService(site.Config{
		Domain:        domain,
		SrcRoot:       cfg.SrcRoot,
		DstRoot:       cfg.DstRoot,
		SiteTitle:     cfg.SiteTitle,
		BaseURL:       cfg.BaseURL,
		CSSHref:       cfg.CSSHref,
		DateFormat:    cfg.DateFormat,
		Workers:       cfg.Workers,
		IncludeDrafts: drafts,
		DryRun:        dryRun,
	}, site.Dependencies{
		Converter: markdown.New(),
		Logger:    provider,
	})
}

func printBuildSummary(domain string, result *site.BuildResult) {
	if result == nil {
		return
	}
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("%s: built %d page(s), skipped %d, in %s%s\n",
		domain, result.PagesBuilt, result.PagesSkipped, result.Duration.Round(time.Millisecond), mode)
}

func printCleanSummary(domain string, result *site.CleanResult) {
	if result == nil {
		return
	}
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("%s: removed %d artifact(s)%s\n", domain, len(result.Removed), mode)
}

func wrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
		WithTextCode("CONFIG_INVALID")
}

// exitCode maps failures onto the process exit codes callers script against:
// 2 for configuration or missing-input problems, 130 for interruption, 1 for
// everything else.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	if goerrors.IsCategory(err, goerrors.CategoryValidation) ||
		goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return exitConfig
	}
	return exitFailure
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser, err := kong.New(&cli,
		kong.Name("sitegen"),
		kong.Description("Static site generator for per-domain Markdown trees."),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sitegen:", err)
		return exitFailure
	}

	parsed, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sitegen:", err)
		return exitConfig
	}

	if err := parsed.Run(&runEnv{ctx: ctx}); err != nil {
		fmt.Fprintln(os.Stderr, "sitegen:", err)
		return exitCode(err)
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:]))
}
