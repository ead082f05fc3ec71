package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/templates"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const templateOverrideName = "__template__.html"

// Service builds and cleans the static site of a single domain.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) (*CleanResult, error)
}

// Config carries the resolved settings for one domain build.
type Config struct {
	Domain        string
	SrcRoot       string
	DstRoot       string
	SiteTitle     string
	BaseURL       string
	CSSHref       string
	DateFormat    string
	Workers       int
	IncludeDrafts bool
	DryRun        bool
}

// Dependencies holds the collaborators the service needs.
type Dependencies struct {
	Converter interfaces.MarkdownConverter
	Logger    interfaces.LoggerProvider
}

// BuildOptions tunes a single Build invocation.
type BuildOptions struct {
	// CleanFirst removes previously generated artifacts before building.
	CleanFirst bool
	// Force rebuilds every page even when its checksum matches the manifest.
	Force bool
}

// BuildResult summarizes one build run.
type BuildResult struct {
	BuildID      string
	PagesBuilt   int
	PagesSkipped int
	Outputs      []string
	Duration     time.Duration
	DryRun       bool
}

// CleanResult lists the artifacts removed from the destination tree.
type CleanResult struct {
	Removed []string
	DryRun  bool
}

type service struct {
	config    Config
	converter interfaces.MarkdownConverter
	logger    interfaces.Logger
}

var _ Service = (*service)(nil)

// NewService validates the configuration and wires a domain build service.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if strings.TrimSpace(cfg.Domain) == "" {
		return nil, wrapValidation(ErrDomainRequired, "site: invalid service config")
	}
	if deps.Converter == nil {
		return nil, wrapValidation(ErrConverterRequired, "site: invalid service config")
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}

	logger := logging.SiteLogger(deps.Logger)
	logger = logging.WithSiteContext(logger, "", cfg.Domain, "")

	return &service{
		config:    cfg,
		converter: deps.Converter,
		logger:    logger,
	}, nil
}

func (s *service) srcDir() string {
	return filepath.Join(s.config.SrcRoot, s.config.Domain)
}

func (s *service) dstDir() string {
	return filepath.Join(s.config.DstRoot, s.config.Domain)
}

// Build converts every publishable Markdown source under the domain source
// tree into a full HTML page, regenerates the domain index, and records
// checksums in the build manifest so unchanged pages can be skipped next run.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := time.Now()

	src := s.srcDir()
	if _, err := os.Stat(src); err != nil {
		return nil, wrapNotFound(
			fmt.Errorf("%w: %s", ErrSourceMissing, src),
			"site: domain source unavailable",
		)
	}

	composer, err := s.loadComposer(src)
	if err != nil {
		return nil, err
	}

	if opts.CleanFirst {
		if _, err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	loader := NewLoader(os.DirFS(src))
	sources, err := loader.Discover(ctx)
	if err != nil {
		return nil, wrapOperation(err, "site: discover sources")
	}

	dst := s.dstDir()
	writer := newArtifactWriter(s.config.DryRun, s.logger)
	if err := writer.EnsureDir(ctx, dst); err != nil {
		return nil, wrapOperation(err, "site: prepare destination")
	}

	previous := loadManifest(filepath.Join(dst, manifestFileName))
	generatedAt := started.UTC()
	buildID := uuid.NewString()
	manifest := newBuildManifest(buildID, generatedAt)

	build := templates.BuildMetadata{
		GeneratedAt: generatedAt.Format(s.timestampLayout()),
		ID:          buildID,
	}

	s.logger.Info("site.build.start",
		"build_id", buildID,
		"sources", len(sources),
		"workers", s.config.Workers,
		"dry_run", s.config.DryRun,
	)

	results := s.publishAll(ctx, publishJob{
		loader:   loader,
		composer: composer,
		writer:   writer,
		previous: previous,
		build:    build,
		force:    opts.Force,
	}, sources)

	var (
		entries  []indexEntry
		outputs  []string
		failures []error
		result   = &BuildResult{BuildID: buildID, DryRun: s.config.DryRun}
	)
	for _, r := range results {
		if r.err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", r.source, r.err))
			continue
		}
		if r.draft {
			result.PagesSkipped++
			continue
		}
		manifest.Pages[r.source] = manifestPage{
			Output:     r.output,
			Title:      r.title,
			Slug:       r.slug,
			Checksum:   r.checksum,
			RenderedAt: r.renderedAt,
		}
		entries = append(entries, indexEntry{Href: r.output, Title: r.title})
		if r.skipped {
			result.PagesSkipped++
			continue
		}
		result.PagesBuilt++
		outputs = append(outputs, r.output)
	}
	if len(failures) > 0 {
		return result, wrapOperation(errors.Join(failures...), "site: build pages")
	}

	indexOut, err := s.publishIndex(ctx, loader, composer, writer, build, entries)
	if err != nil {
		return result, err
	}
	outputs = append(outputs, indexOut)
	result.PagesBuilt++

	if !s.config.DryRun {
		data, err := manifest.encode()
		if err != nil {
			return result, wrapOperation(err, "site: encode manifest")
		}
		if err := writer.WriteFile(ctx, filepath.Join(dst, manifestFileName), data); err != nil {
			return result, wrapOperation(err, "site: write manifest")
		}
	}

	sort.Strings(outputs)
	result.Outputs = outputs
	result.Duration = time.Since(started)

	s.logger.Info("site.build.done",
		"build_id", buildID,
		"built", result.PagesBuilt,
		"skipped", result.PagesSkipped,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes generated HTML pages and the build manifest from the domain
// destination tree. Source files are never touched.
func (s *service) Clean(ctx context.Context) (*CleanResult, error) {
	dst := s.dstDir()
	writer := newArtifactWriter(s.config.DryRun, s.logger)

	var targets []string
	err := filepath.WalkDir(dst, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".html") || name == manifestFileName {
			targets = append(targets, p)
		}
		return nil
	})
	if err != nil {
		return nil, wrapOperation(err, "site: scan destination")
	}

	result := &CleanResult{DryRun: s.config.DryRun}
	for _, target := range targets {
		if err := writer.Remove(ctx, target); err != nil {
			return result, wrapOperation(err, "site: remove artifact")
		}
		result.Removed = append(result.Removed, target)
	}

	s.logger.Info("site.clean.done", "removed", len(result.Removed), "dry_run", result.DryRun)
	return result, nil
}

// loadComposer picks the per-domain __template__.html override when present,
// otherwise the built-in page scaffold.
func (s *service) loadComposer(src string) (*templates.Composer, error) {
	source := ""
	data, err := os.ReadFile(filepath.Join(src, templateOverrideName))
	switch {
	case err == nil:
		source = string(data)
		s.logger.Debug("site.template.override", "path", templateOverrideName)
	case errors.Is(err, fs.ErrNotExist):
		// built-in scaffold
	default:
		return nil, wrapOperation(err, "site: read template override")
	}

	composer, err := templates.NewComposer(source)
	if err != nil {
		return nil, wrapValidation(err, "site: invalid page template")
	}
	return composer, nil
}

func (s *service) timestampLayout() string {
	layout := strings.TrimSpace(s.config.DateFormat)
	if layout == "" {
		layout = "2006-01-02"
	}
	return layout + " 15:04"
}

type publishJob struct {
	loader   *Loader
	composer *templates.Composer
	writer   artifactWriter
	previous *buildManifest
	build    templates.BuildMetadata
	force    bool
}

type pageResult struct {
	source     string
	output     string
	title      string
	slug       string
	checksum   string
	renderedAt time.Time
	skipped    bool
	draft      bool
	err        error
}

// publishAll fans the sources out over a fixed worker pool. Each page is
// independent, so ordering only needs restoring once at the end.
func (s *service) publishAll(ctx context.Context, job publishJob, sources []string) []pageResult {
	jobs := make(chan string)
	out := make(chan pageResult, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				out <- s.publishPage(ctx, job, rel)
			}
		}()
	}

	for _, rel := range sources {
		jobs <- rel
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]pageResult, 0, len(sources))
	for r := range out {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].source < results[j].source })
	return results
}

func (s *service) publishPage(ctx context.Context, job publishJob, rel string) pageResult {
	res := pageResult{source: rel, output: outputPath(rel), renderedAt: time.Now().UTC()}

	doc, err := job.loader.LoadDocument(ctx, rel)
	if err != nil {
		res.err = err
		return res
	}
	res.title = doc.Title
	res.slug = doc.Slug
	res.checksum = doc.Checksum

	logger := logging.WithSiteContext(s.logger, rel, "", "publish")

	if doc.FrontMatter.Draft && !s.config.IncludeDrafts {
		res.draft = true
		logger.Debug("site.page.draft_skipped")
		return res
	}

	if !job.force && job.previous.unchanged(rel, doc.Checksum) {
		if prev, ok := job.previous.Pages[rel]; ok {
			res.renderedAt = prev.RenderedAt
		}
		res.skipped = true
		logger.Debug("site.page.unchanged")
		return res
	}

	page, err := job.composer.ComposePage(templates.PageContext{
		Site: s.siteMetadata(),
		Page: templates.PageMetadata{
			Title:     doc.Title,
			Canonical: canonicalURL(s.config.BaseURL, res.output),
			Path:      res.output,
			Content:   trustedFragment(s.converter.Convert(doc.Body)),
		},
		Build: job.build,
	})
	if err != nil {
		res.err = wrapValidation(err, "site: compose page")
		return res
	}

	target := filepath.Join(s.dstDir(), filepath.FromSlash(res.output))
	if err := job.writer.WriteFile(ctx, target, []byte(page)); err != nil {
		res.err = wrapOperation(err, "site: write page")
		return res
	}
	return res
}

// publishIndex generates index.html from the optional __index__.md intro and
// the listing of every published page.
func (s *service) publishIndex(
	ctx context.Context,
	loader *Loader,
	composer *templates.Composer,
	writer artifactWriter,
	build templates.BuildMetadata,
	entries []indexEntry,
) (string, error) {
	intro := ""
	if data, err := fs.ReadFile(loader.fs, indexSourceName); err == nil {
		intro = string(data)
	}

	fragment := indexFragment(s.converter, intro, s.config.SiteTitle, entries)
	page, err := composer.ComposePage(templates.PageContext{
		Site: s.siteMetadata(),
		Page: templates.PageMetadata{
			Title:     s.config.SiteTitle,
			Canonical: canonicalURL(s.config.BaseURL, "index.html"),
			Path:      "index.html",
			Content:   trustedFragment(fragment),
		},
		Build: build,
	})
	if err != nil {
		return "", wrapValidation(err, "site: compose index")
	}

	target := filepath.Join(s.dstDir(), "index.html")
	if err := writer.WriteFile(ctx, target, []byte(page)); err != nil {
		return "", wrapOperation(err, "site: write index")
	}
	return "index.html", nil
}

// trustedFragment marks converter output as pre-escaped HTML. The converter
// escapes every piece of user text itself, so re-escaping here would mangle
// the generated tags.
func trustedFragment(fragment string) template.HTML {
	return template.HTML(fragment)
}

func (s *service) siteMetadata() templates.SiteMetadata {
	return templates.SiteMetadata{
		Title:   s.config.SiteTitle,
		BaseURL: s.config.BaseURL,
		CSSHref: s.config.CSSHref,
	}
}
