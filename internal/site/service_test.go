package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/internal/markdown"
)

func writeSource(t *testing.T, srcRoot, domain, rel, content string) {
	t.Helper()
	full := filepath.Join(srcRoot, domain, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestService(t *testing.T, cfg Config) Service {
	t.Helper()
	svc, err := NewService(cfg, Dependencies{Converter: markdown.New()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func testConfig(srcRoot, dstRoot string) Config {
	return Config{
		Domain:     "example.com",
		SrcRoot:    srcRoot,
		DstRoot:    dstRoot,
		SiteTitle:  "Example Site",
		BaseURL:    "https://example.com",
		CSSHref:    "/style.css",
		DateFormat: "2006-01-02",
		Workers:    2,
	}
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(Config{}, Dependencies{Converter: markdown.New()})
	if !errors.Is(err, ErrDomainRequired) {
		t.Fatalf("expected ErrDomainRequired, got %v", err)
	}

	_, err = NewService(Config{Domain: "example.com"}, Dependencies{})
	if !errors.Is(err, ErrConverterRequired) {
		t.Fatalf("expected ErrConverterRequired, got %v", err)
	}
}

func TestBuildMissingSource(t *testing.T) {
	svc := newTestService(t, testConfig(t.TempDir(), t.TempDir()))
	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestBuildGeneratesPagesAndIndex(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About Us\n\nHello *world*.\n")
	writeSource(t, srcRoot, "example.com", "guides/setup.md", "# Setup\n\nSteps here.\n")
	writeSource(t, srcRoot, "example.com", "__index__.md", "# Welcome\n\nIntro text.\n")

	svc := newTestService(t, testConfig(srcRoot, dstRoot))
	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 3 { // two pages + index
		t.Fatalf("pages built = %d", result.PagesBuilt)
	}

	about, err := os.ReadFile(filepath.Join(dstRoot, "example.com", "about.html"))
	if err != nil {
		t.Fatalf("read about.html: %v", err)
	}
	page := string(about)
	if !strings.Contains(page, "<h1>About Us</h1>") {
		t.Fatalf("missing converted heading:\n%s", page)
	}
	if !strings.Contains(page, "<em>world</em>") {
		t.Fatalf("missing converted emphasis:\n%s", page)
	}
	if !strings.Contains(page, `<link rel="canonical" href="https://example.com/about.html">`) {
		t.Fatalf("missing canonical link:\n%s", page)
	}
	if !strings.Contains(page, "<title>About Us</title>") {
		t.Fatalf("missing title:\n%s", page)
	}

	index, err := os.ReadFile(filepath.Join(dstRoot, "example.com", "index.html"))
	if err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	listing := string(index)
	if !strings.Contains(listing, "<h1>Welcome</h1>") {
		t.Fatalf("index intro missing:\n%s", listing)
	}
	if !strings.Contains(listing, "<h2>Posts</h2>") {
		t.Fatalf("index listing header missing:\n%s", listing)
	}
	if !strings.Contains(listing, `<li><a href="about.html">About Us</a></li>`) {
		t.Fatalf("index entry missing:\n%s", listing)
	}
	if !strings.Contains(listing, `<li><a href="guides/setup.html">Setup</a></li>`) {
		t.Fatalf("nested index entry missing:\n%s", listing)
	}

	if _, err := os.Stat(filepath.Join(dstRoot, "example.com", manifestFileName)); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
}

func TestBuildIncrementalSkip(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About\n")

	svc := newTestService(t, testConfig(srcRoot, dstRoot))
	ctx := context.Background()

	first, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.PagesSkipped != 0 {
		t.Fatalf("first build skipped = %d", first.PagesSkipped)
	}

	second, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.PagesSkipped != 1 {
		t.Fatalf("second build skipped = %d", second.PagesSkipped)
	}

	forced, err := svc.Build(ctx, BuildOptions{Force: true})
	if err != nil {
		t.Fatalf("forced build: %v", err)
	}
	if forced.PagesSkipped != 0 {
		t.Fatalf("forced build skipped = %d", forced.PagesSkipped)
	}

	// Editing the source invalidates the checksum.
	writeSource(t, srcRoot, "example.com", "about.md", "# About Edited\n")
	edited, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("rebuild after edit: %v", err)
	}
	if edited.PagesSkipped != 0 {
		t.Fatalf("edited build skipped = %d", edited.PagesSkipped)
	}
}

func TestBuildDraftsExcluded(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "draft.md", "---\ntitle: WIP\ndraft: true\n---\nhidden\n")
	writeSource(t, srcRoot, "example.com", "live.md", "# Live\n")

	cfg := testConfig(srcRoot, dstRoot)
	svc := newTestService(t, cfg)
	ctx := context.Background()

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstRoot, "example.com", "draft.html")); err == nil {
		t.Fatal("draft page should not be published")
	}

	index, err := os.ReadFile(filepath.Join(dstRoot, "example.com", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(index), "WIP") {
		t.Fatal("draft page should not be listed")
	}

	cfg.IncludeDrafts = true
	if _, err := newTestService(t, cfg).Build(ctx, BuildOptions{Force: true}); err != nil {
		t.Fatalf("Build with drafts: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstRoot, "example.com", "draft.html")); err != nil {
		t.Fatalf("draft page should be published when included: %v", err)
	}
}

func TestBuildDryRunTouchesNothing(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About\n")

	cfg := testConfig(srcRoot, dstRoot)
	cfg.DryRun = true
	svc := newTestService(t, cfg)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.DryRun {
		t.Fatal("result should be flagged as dry run")
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("pages built = %d", result.PagesBuilt)
	}

	entries, err := os.ReadDir(filepath.Join(dstRoot, "example.com"))
	if err == nil && len(entries) > 0 {
		t.Fatalf("dry run wrote artifacts: %v", entries)
	}
}

func TestBuildTemplateOverride(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About\n")
	writeSource(t, srcRoot, "example.com", templateOverrideName,
		"<html><body data-site=\"{{.Site.Title}}\">{{.Page.Content}}</body></html>")

	svc := newTestService(t, testConfig(srcRoot, dstRoot))
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	about, err := os.ReadFile(filepath.Join(dstRoot, "example.com", "about.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(about), `data-site="Example Site"`) {
		t.Fatalf("override template not applied:\n%s", about)
	}
}

func TestBuildRejectsBrokenTemplateOverride(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About\n")
	writeSource(t, srcRoot, "example.com", templateOverrideName, "{{.Unclosed")

	svc := newTestService(t, testConfig(srcRoot, dstRoot))
	if _, err := svc.Build(context.Background(), BuildOptions{}); err == nil {
		t.Fatal("expected template parse error")
	}
}

func TestCleanRemovesGeneratedArtifacts(t *testing.T) {
	srcRoot, dstRoot := t.TempDir(), t.TempDir()
	writeSource(t, srcRoot, "example.com", "about.md", "# About\n")

	svc := newTestService(t, testConfig(srcRoot, dstRoot))
	ctx := context.Background()

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// A non-generated file must survive cleaning.
	keep := filepath.Join(dstRoot, "example.com", "keep.txt")
	if err := os.WriteFile(keep, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Clean(ctx)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(result.Removed) != 3 { // about.html, index.html, manifest
		t.Fatalf("removed = %v", result.Removed)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("unrelated file removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstRoot, "example.com", "about.html")); err == nil {
		t.Fatal("generated page survived clean")
	}
}

func TestCleanMissingDestination(t *testing.T) {
	svc := newTestService(t, testConfig(t.TempDir(), t.TempDir()))
	result, err := svc.Clean(context.Background())
	if err != nil {
		t.Fatalf("Clean of missing destination: %v", err)
	}
	if len(result.Removed) != 0 {
		t.Fatalf("removed = %v", result.Removed)
	}
}
