package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	m := newBuildManifest("build-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m.Pages["notes.md"] = manifestPage{
		Output:   "notes.html",
		Title:    "Notes",
		Slug:     "notes",
		Checksum: "abc123",
	}

	data, err := m.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	if parsed.BuildID != "build-1" {
		t.Fatalf("build id = %q", parsed.BuildID)
	}
	if parsed.Pages["notes.md"].Checksum != "abc123" {
		t.Fatalf("checksum = %q", parsed.Pages["notes.md"].Checksum)
	}
}

func TestParseManifestRejectsUnknownVersion(t *testing.T) {
	if _, err := parseManifest([]byte(`{"version": 99, "pages": {}}`)); err == nil {
		t.Fatal("expected version error")
	}
}

func TestLoadManifestToleratesMissingAndGarbage(t *testing.T) {
	dir := t.TempDir()

	if m := loadManifest(filepath.Join(dir, "nope.json")); m != nil {
		t.Fatal("missing file should yield nil manifest")
	}

	garbage := filepath.Join(dir, manifestFileName)
	if err := os.WriteFile(garbage, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m := loadManifest(garbage); m != nil {
		t.Fatal("garbage file should yield nil manifest")
	}
}

func TestManifestUnchanged(t *testing.T) {
	m := newBuildManifest("b", time.Now())
	m.Pages["a.md"] = manifestPage{Checksum: "sum"}

	if !m.unchanged("a.md", "sum") {
		t.Fatal("matching checksum should report unchanged")
	}
	if m.unchanged("a.md", "other") {
		t.Fatal("differing checksum should report changed")
	}
	if m.unchanged("missing.md", "sum") {
		t.Fatal("unknown source should report changed")
	}
	if m.unchanged("a.md", "") {
		t.Fatal("empty checksum should never match")
	}

	var nilManifest *buildManifest
	if nilManifest.unchanged("a.md", "sum") {
		t.Fatal("nil manifest should report changed")
	}
}
