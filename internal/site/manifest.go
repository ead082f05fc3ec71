package site

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	manifestFileName    = ".sitegen-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build so later runs
// can skip sources whose checksum is unchanged.
type buildManifest struct {
	Version     int                     `json:"version"`
	BuildID     string                  `json:"build_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
}

// manifestPage records one generated page, keyed by its source path.
type manifestPage struct {
	Output     string    `json:"output"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest(buildID string, generatedAt time.Time) *buildManifest {
	return &buildManifest{
		Version:     manifestFileVersion,
		BuildID:     buildID,
		GeneratedAt: generatedAt,
		Pages:       map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	var m buildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("site manifest: decode: %w", err)
	}
	if m.Version != manifestFileVersion {
		return nil, fmt.Errorf("site manifest: unsupported version %d", m.Version)
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	return &m, nil
}

// loadManifest reads the manifest at the given path. Any failure (missing,
// unreadable, stale version) yields nil so the build simply runs fully.
func loadManifest(path string) *buildManifest {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	m, err := parseManifest(data)
	if err != nil {
		return nil
	}
	return m
}

func (m *buildManifest) encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("site manifest: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// unchanged reports whether the manifest has an entry for the source with the
// same content checksum.
func (m *buildManifest) unchanged(source, sum string) bool {
	if m == nil {
		return false
	}
	entry, ok := m.Pages[source]
	return ok && entry.Checksum == sum && sum != ""
}
