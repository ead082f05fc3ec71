package site

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Loader turns the files of one domain source tree into documents with
// resolved metadata. Paths are always relative to the domain root and
// slash-separated.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a loader over the supplied filesystem, normally
// os.DirFS rooted at the domain source directory.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem}
}

// Discover walks the tree for page sources: every *.md file except carrier
// files (__settings__.toml siblings such as __index__.md). Results come back
// sorted for deterministic builds.
func (l *Loader) Discover(ctx context.Context) ([]string, error) {
	var paths []string
	err := fs.WalkDir(l.fs, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".md") || isCarrierFile(p) {
			return nil
		}
		paths = append(paths, path.Clean(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("site loader: walk sources: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDocument reads one source file and resolves its metadata: front matter
// (optional), title (front matter > first heading > filename stem), slug
// (front matter > slugified title), and a checksum for incremental builds.
func (l *Loader) LoadDocument(ctx context.Context, rel string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("site loader: read %s: %w", rel, err)
	}

	var modified time.Time
	if info, err := fs.Stat(l.fs, rel); err == nil {
		modified = info.ModTime()
	}

	var meta interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// A broken envelope never fails the build: treat the whole file as body.
		meta = interfaces.FrontMatter{}
		body = data
	}

	doc := &interfaces.Document{
		Path:         rel,
		FrontMatter:  meta,
		Body:         string(body),
		LastModified: modified,
		Checksum:     checksum(data),
	}
	doc.Title = resolveTitle(doc)
	doc.Slug = resolveSlug(doc)
	return doc, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func resolveTitle(doc *interfaces.Document) string {
	if title := strings.TrimSpace(doc.FrontMatter.Title); title != "" {
		return title
	}
	if title, ok := firstHeading(doc.Body); ok {
		return title
	}
	return stemTitle(doc.Path)
}

func resolveSlug(doc *interfaces.Document) string {
	if s := strings.TrimSpace(doc.FrontMatter.Slug); s != "" {
		return s
	}
	if normalized, err := slug.Normalize(doc.Title); err == nil {
		return normalized
	}
	return stemTitle(doc.Path)
}
