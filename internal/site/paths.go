package site

import (
	"path"
	"path/filepath"
	"strings"
)

// outputPath maps a source path (relative to the domain root, any separator)
// to its generated .html path, slash-separated.
func outputPath(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, ".md") + ".html"
}

// canonicalURL joins the configured base URL and an output path with exactly
// one slash between them.
func canonicalURL(baseURL, outPath string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(outPath, "/")
}

// stemTitle derives a human title from a file name: strip the extension and
// replace dash/underscore separators with spaces.
func stemTitle(rel string) string {
	stem := strings.TrimSuffix(path.Base(filepath.ToSlash(rel)), ".md")
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}

// firstHeading returns the text of the first ATX heading line, if any. Title
// extraction is deliberately looser than the converter's heading rule so a
// "#### deep" line still yields a usable title.
func firstHeading(body string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if text := strings.TrimSpace(strings.TrimLeft(line, "#")); text != "" {
			return text, true
		}
	}
	return "", false
}

// isCarrierFile reports whether a basename is a settings/index/template
// carrier (double-underscore prefix) rather than a page source.
func isCarrierFile(rel string) bool {
	return strings.HasPrefix(path.Base(filepath.ToSlash(rel)), "__")
}
