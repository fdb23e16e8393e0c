package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// unsafeChars matches everything that is not alphanumeric or whitespace.
// Stripping these makes titles and author names safe as filenames and
// as Obsidian-style [[link]] targets.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Sanitize removes every character that is not alphanumeric or
// whitespace. Sanitizing an already-sanitized string is a no-op.
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "")
}

// DocumentName derives the Markdown filename for a publication title.
func DocumentName(title string) string {
	return Sanitize(title) + ".md"
}

// RenderMarkdown produces the note body for one publication: a title
// heading followed by labeled sections. Each author becomes a
// double-bracketed link token with unsafe characters stripped.
func RenderMarkdown(p Publication) string {
	var links []string
	if p.Authors != "" {
		for _, name := range strings.Split(p.Authors, ", ") {
			links = append(links, "[["+Sanitize(strings.TrimSpace(name))+"]]")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**PMID:** %s\n\n", p.PMID)
	fmt.Fprintf(&b, "**Journal:** %s\n\n", p.Journal)
	fmt.Fprintf(&b, "**Authors:** %s\n\n", strings.Join(links, "**, **"))
	fmt.Fprintf(&b, "**Abstract:**\n%s\n\n", p.Abstract)
	fmt.Fprintf(&b, "**Keywords:** %s\n\n", p.Keywords)
	fmt.Fprintf(&b, "**URL:** %s\n\n", p.URL)
	fmt.Fprintf(&b, "**Affiliations:** %s\n\n", p.Affiliations)
	return b.String()
}

// WriteMarkdown writes one note per row into dir (created if absent),
// named after the sanitized title. A later row whose sanitized title
// collides with an earlier one overwrites it. Returns the paths written.
func WriteMarkdown(dir string, rows []Publication) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(rows))
	for _, row := range rows {
		name := DocumentName(row.Title)
		if strings.TrimSuffix(name, ".md") == "" {
			return paths, fmt.Errorf("title %q sanitizes to an empty filename", row.Title)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(RenderMarkdown(row)), 0o644); err != nil {
			return paths, fmt.Errorf("writing note for PMID %s: %w", row.PMID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
