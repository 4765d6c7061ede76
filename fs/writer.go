package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmarkowski/docmd"
)

// Writer writes the markdown tree under a single output root and keeps
// count of directories created and bytes written for the run summary.
type Writer struct {
	outputDir string
	dirs      map[string]struct{}
	bytes     int
}

// NewWriter creates a Writer rooted at outputDir. The root itself counts as
// a directory once anything is written.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		dirs:      make(map[string]struct{}),
	}
}

// WritePage writes one converted page at its assigned path, prepending the
// provenance header.
func (w *Writer) WritePage(page *docmd.Page, relPath string) error {
	return w.writeFile(relPath, FormatPage(page))
}

func (w *Writer) writeFile(relPath, content string) error {
	fullPath := filepath.Join(w.outputDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return docmd.Errorf(docmd.EINTERNAL, "create directory for %q: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return docmd.Errorf(docmd.EINTERNAL, "write %q: %v", relPath, err)
	}

	w.bytes += len(content)
	w.recordDirs(relPath)
	return nil
}

func (w *Writer) recordDirs(relPath string) {
	w.dirs["."] = struct{}{}
	dir := filepath.ToSlash(filepath.Dir(relPath))
	for dir != "." && dir != "/" {
		w.dirs[dir] = struct{}{}
		dir = filepath.ToSlash(filepath.Dir(dir))
	}
}

// DirCount returns the number of distinct directories written to, the
// output root included.
func (w *Writer) DirCount() int {
	return len(w.dirs)
}

// BytesWritten returns the total bytes written so far.
func (w *Writer) BytesWritten() int {
	return w.bytes
}

// FormatPage renders a page as its output file content: an HTML-comment
// provenance header recording the source URL, the title as an H1, the meta
// tags as a bulleted list, then the markdown body.
func FormatPage(page *docmd.Page) string {
	var b strings.Builder

	b.WriteString("<!-- source: ")
	b.WriteString(page.URL)
	b.WriteString(" -->\n\n")

	title := page.Title
	if title == "" {
		title = page.URL
	}
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(page.Metadata) > 0 {
		keys := make([]string, 0, len(page.Metadata))
		for k := range page.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("- **")
			b.WriteString(k)
			b.WriteString("**: ")
			b.WriteString(page.Metadata[k])
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(page.Markdown)
	if !strings.HasSuffix(page.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
