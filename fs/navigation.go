package fs

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pmarkowski/docmd"
)

// NavEntry is one converted page as the navigation indexes see it. Entries
// arrive in traversal order (all depth-0 pages before any depth-1 page).
type NavEntry struct {
	URL   string
	Path  string // slash-separated, relative to the output root
	Title string
	Hash  string
	Depth int
}

// WriteIndexes emits a README.md in every output directory listing its
// pages and subdirectories.
func (w *Writer) WriteIndexes(entries []NavEntry) error {
	byDir := make(map[string][]NavEntry)
	subdirs := make(map[string]map[string]struct{})

	note := func(dir string) {
		if _, ok := byDir[dir]; !ok {
			byDir[dir] = nil
		}
		if _, ok := subdirs[dir]; !ok {
			subdirs[dir] = make(map[string]struct{})
		}
	}

	for _, e := range entries {
		dir := path.Dir(e.Path)
		note(dir)
		byDir[dir] = append(byDir[dir], e)

		// Register the directory chain so intermediate directories with
		// no direct pages still get an index.
		for dir != "." {
			parent := path.Dir(dir)
			note(parent)
			subdirs[parent][path.Base(dir)] = struct{}{}
			dir = parent
		}
	}

	for dir, pages := range byDir {
		var b strings.Builder
		b.WriteString("# ")
		if dir == "." {
			b.WriteString("Documentation")
		} else {
			b.WriteString(path.Base(dir))
		}
		b.WriteString("\n\n")

		children := make([]string, 0, len(subdirs[dir]))
		for name := range subdirs[dir] {
			children = append(children, name)
		}
		sort.Strings(children)
		for _, name := range children {
			b.WriteString("- [")
			b.WriteString(name)
			b.WriteString("/](")
			b.WriteString(name)
			b.WriteString("/README.md)\n")
		}

		sorted := make([]NavEntry, len(pages))
		copy(sorted, pages)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
		for _, e := range sorted {
			b.WriteString("- [")
			b.WriteString(entryTitle(e))
			b.WriteString("](")
			b.WriteString(path.Base(e.Path))
			b.WriteString(")\n")
		}

		relPath := "README.md"
		if dir != "." {
			relPath = dir + "/README.md"
		}
		if err := w.writeFile(relPath, b.String()); err != nil {
			return err
		}
	}

	return nil
}

// WriteSiteNavigation emits the whole-site NAVIGATION.md at the output
// root: every page in traversal order grouped by depth, followed by the run
// summary and any failed URLs.
func (w *Writer) WriteSiteNavigation(baseURL string, entries []NavEntry, failed []docmd.FailedURL) error {
	var b strings.Builder
	b.WriteString("# Site Navigation\n\n")
	b.WriteString("Source: ")
	b.WriteString(baseURL)
	b.WriteString("\n")

	depth := -1
	for _, e := range entries {
		if e.Depth != depth {
			depth = e.Depth
			b.WriteString("\n## Depth ")
			b.WriteString(strconv.Itoa(depth))
			b.WriteString("\n\n")
		}
		b.WriteString("- [")
		b.WriteString(entryTitle(e))
		b.WriteString("](")
		b.WriteString(e.Path)
		b.WriteString(")")
		if e.Hash != "" {
			b.WriteString(" `")
			b.WriteString(e.Hash)
			b.WriteString("`")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("- Pages: ")
	b.WriteString(strconv.Itoa(len(entries)))
	b.WriteString("\n- Failed: ")
	b.WriteString(strconv.Itoa(len(failed)))
	b.WriteString("\n")
	for _, f := range failed {
		b.WriteString("- Failed: ")
		b.WriteString(f.URL)
		b.WriteString(" (")
		b.WriteString(f.Reason)
		b.WriteString(")\n")
	}

	return w.writeFile("NAVIGATION.md", b.String())
}

func entryTitle(e NavEntry) string {
	if e.Title != "" {
		return e.Title
	}
	return e.URL
}
