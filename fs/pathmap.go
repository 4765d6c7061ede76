// Package fs is the output layout builder: it assigns every converted page a
// local file path, writes the markdown tree, and emits the navigation
// indexes.
package fs

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pmarkowski/docmd"
)

var unsafeSegmentRe = regexp.MustCompile(`[^a-zA-Z0-9._~-]+`)

// sanitizeSegment makes a URL path segment safe as a file name.
func sanitizeSegment(seg string) string {
	if dec, err := url.PathUnescape(seg); err == nil {
		seg = dec
	}
	seg = unsafeSegmentRe.ReplaceAllString(seg, "-")
	return strings.Trim(seg, "-")
}

// basePath maps a normalized URL onto its preferred output path: the URL
// path relative to the scope prefix, sanitized per segment, with the scope
// root (and any other empty path) becoming index.md.
func basePath(scope *docmd.Scope, normalized string) string {
	rel := scope.RelPath(normalized)
	if rel == "" {
		return "index.md"
	}

	var segs []string
	for _, s := range strings.Split(rel, "/") {
		if s = sanitizeSegment(s); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return "index.md"
	}

	last := segs[len(segs)-1]
	last = strings.TrimSuffix(last, ".html")
	last = strings.TrimSuffix(last, ".htm")
	if last == "" {
		last = "index"
	}
	segs[len(segs)-1] = last

	return strings.Join(segs, "/") + ".md"
}

// BuildPathMap assigns a unique local path to every URL. URLs are placed in
// lexicographic order so the assignment is reproducible across runs; when
// two URLs prefer the same path, later ones get a numeric suffix (-2, -3,
// ...). Returns ECONFLICT only if a collision cannot be disambiguated.
func BuildPathMap(scope *docmd.Scope, urls []string) (docmd.PathMap, error) {
	sorted := make([]string, len(urls))
	copy(sorted, urls)
	sort.Strings(sorted)

	paths := make(docmd.PathMap, len(sorted))
	taken := make(map[string]string, len(sorted))

	for _, u := range sorted {
		base := basePath(scope, u)
		stem := strings.TrimSuffix(base, ".md")

		candidate := base
		for n := 2; ; n++ {
			if _, ok := taken[candidate]; !ok {
				break
			}
			if n > len(sorted)+1 {
				return nil, docmd.Errorf(docmd.ECONFLICT, "cannot assign a unique path for %q (wanted %q)", u, base)
			}
			candidate = stem + "-" + strconv.Itoa(n) + ".md"
		}

		taken[candidate] = u
		paths[u] = candidate
	}

	return paths, nil
}
