package markdown

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/pmarkowski/docmd"
)

// linkRe matches inline markdown links and images. Group 1 is the
// optional image bang, group 2 the link text, group 3 the target.
var linkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)\)`)

// RewriteLinks replaces links to captured pages with relative paths to
// their local markdown files. pageURL is the normalized URL of the page
// being rewritten and pagePath its own output path from the map. Links
// to pages outside the map, images, bare fragments, and links that are
// already relative markdown paths are left untouched, so rewriting is
// idempotent.
func RewriteLinks(md, pageURL, pagePath string, paths docmd.PathMap) string {
	lines := strings.Split(md, "\n")
	inFence := false
	for i, line := range lines {
		if isFence(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = linkRe.ReplaceAllStringFunc(line, func(match string) string {
			m := linkRe.FindStringSubmatch(match)
			if m[1] == "!" {
				return match
			}
			target := m[3]
			rewritten, ok := rewriteTarget(target, pageURL, pagePath, paths)
			if !ok {
				return match
			}
			return "[" + m[2] + "](" + rewritten + ")"
		})
	}
	return strings.Join(lines, "\n")
}

func rewriteTarget(target, pageURL, pagePath string, paths docmd.PathMap) (string, bool) {
	if strings.HasPrefix(target, "#") {
		return "", false
	}
	// Already a relative markdown link from a previous pass.
	if !strings.Contains(target, "://") && strings.HasSuffix(strings.SplitN(target, "#", 2)[0], ".md") {
		return "", false
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(target)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref).String()
	abs, fragment := docmd.SplitFragment(abs)
	normalized, err := docmd.NormalizeURL(abs)
	if err != nil {
		return "", false
	}
	dest, ok := paths.Lookup(normalized)
	if !ok {
		return "", false
	}
	rel := relativePath(pagePath, dest)
	if fragment != "" {
		rel += "#" + fragment
	}
	return rel, true
}

// relativePath computes the path from the file at from to the file at
// to, both slash-separated paths relative to the output root.
func relativePath(from, to string) string {
	fromDir := path.Dir(from)
	if fromDir == "." {
		return to
	}
	fromParts := strings.Split(fromDir, "/")
	toParts := strings.Split(to, "/")
	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}
	var b strings.Builder
	for i := common; i < len(fromParts); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toParts[common:], "/"))
	return b.String()
}
