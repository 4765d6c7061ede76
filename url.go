package docmd

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for use as an identity key: the query
// string and fragment are stripped and a trailing slash is removed from the
// path. Normalization is idempotent.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String(), nil
}

// SplitFragment separates a raw URL into its fragment-free form and the
// fragment itself (without "#"). Used by the link rewriter, which matches on
// the normalized URL but must re-append the original fragment.
func SplitFragment(raw string) (base, fragment string) {
	if idx := strings.Index(raw, "#"); idx != -1 {
		return raw[:idx], raw[idx+1:]
	}
	return raw, ""
}

// Scope is the (host, path-prefix) pair defining which URLs are eligible for
// crawling. The zero value is not usable; construct with NewScope.
type Scope struct {
	Root       string // normalized root URL
	Host       string
	PathPrefix string // normalized path, "" for whole-domain roots
}

// NewScope derives the crawl scope from the root URL.
// Returns EINVALID if the root URL is not a usable http(s) URL.
func NewScope(rootURL string) (*Scope, error) {
	normalized, err := NormalizeURL(rootURL)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid root URL %q: %v", rootURL, err)
	}
	return &Scope{
		Root:       normalized,
		Host:       u.Host,
		PathPrefix: u.Path,
	}, nil
}

// Contains reports whether a normalized URL falls inside the scope: the host
// must match exactly and the path must equal the scope prefix or extend it at
// a path-segment boundary.
func (s *Scope) Contains(normalized string) bool {
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	if u.Host != s.Host {
		return false
	}
	if s.PathPrefix == "" {
		return true
	}
	return u.Path == s.PathPrefix || strings.HasPrefix(u.Path, s.PathPrefix+"/")
}

// RelPath returns the URL's path relative to the scope prefix, without a
// leading slash. The scope root itself maps to "".
func (s *Scope) RelPath(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	rel := strings.TrimPrefix(u.Path, s.PathPrefix)
	return strings.TrimPrefix(rel, "/")
}

// ExclusionSet holds normalized URL prefixes excluded from crawling.
// A URL is excluded if it equals a pattern exactly or extends it at a
// path-segment boundary, so a pattern ".../admin" excludes ".../admin/x"
// but not ".../administrator".
type ExclusionSet struct {
	patterns []string
}

// NewExclusionSet normalizes the given patterns into an ExclusionSet.
// Returns EINVALID if any pattern is not a usable http(s) URL.
func NewExclusionSet(patterns []string) (*ExclusionSet, error) {
	set := &ExclusionSet{}
	for _, p := range patterns {
		normalized, err := NormalizeURL(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclusion pattern %q: %v", p, err)
		}
		set.patterns = append(set.patterns, normalized)
	}
	return set, nil
}

// Excluded reports whether a normalized URL matches any exclusion pattern.
// A nil set excludes nothing.
func (e *ExclusionSet) Excluded(normalized string) bool {
	if e == nil {
		return false
	}
	for _, p := range e.patterns {
		if normalized == p || strings.HasPrefix(normalized, p+"/") {
			return true
		}
	}
	return false
}

// Len returns the number of exclusion patterns.
func (e *ExclusionSet) Len() int {
	if e == nil {
		return 0
	}
	return len(e.patterns)
}
