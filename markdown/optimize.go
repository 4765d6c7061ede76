package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pmarkowski/docmd"
)

// Compile-time interface verification.
var (
	_ docmd.Optimizer = (*Minimal)(nil)
	_ docmd.Optimizer = (*Standard)(nil)
	_ docmd.Optimizer = (*Enhanced)(nil)
	_ docmd.Optimizer = (*TokenOptimized)(nil)
)

// ProfileByName returns the optimizer for a profile name.
// Returns EINVALID for unknown names.
func ProfileByName(name string) (docmd.Optimizer, error) {
	switch name {
	case docmd.ProfileMinimal:
		return &Minimal{}, nil
	case docmd.ProfileStandard:
		return &Standard{}, nil
	case docmd.ProfileEnhanced:
		return &Enhanced{}, nil
	case docmd.ProfileTokenOptimized:
		return &TokenOptimized{}, nil
	}
	return nil, docmd.Errorf(docmd.EINVALID, "unknown optimization profile %q", name)
}

// Minimal only ensures fences are syntactically well-formed.
type Minimal struct{}

func (*Minimal) Name() string { return docmd.ProfileMinimal }

func (*Minimal) Apply(md string) string {
	return ReconstructFences(md)
}

// Standard repairs fences, normalizes them to the ``` style, and assigns
// language hints where a language can be recognized.
type Standard struct{}

func (*Standard) Name() string { return docmd.ProfileStandard }

func (*Standard) Apply(md string) string {
	md = NormalizeFences(md)
	md = ReconstructFences(md)
	return AnnotateFences(md, false)
}

// Enhanced is Standard plus machine-readable boundary markers around
// headings, lists, and code blocks, to aid downstream chunking. Blocks with
// no recognized language get the generic "text" hint.
type Enhanced struct{}

func (*Enhanced) Name() string { return docmd.ProfileEnhanced }

func (*Enhanced) Apply(md string) string {
	md = NormalizeFences(md)
	md = ReconstructFences(md)
	md = AnnotateFences(md, true)
	return insertSectionMarkers(md)
}

// TokenOptimized is the Standard transforms without markers, plus whitespace
// and punctuation compaction. Headings, list structure, code fences, and
// link targets survive unchanged; only redundant whitespace and repeated
// punctuation are removed.
type TokenOptimized struct{}

func (*TokenOptimized) Name() string { return docmd.ProfileTokenOptimized }

func (*TokenOptimized) Apply(md string) string {
	md = NormalizeFences(md)
	md = ReconstructFences(md)
	md = AnnotateFences(md, false)
	return compact(md)
}

// markerRe matches the boundary annotations inserted by the enhanced
// profile. Exported logic strips them when comparing semantic content.
var markerRe = regexp.MustCompile(`<!-- doc:[^>]*-->`)

// StripMarkers removes enhanced-profile boundary annotations.
func StripMarkers(md string) string {
	return markerRe.ReplaceAllString(md, "")
}

func isListItem(line string) bool {
	t := strings.TrimSpace(line)
	if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ") {
		return true
	}
	return listOrderedRe.MatchString(t)
}

var listOrderedRe = regexp.MustCompile(`^\d+\.\s`)

var headingLevelRe = regexp.MustCompile(`^(#{1,6})\s`)

// insertSectionMarkers wraps headings, list runs, and code blocks with
// HTML-comment annotations of the form <!-- doc:... -->.
func insertSectionMarkers(md string) string {
	lines := strings.Split(md, "\n")
	var out []string
	inFence := false
	inList := false

	closeList := func() {
		if inList {
			out = append(out, "<!-- doc:end-list -->")
			inList = false
		}
	}

	for _, line := range lines {
		if isFence(line) {
			if !inFence {
				closeList()
				lang := fenceInfo(line)
				out = append(out, "<!-- doc:code lang="+lang+" -->", line)
				inFence = true
			} else {
				out = append(out, line, "<!-- doc:end-code -->")
				inFence = false
			}
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		if m := headingLevelRe.FindStringSubmatch(line); m != nil {
			closeList()
			out = append(out, "<!-- doc:heading level="+strconv.Itoa(len(m[1]))+" -->", line)
			continue
		}

		if isListItem(line) {
			if !inList {
				out = append(out, "<!-- doc:list -->")
				inList = true
			}
			out = append(out, line)
			continue
		}

		if inList && strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "  ") {
			closeList()
		}
		out = append(out, line)
	}
	closeList()

	return strings.Join(out, "\n")
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
	bangRunRe    = regexp.MustCompile(`!{2,}`)
	qmarkRunRe   = regexp.MustCompile(`\?{2,}`)
	commaRunRe   = regexp.MustCompile(`,{2,}`)
	ellipsisRe   = regexp.MustCompile(`\.{4,}`)
	dashRunRe    = regexp.MustCompile(`-{4,}`)
	underscoreRe = regexp.MustCompile(`_{4,}`)
)

// compact removes redundant whitespace and repeated punctuation outside
// code fences. Fence lines and block interiors are copied verbatim so code
// stays lossless.
func compact(md string) string {
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

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		body := strings.TrimRight(line[len(indent):], " \t")
		body = spaceRunRe.ReplaceAllString(body, " ")
		body = bangRunRe.ReplaceAllString(body, "!")
		body = qmarkRunRe.ReplaceAllString(body, "?")
		body = commaRunRe.ReplaceAllString(body, ",")
		body = ellipsisRe.ReplaceAllString(body, "...")
		body = dashRunRe.ReplaceAllString(body, "---")
		body = underscoreRe.ReplaceAllString(body, "___")
		lines[i] = indent + body
	}

	return strings.Join(lines, "\n")
}
