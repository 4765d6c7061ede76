// Package markdown implements the pure text stages of the pipeline: code
// fence reconstruction, the optimization profiles, and link rewriting.
// Everything here is deterministic and operates on one page at a time.
package markdown

import (
	"regexp"
	"strings"
)

// isFence reports whether a line is a fence delimiter (``` or ~~~ style).
func isFence(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

// fenceMarker returns the delimiter run of a fence line ("```" or "~~~").
func fenceMarker(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "~~~") {
		return "~~~"
	}
	return "```"
}

// fenceInfo returns the info string of a fence line ("python" in "```python").
func fenceInfo(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimLeft(t, "`~")
	return strings.TrimSpace(t)
}

func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// ReconstructFences repairs fenced code blocks mangled by HTML→markdown
// conversion. It applies a fixed rule order over the line sequence:
//
//  1. An empty fence pair (opening fence immediately followed by its close)
//     absorbs the non-blank lines that follow it, up to the next fence,
//     heading, or end of document. A pair with nothing to absorb is dropped.
//  2. A line immediately preceding an opening fence is moved inside the
//     block when it looks like the block's stray first line (see
//     looksLikeCode).
//  3. A document with an unclosed fence gets a closing fence at end of
//     document.
//
// Content inside well-formed blocks is copied verbatim.
func ReconstructFences(md string) string {
	lines := strings.Split(md, "\n")
	var out []string
	inFence := false
	marker := "```"

	i := 0
	for i < len(lines) {
		line := lines[i]

		if !isFence(line) {
			out = append(out, line)
			i++
			continue
		}

		if inFence {
			inFence = false
			out = append(out, line)
			i++
			continue
		}

		// Opening fence. Rule 1: empty pair absorbs trailing content.
		if i+1 < len(lines) && isFence(lines[i+1]) {
			var body []string
			j := i + 2
			for j < len(lines) && !isFence(lines[j]) && !isHeading(lines[j]) {
				if strings.TrimSpace(lines[j]) != "" {
					body = append(body, lines[j])
				}
				j++
			}
			if len(body) > 0 {
				out = append(out, line)
				out = append(out, body...)
				out = append(out, fenceMarker(line))
			}
			i = j
			continue
		}

		// Rule 2: pull a stray first line into the block.
		if n := len(out); n > 0 && looksLikeCode(out[n-1]) {
			prev := out[n-1]
			out = append(out[:n-1], line, prev)
		} else {
			out = append(out, line)
		}
		inFence = true
		marker = fenceMarker(line)
		i++
	}

	// Rule 3: close an unbalanced fence rather than failing the page.
	if inFence {
		out = append(out, marker)
	}

	return strings.Join(out, "\n")
}

var assignmentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=\S+$`)

// codeStartTokens are prefixes that mark a line as code. Checked first.
var codeStartTokens = []string{
	"$ ", "#!", "def ", "import ", "from ", "func ", "package ",
	"const ", "var ", "class ", "curl ", "pip ", "npm ", "git ",
	"cd ", "export ", "sudo ", "mkdir ",
}

// looksLikeCode decides whether a line outside a fence is a stray code line.
// Rules are evaluated in a fixed order so repair is reproducible:
//
//  1. the line starts with a known code-start token;
//  2. the line is indented four or more spaces (or a tab);
//  3. the line is a bare KEY=value assignment with no sentence-ending
//     punctuation.
func looksLikeCode(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	for _, tok := range codeStartTokens {
		if strings.HasPrefix(trimmed, tok) {
			return true
		}
	}

	if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
		return true
	}

	if assignmentRe.MatchString(trimmed) && !strings.ContainsAny(trimmed[len(trimmed)-1:], ".!?") {
		return true
	}

	return false
}

// NormalizeFences rewrites every fence delimiter to the canonical ``` style.
// Tilde fences keep their info string; legacy [code]/[/code] markers emitted
// by some converters become plain fences.
func NormalizeFences(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "~~~"):
			lines[i] = "```" + fenceInfo(line)
		case t == "[code]" || t == "[/code]":
			lines[i] = "```"
		}
	}
	out := strings.Join(lines, "\n")
	// Inline occurrences, e.g. "[code]x[/code]" on one line.
	out = strings.ReplaceAll(out, "[code]", "```")
	out = strings.ReplaceAll(out, "[/code]", "```")
	return out
}

// AnnotateFences assigns a language hint to every opening fence that lacks
// one, by pattern-matching the block body (see DetectLanguage). When
// requireGeneric is set, blocks with no recognized language get the generic
// "text" hint instead of none.
func AnnotateFences(md string, requireGeneric bool) string {
	lines := strings.Split(md, "\n")
	inFence := false

	for i, line := range lines {
		if !isFence(line) {
			continue
		}
		if inFence {
			inFence = false
			continue
		}
		inFence = true
		if fenceInfo(line) != "" {
			continue
		}

		var body []string
		for j := i + 1; j < len(lines) && !isFence(lines[j]); j++ {
			body = append(body, lines[j])
		}
		lang := DetectLanguage(strings.Join(body, "\n"))
		if lang == "" && requireGeneric {
			lang = "text"
		}
		if lang != "" {
			lines[i] = fenceMarker(line) + lang
		}
	}

	return strings.Join(lines, "\n")
}

// ReduceEmptyLines collapses every run of two or more blank lines to exactly
// one and drops trailing blank lines.
func ReduceEmptyLines(md string) string {
	lines := strings.Split(md, "\n")
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
