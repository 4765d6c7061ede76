package markdown

import (
	"regexp"
	"strings"
)

// langRule matches a code block body against one language.
type langRule struct {
	lang  string
	match func(body, lower string) bool
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var yamlKeyRe = regexp.MustCompile(`(?m)^[ \t]*[A-Za-z_][\w-]*:\s+\S`)

// langRules is the fixed table of recognized languages. Rules are evaluated
// in order and the first match wins, so detection is reproducible.
var langRules = []langRule{
	{"bash", func(body, lower string) bool {
		return containsAny(body, "#!/", "$ ", "curl ", "sudo ", "apt-get ", "pip install", "npm install", "export ", "mkdir ", "cd ")
	}},
	{"python", func(body, lower string) bool {
		return containsAny(body, "def ", "import ", "print(", "elif ", "self.")
	}},
	{"go", func(body, lower string) bool {
		return containsAny(body, "func ", "package ", ":=", "fmt.")
	}},
	{"javascript", func(body, lower string) bool {
		return containsAny(body, "function ", "=> ", "console.", "const ", "let ")
	}},
	{"json", func(body, lower string) bool {
		t := strings.TrimSpace(body)
		return (strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")) && strings.Contains(t, `":`)
	}},
	{"html", func(body, lower string) bool {
		return containsAny(lower, "<html", "<div", "<body", "<p>", "<span")
	}},
	{"xml", func(body, lower string) bool {
		return strings.HasPrefix(strings.TrimSpace(body), "<?xml") || containsAny(lower, "</")
	}},
	{"css", func(body, lower string) bool {
		return strings.Contains(body, "{") && strings.Contains(body, ";") && strings.Contains(body, ":") && !strings.Contains(body, "<")
	}},
	{"sql", func(body, lower string) bool {
		return containsAny(lower, "select ", "insert into ", "create table ", "update ")
	}},
	{"yaml", func(body, lower string) bool {
		return yamlKeyRe.MatchString(body)
	}},
}

// DetectLanguage guesses the language of a code block body from a fixed
// table of keyword patterns. Returns "" when nothing matches.
func DetectLanguage(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	lower := strings.ToLower(body)
	for _, rule := range langRules {
		if rule.match(body, lower) {
			return rule.lang
		}
	}
	return ""
}
