package markdown_test

import (
	"strings"
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `# Getting Started

Install   the package:

` + "```" + `
pip install requests
` + "```" + `

## Usage

- First step
- Second step

~~~
import requests
requests.get("https://example.com")
~~~

Done!!!`

func TestProfileByName(t *testing.T) {
	t.Parallel()

	t.Run("returns an optimizer for every known profile", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			docmd.ProfileMinimal,
			docmd.ProfileStandard,
			docmd.ProfileEnhanced,
			docmd.ProfileTokenOptimized,
		} {
			opt, err := markdown.ProfileByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, opt.Name())
		}
	})

	t.Run("unknown name returns EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.ProfileByName("aggressive")

		require.Error(t, err)
		assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
	})
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	t.Run("standard normalizes tilde fences and adds language hints", func(t *testing.T) {
		t.Parallel()

		opt, err := markdown.ProfileByName(docmd.ProfileStandard)
		require.NoError(t, err)

		got := opt.Apply(samplePage)

		assert.NotContains(t, got, "~~~")
		assert.Contains(t, got, "```bash\npip install requests")
		assert.Contains(t, got, "```python\nimport requests")
	})

	t.Run("enhanced adds boundary markers standard lacks", func(t *testing.T) {
		t.Parallel()

		standard, err := markdown.ProfileByName(docmd.ProfileStandard)
		require.NoError(t, err)
		enhanced, err := markdown.ProfileByName(docmd.ProfileEnhanced)
		require.NoError(t, err)

		std := standard.Apply(samplePage)
		enh := enhanced.Apply(samplePage)

		assert.NotContains(t, std, "<!-- doc:")
		assert.Contains(t, enh, "<!-- doc:heading level=1 -->")
		assert.Contains(t, enh, "<!-- doc:heading level=2 -->")
		assert.Contains(t, enh, "<!-- doc:code lang=bash -->")
		assert.Contains(t, enh, "<!-- doc:list -->")
		assert.Contains(t, enh, "<!-- doc:end-list -->")
	})

	t.Run("stripping enhanced markers recovers standard content", func(t *testing.T) {
		t.Parallel()

		standard, err := markdown.ProfileByName(docmd.ProfileStandard)
		require.NoError(t, err)
		enhanced, err := markdown.ProfileByName(docmd.ProfileEnhanced)
		require.NoError(t, err)

		std := nonBlankLines(standard.Apply(samplePage))
		enh := nonBlankLines(markdown.StripMarkers(enhanced.Apply(samplePage)))

		assert.Equal(t, std, enh)
	})

	t.Run("token optimized is no longer than standard", func(t *testing.T) {
		t.Parallel()

		standard, err := markdown.ProfileByName(docmd.ProfileStandard)
		require.NoError(t, err)
		tokenOpt, err := markdown.ProfileByName(docmd.ProfileTokenOptimized)
		require.NoError(t, err)

		std := standard.Apply(samplePage)
		opt := tokenOpt.Apply(samplePage)

		assert.LessOrEqual(t, len(opt), len(std))
		assert.Contains(t, opt, "Install the package:")
		assert.Contains(t, opt, "Done!")
		assert.NotContains(t, opt, "Done!!!")
	})

	t.Run("token optimized leaves code block bodies untouched", func(t *testing.T) {
		t.Parallel()

		input := "```\nx   =   1  !!!\n```"
		opt, err := markdown.ProfileByName(docmd.ProfileTokenOptimized)
		require.NoError(t, err)

		got := opt.Apply(input)

		assert.Contains(t, got, "x   =   1  !!!")
	})

	t.Run("minimal only repairs fences", func(t *testing.T) {
		t.Parallel()

		opt, err := markdown.ProfileByName(docmd.ProfileMinimal)
		require.NoError(t, err)

		got := opt.Apply("text\n```\ncode")

		assert.Equal(t, "text\n```\ncode\n```", got)
		// No normalization or hints in this profile.
		assert.Equal(t, "~~~\nx\n~~~", opt.Apply("~~~\nx\n~~~"))
	})
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
