package readability_test

import (
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>API Reference</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>API Reference</h1>
<p>The API exposes endpoints for creating and listing resources. Each
endpoint accepts JSON and returns JSON responses with standard status
codes. This paragraph exists so the content scorer has enough text.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "endpoints for creating and listing")
	})

	t.Run("empty input returns EINVALID", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
	})
}
