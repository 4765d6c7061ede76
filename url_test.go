package docmd_test

import (
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "strips query string",
			raw:  "https://h/p/x?version=2",
			want: "https://h/p/x",
		},
		{
			name: "strips fragment",
			raw:  "https://h/p/x#section",
			want: "https://h/p/x",
		},
		{
			name: "strips trailing slash",
			raw:  "https://h/p/",
			want: "https://h/p",
		},
		{
			name: "root path normalizes to bare host",
			raw:  "https://h/",
			want: "https://h",
		},
		{
			name: "plain URL unchanged",
			raw:  "https://h/p/x",
			want: "https://h/p/x",
		},
		{
			name:    "rejects non-http scheme",
			raw:     "ftp://h/p",
			wantErr: true,
		},
		{
			name:    "rejects missing host",
			raw:     "/relative/only",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := docmd.NormalizeURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := docmd.NormalizeURL("https://h/p/x/?q=1#frag")
	require.NoError(t, err)

	twice, err := docmd.NormalizeURL(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSplitFragment(t *testing.T) {
	t.Parallel()

	base, frag := docmd.SplitFragment("https://h/p/x#section-2")
	assert.Equal(t, "https://h/p/x", base)
	assert.Equal(t, "section-2", frag)

	base, frag = docmd.SplitFragment("https://h/p/x")
	assert.Equal(t, "https://h/p/x", base)
	assert.Empty(t, frag)
}

func TestScope_Contains(t *testing.T) {
	t.Parallel()

	scope, err := docmd.NewScope("https://h/p/")
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"url under prefix", "https://h/p/x", true},
		{"scope root itself", "https://h/p", true},
		{"sibling path", "https://h/q", false},
		{"prefix not segment aligned", "https://h/project", false},
		{"different host", "https://other/p/x", false},
		{"deeper nesting", "https://h/p/x/y/z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scope.Contains(tt.url))
		})
	}
}

func TestScope_WholeDomainRoot(t *testing.T) {
	t.Parallel()

	scope, err := docmd.NewScope("https://h/")
	require.NoError(t, err)

	assert.True(t, scope.Contains("https://h/anything"))
	assert.True(t, scope.Contains("https://h"))
	assert.False(t, scope.Contains("https://other/anything"))
}

func TestScope_RelPath(t *testing.T) {
	t.Parallel()

	scope, err := docmd.NewScope("https://h/docs")
	require.NoError(t, err)

	assert.Equal(t, "api/users", scope.RelPath("https://h/docs/api/users"))
	assert.Equal(t, "", scope.RelPath("https://h/docs"))
}

func TestExclusionSet_SegmentBoundary(t *testing.T) {
	t.Parallel()

	set, err := docmd.NewExclusionSet([]string{"https://h/p/admin/"})
	require.NoError(t, err)

	assert.True(t, set.Excluded("https://h/p/admin/x"), "child of excluded prefix")
	assert.True(t, set.Excluded("https://h/p/admin"), "exact match")
	assert.False(t, set.Excluded("https://h/p/administrator"), "prefix must respect segment boundary")
	assert.False(t, set.Excluded("https://h/p/other"))
}

func TestExclusionSet_Nil(t *testing.T) {
	t.Parallel()

	var set *docmd.ExclusionSet
	assert.False(t, set.Excluded("https://h/p/x"))
	assert.Equal(t, 0, set.Len())
}

func TestExclusionSet_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := docmd.NewExclusionSet([]string{"not a url"})
	require.Error(t, err)
	assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := &docmd.Config{
		BaseURL:   "https://example.com/docs/",
		OutputDir: "docs",
		Profile:   docmd.ProfileStandard,
	}
	require.NoError(t, valid.Validate())

	missing := &docmd.Config{OutputDir: "docs"}
	assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(missing.Validate()))

	badProfile := &docmd.Config{BaseURL: "https://x", OutputDir: "docs", Profile: "turbo"}
	assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(badProfile.Validate()))
}
