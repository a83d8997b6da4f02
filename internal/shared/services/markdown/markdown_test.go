package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("Export **spins** forever<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>spins</strong>")
	assert.NotContains(t, out, "<script>")

	out, err = svc.ToHTMLSanitized("see https://status.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://status.example.com"`)
	assert.Contains(t, out, `target="_blank"`)
}

func TestExcerpt(t *testing.T) {
	svc := NewMarkdownService()

	assert.Equal(t, "Title Body with code", svc.Excerpt("# Title\n\nBody with `code`", 0))
	assert.Equal(t, "Production is…", svc.Excerpt("Production is **down** for all tenants", 13))
	assert.Equal(t, "Tom & Jerry", svc.Excerpt("Tom & Jerry", 50))
}
