package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsMarkdown(t *testing.T) {
	md := SuggestionsMarkdown("Ár", []string{"árbol", "árboles"})
	assert.Contains(t, md, "1. **ár**bol\n")
	assert.Contains(t, md, "2. **ár**boles\n")

	assert.Contains(t, SuggestionsMarkdown("zz", nil), "_No suggestions._")
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("**casa**")
	require.NoError(t, err)
	assert.Contains(t, out, "casa")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
