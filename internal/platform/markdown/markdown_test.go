package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sparks/internal/platform/markdown"
)

type noteMeta struct {
	ID     string `yaml:"id"`
	Mood   string `yaml:"mood"`
	Points int    `yaml:"points"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	rendered, err := markdown.RenderFrontmatter(noteMeta{ID: "r1", Mood: "Calm", Points: 30}, "# Sunrise walk\n")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rendered, "---\nid: r1\nmood: Calm\npoints: 30\n---\n"), rendered)

	var meta noteMeta
	body, err := markdown.SplitFrontmatter(rendered, &meta)
	require.NoError(t, err)
	require.Equal(t, noteMeta{ID: "r1", Mood: "Calm", Points: 30}, meta)
	require.Equal(t, "\n# Sunrise walk\n", body)
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	var meta noteMeta
	body, err := markdown.SplitFrontmatter("just text", &meta)
	require.NoError(t, err)
	require.Equal(t, "just text", body)
	require.Empty(t, meta.ID)
}

func TestSplitFrontmatterMissingClose(t *testing.T) {
	var meta noteMeta
	_, err := markdown.SplitFrontmatter("---\nid: r1\n", &meta)
	require.Error(t, err)
}

func TestManagedBlockApply(t *testing.T) {
	block := markdown.ManagedBlock{Start: "<!-- a -->", End: "<!-- b -->"}

	require.Equal(t, "<!-- a -->\nx\n<!-- b -->\n", block.Apply("", "x"))
	require.Equal(t, "intro\n\n<!-- a -->\nx\n<!-- b -->\n", block.Apply("intro", "x"))

	existing := "intro\n<!-- a -->\nold\n<!-- b -->\noutro\n"
	require.Equal(t, "intro\n<!-- a -->\nnew\n<!-- b -->\noutro\n", block.Apply(existing, "new"))
}
