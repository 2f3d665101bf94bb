package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadings_ATXAndSetext(t *testing.T) {
	body := []byte("# Battery\n\nText.\n\n## Options\n\nOther\n=====\n")

	headings := Headings(body)
	require.Len(t, headings, 3)

	assert.Equal(t, Heading{Level: 1, Text: "Battery", Line: 1}, headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Options", Line: 5}, headings[1])
	assert.Equal(t, 1, headings[2].Level)
	assert.Equal(t, "Other", headings[2].Text)
	assert.Equal(t, 7, headings[2].Line)
	assert.True(t, headings[2].Setext)
}

func TestHeadings_StripsInlineMarkup(t *testing.T) {
	headings := Headings([]byte("# The `git_branch` *module*\n"))
	require.Len(t, headings, 1)
	assert.Equal(t, "The git_branch module", headings[0].Text)
}

func TestHeadings_IgnoresFencedCode(t *testing.T) {
	body := []byte("```sh\n# not a heading\n```\n\n# Real\n")
	headings := Headings(body)
	require.Len(t, headings, 1)
	assert.Equal(t, "Real", headings[0].Text)
	assert.Equal(t, 5, headings[0].Line)
}

func TestFirstH1(t *testing.T) {
	h, ok := FirstH1([]byte("## Sub\n\n# Main\n"))
	require.True(t, ok)
	assert.Equal(t, "Main", h.Text)

	_, ok = FirstH1([]byte("no headings here\n"))
	assert.False(t, ok)
}
