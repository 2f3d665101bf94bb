package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	doc, err := Split([]byte("---\n# yaml comment\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("# yaml comment\nkey: value\n"), doc.Frontmatter)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	doc, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("# Title\n"), doc.Body)

	fields, err := doc.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: Battery\n---"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.Body)

	fields, err := doc.Fields()
	require.NoError(t, err)
	require.Equal(t, "Battery", fields["title"])
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	doc, err := Split(input)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, doc.Had)
	require.Equal(t, input, doc.Body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	doc, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("key: value\r\n"), doc.Frontmatter)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestFields_InvalidYAML(t *testing.T) {
	doc := Document{Frontmatter: []byte("key: [unclosed\n"), Had: true}
	_, err := doc.Fields()
	require.Error(t, err)
}
