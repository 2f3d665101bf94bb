// Package markdown provides goldmark based analysis of module documentation
// bodies. It does not render markdown.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a heading found in a markdown body.
type Heading struct {
	Level int
	Text  string
	// Line is 1-based relative to the parsed body; 0 when unknown.
	Line int
	// Setext is set for underlined headings ("Title\n=====").
	Setext bool
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Headings returns every heading of body in document order.
func Headings(body []byte) []Heading {
	root := ParseBody(body)

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level:  h.Level,
			Text:   strings.TrimSpace(inlineText(h, body)),
			Line:   headingLine(h, body),
			Setext: isSetext(h, body),
		})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

// FirstH1 returns the first level-one heading of body, if any.
func FirstH1(body []byte) (Heading, bool) {
	for _, h := range Headings(body) {
		if h.Level == 1 {
			return h, true
		}
	}
	return Heading{}, false
}

// inlineText concatenates the literal text below n, dropping inline markup.
func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		case *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

func headingLine(h *gmast.Heading, source []byte) int {
	if lines := h.Lines(); lines != nil && lines.Len() > 0 {
		return lineOf(source, lines.At(0).Start)
	}
	return 0
}

func isSetext(h *gmast.Heading, source []byte) bool {
	lines := h.Lines()
	if lines == nil || lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	lineStart := bytes.LastIndexByte(source[:start], '\n') + 1
	return !bytes.HasPrefix(bytes.TrimLeft(source[lineStart:start], " "), []byte("#"))
}

func lineOf(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
