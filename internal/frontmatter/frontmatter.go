// Package frontmatter separates YAML frontmatter from the markdown body of
// module documentation files.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a content file split into its frontmatter and body.
type Document struct {
	// Frontmatter holds the raw YAML between the delimiters, without them.
	Frontmatter []byte
	Body        []byte
	// Had reports whether the file started with a frontmatter block.
	Had bool
}

// Split separates YAML frontmatter (`---` delimited) from the markdown body.
//
// If the document does not start with a delimiter line, Had is false and Body
// is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Document{Frontmatter: []byte{}, Body: rest[len(open):], Had: true}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline still ends the block.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			end := len(rest) - len(nl+"---")
			return Document{Frontmatter: rest[:end+len(nl)], Body: []byte{}, Had: true}, nil
		}
		return Document{Body: content}, ErrMissingClosingDelimiter
	}

	return Document{
		Frontmatter: rest[:idx+len(nl)],
		Body:        rest[idx+len(closeSeq):],
		Had:         true,
	}, nil
}

// Fields parses the frontmatter YAML into a map. An absent or empty block
// yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	if len(bytes.TrimSpace(d.Frontmatter)) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(d.Frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
