package nav

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

// headingPattern matches a level-one ATX heading: one '#', whitespace, text.
var headingPattern = regexp.MustCompile(`^#[ \t]+(\S.*)$`)

// ExtractTitle returns the text of the first level-one heading in content.
// When no heading exists the base name of filename without its extension is
// returned and fallback is true. A leading YAML frontmatter block is skipped.
func ExtractTitle(content []byte, filename string) (title string, fallback bool) {
	body := content
	if doc, err := frontmatter.Split(content); err == nil {
		body = doc.Body
	}

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), false
		}
	}
	return fileTitle(filename), true
}

func fileTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
