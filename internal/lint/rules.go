package lint

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// DefaultRules returns the rules applied by NewLinter.
func DefaultRules() []Rule {
	return []Rule{
		&FrontmatterRule{},
		&MissingTitleRule{},
		&TitleMismatchRule{},
		&MultipleH1Rule{},
		&FilenameRule{},
	}
}

// body returns the markdown body of a module file and the number of lines
// that precede it in the file.
func body(content []byte) ([]byte, int) {
	doc, err := frontmatter.Split(content)
	if err != nil || !doc.Had {
		return content, 0
	}
	prefix := content[:len(content)-len(doc.Body)]
	return doc.Body, bytes.Count(prefix, []byte("\n"))
}

func issue(rule Rule, file nav.ModuleFile, severity Severity) Issue {
	return Issue{
		FilePath: file.Path,
		Page:     file.ID(),
		Severity: severity,
		Rule:     rule.Name(),
	}
}

// FrontmatterRule reports frontmatter blocks that cannot be separated from the
// body or do not parse as YAML.
type FrontmatterRule struct{}

// Name returns the rule identifier.
func (r *FrontmatterRule) Name() string { return "frontmatter" }

// Check validates the frontmatter block.
func (r *FrontmatterRule) Check(file nav.ModuleFile) []Issue {
	doc, err := frontmatter.Split(file.Content)
	if err != nil {
		is := issue(r, file, SeverityError)
		is.Line = 1
		is.Message = "Frontmatter is not closed"
		is.Explanation = `The file starts with "---" but has no closing "---" line.
The whole file is treated as body, so YAML keys may be read as content.`
		is.Fix = `Add a closing "---" line after the frontmatter`
		return []Issue{is}
	}
	if _, err := doc.Fields(); err != nil {
		is := issue(r, file, SeverityError)
		is.Line = 1
		is.Message = "Frontmatter is not valid YAML"
		is.Explanation = err.Error()
		return []Issue{is}
	}
	return nil
}

// MissingTitleRule reports files without any level-one heading. Their sidebar
// entry falls back to the file name.
type MissingTitleRule struct{}

// Name returns the rule identifier.
func (r *MissingTitleRule) Name() string { return "missing-title" }

// Check reports a file whose title fell back to the file name.
func (r *MissingTitleRule) Check(file nav.ModuleFile) []Issue {
	if !file.TitleFallback {
		return nil
	}
	b, _ := body(file.Content)
	if _, ok := markdown.FirstH1(b); ok {
		// Reported by TitleMismatchRule.
		return nil
	}
	is := issue(r, file, SeverityWarning)
	is.Message = "No level-one heading"
	is.Explanation = fmt.Sprintf("The sidebar shows the file name %q instead of a title.", file.Name)
	is.Fix = "Start the file with a heading such as: # " + file.Name
	return []Issue{is}
}

// TitleMismatchRule reports files where the sidebar title differs from the
// first level-one heading a markdown renderer sees. This happens with
// underlined headings, inline markup in the heading and "#" lines inside
// fenced code blocks.
type TitleMismatchRule struct{}

// Name returns the rule identifier.
func (r *TitleMismatchRule) Name() string { return "title-mismatch" }

// Check compares the extracted title with the rendered first heading.
func (r *TitleMismatchRule) Check(file nav.ModuleFile) []Issue {
	b, offset := body(file.Content)
	h1, ok := markdown.FirstH1(b)

	switch {
	case file.TitleFallback && ok:
		is := issue(r, file, SeverityWarning)
		is.Line = h1.Line + offset
		is.Message = fmt.Sprintf("Heading %q is not used as the sidebar title", h1.Text)
		is.Explanation = fmt.Sprintf(`Only "# Title" headings are used for the sidebar; the page is listed as %q.`, file.Title)
		is.Fix = "Rewrite the heading as: # " + h1.Text
		return []Issue{is}
	case !file.TitleFallback && !ok:
		is := issue(r, file, SeverityError)
		is.Message = fmt.Sprintf("Sidebar title %q does not come from a heading", file.Title)
		is.Explanation = `The first "# " line is not a heading when rendered, for example a shell
comment inside a fenced code block.`
		is.Fix = "Add a level-one heading before any code block"
		return []Issue{is}
	case ok && h1.Text != file.Title:
		is := issue(r, file, SeverityWarning)
		is.Line = h1.Line + offset
		is.Message = fmt.Sprintf("Sidebar title %q differs from rendered heading %q", file.Title, h1.Text)
		is.Explanation = "Inline markup in the heading is shown verbatim in the sidebar."
		is.Fix = "Remove inline markup from the heading or set an override for " + file.ID()
		return []Issue{is}
	}
	return nil
}

// MultipleH1Rule reports files with more than one level-one heading. Only the
// first one becomes the sidebar title.
type MultipleH1Rule struct{}

// Name returns the rule identifier.
func (r *MultipleH1Rule) Name() string { return "multiple-h1" }

// Check counts level-one headings.
func (r *MultipleH1Rule) Check(file nav.ModuleFile) []Issue {
	b, offset := body(file.Content)
	var issues []Issue
	seen := 0
	for _, h := range markdown.Headings(b) {
		if h.Level != 1 {
			continue
		}
		seen++
		if seen == 1 {
			continue
		}
		is := issue(r, file, SeverityInfo)
		is.Line = h.Line + offset
		is.Message = fmt.Sprintf("Additional level-one heading %q", h.Text)
		is.Fix = "Use ## for section headings"
		issues = append(issues, is)
	}
	return issues
}

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// FilenameRule validates that module file names make clean page identifiers.
type FilenameRule struct{}

// Name returns the rule identifier.
func (r *FilenameRule) Name() string { return "filename-conventions" }

// Check validates the file name of a module file.
func (r *FilenameRule) Check(file nav.ModuleFile) []Issue {
	if validName.MatchString(file.Name) {
		return nil
	}
	suggested := suggestName(file.Name)
	is := issue(r, file, SeverityWarning)
	is.Message = "File name is not a clean page identifier"
	is.Explanation = `The file name becomes part of the page link: ` + nav.PagePath(file.ID()) + `
Allowed characters: [a-z0-9-_]`
	if suggested != "" && suggested != file.Name {
		is.Fix = "Rename to: " + suggested + nav.ContentExt
	}
	return []Issue{is}
}

// suggestName lowercases name and replaces runs of invalid characters with
// hyphens.
func suggestName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r == '_' || r == '-' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-_")
}
