package lint

import "git.home.luguber.info/inful/docnav/internal/nav"

// Linter applies rules to module documentation files.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	return &Linter{cfg: cfg, rules: DefaultRules()}
}

// Lint checks every module file of every declared category below the
// scanner's content root.
func (l *Linter) Lint(scanner *nav.Scanner) (*Result, error) {
	files, err := scanner.All()
	if err != nil {
		return nil, err
	}
	return l.LintFiles(files), nil
}

// LintFiles checks the given module files in order.
func (l *Linter) LintFiles(files []nav.ModuleFile) *Result {
	result := &Result{Issues: []Issue{}}
	for _, file := range files {
		result.FilesTotal++
		for _, rule := range l.rules {
			for _, issue := range rule.Check(file) {
				// Skip info and warnings in quiet mode
				if l.cfg.Quiet && issue.Severity != SeverityError {
					continue
				}
				result.Issues = append(result.Issues, issue)
			}
		}
	}
	return result
}
