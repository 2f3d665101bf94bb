package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateOutput(); err != nil {
		return err
	}
	return cv.validateLocales()
}

func (cv *configurationValidator) validateContent() error {
	repo := cv.config.Content.Repository
	if repo == nil {
		return nil
	}
	if strings.TrimSpace(repo.URL) == "" {
		return ferrors.ValidationError("content repository url is required").Build()
	}
	if repo.Depth < 0 {
		return ferrors.ValidationError("content repository depth must not be negative").
			WithContext("depth", repo.Depth).Build()
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	switch cv.config.Output.Format {
	case nav.FormatJSON, nav.FormatYAML:
		return nil
	default:
		return ferrors.ValidationError(fmt.Sprintf("unsupported output format %q (use json or yaml)", cv.config.Output.Format)).Build()
	}
}

func (cv *configurationValidator) validateLocales() error {
	seen := make(map[string]struct{}, len(cv.config.Locales))
	for _, l := range cv.config.Locales {
		if _, dup := seen[l.Tag]; dup {
			return ferrors.ValidationError("duplicate locale").WithContext("tag", displayTag(l.Tag)).Build()
		}
		seen[l.Tag] = struct{}{}

		if err := validateTag(l.Tag); err != nil {
			return err
		}
		if l.Lang != "" {
			if _, err := language.Parse(l.Lang); err != nil {
				return ferrors.ValidationError("invalid locale lang").
					WithCause(err).WithContext("tag", displayTag(l.Tag)).WithContext("lang", l.Lang).Build()
			}
		}
	}
	return nil
}

// validateTag requires a non-root tag to be a canonical BCP 47 tag, since it
// becomes a case-sensitive URL segment.
func validateTag(tag string) error {
	if tag == "" {
		return nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return ferrors.ValidationError("invalid locale tag").WithCause(err).WithContext("tag", tag).Build()
	}
	if canonical := parsed.String(); canonical != tag {
		return ferrors.ValidationError(fmt.Sprintf("locale tag %q is not canonical, use %q", tag, canonical)).
			WithContext("tag", tag).Build()
	}
	return nil
}

func displayTag(tag string) string {
	if tag == "" {
		return "root"
	}
	return tag
}
