package nav

import "strings"

// PagePath returns the unlocalized link of a content path: "/" for the
// empty path, "/<path>/" otherwise.
func PagePath(contentPath string) string {
	contentPath = strings.Trim(contentPath, "/")
	if contentPath == "" {
		return "/"
	}
	return "/" + contentPath + "/"
}

// LocalizeLink inserts "/<lang>/" after the leading slash of link unless lang
// is empty or link already starts with that language segment. Applying it
// twice with the same lang returns the same link.
func LocalizeLink(link, lang string) string {
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	lang = strings.Trim(lang, "/")
	if lang == "" {
		return link
	}
	prefix := "/" + lang
	if link == prefix || strings.HasPrefix(link, prefix+"/") {
		return link
	}
	return prefix + link
}

// LocalePath is the key a locale is registered under in the site config.
func LocalePath(lang string) string {
	return LocalizeLink("/", lang)
}
