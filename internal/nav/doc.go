// Package nav builds the localized sidebar navigation of the documentation site.
//
// A build scans the module documentation directories (one per category),
// extracts each file's first top-level heading as its title, and assembles a
// tree of pages and collapsible sections for every configured locale. Link
// paths are prefixed with the locale tag and display text is resolved against
// the locale's overrides.
//
// The package is synchronous and keeps no state between builds: a Scanner
// memoizes directory listings for the duration of one build only.
package nav
