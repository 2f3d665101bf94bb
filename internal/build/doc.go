// Package build provides the navigation build pipeline. The CLI commands and
// the watch loop all run builds through BuildService.
//
// A build resolves the content source, scans the module categories once with
// a fresh nav.Scanner, assembles one tree per configured locale and writes the
// sidebar file together with the build manifest.
package build
