// Package workspace manages the directories content repositories are cloned
// into, supporting both ephemeral and persistent modes.
//
// Ephemeral mode creates a timestamped directory (e.g. docnav-20251214-122336-*)
// for a single build and removes it afterwards.
//
// Persistent mode uses a fixed directory that survives between builds, so the
// watch loop can fetch into an existing clone instead of cloning again.
package workspace
