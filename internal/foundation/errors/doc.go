// Package errors provides classified error primitives used across docnav.
//
// A ClassifiedError carries a category (config, validation, filesystem, ...),
// a severity and a retry hint. The CLI adapter maps categories to process
// exit codes so that a fatal configuration problem, such as a missing module
// category directory, aborts the build with a stable status.
//
// Example usage:
//
//	err := errors.ConfigError("category directory not readable").
//		WithContext("category", "core").
//		WithCause(readErr).
//		Build()
package errors
