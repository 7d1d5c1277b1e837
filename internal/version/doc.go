// Package version exposes build metadata injected with -ldflags and the
// cobra command that prints it.
package version
