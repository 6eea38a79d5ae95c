// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by alerts and command output.
const (
	// Success marks a completed operation or a clean catalog.
	Success = "✓"

	// Warning marks a catalog issue or other non-fatal problem.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"
)
