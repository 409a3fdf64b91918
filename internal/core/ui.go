package core

import "io"

// UI defines the interface for user-facing output of the CLI.
type UI interface {
	// Section prints a section header.
	Section(title string)
	// Title prints a main title.
	Title(title string)
	// Success prints a success message.
	Success(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Warning prints a warning message.
	Warning(msg string)
	// Error prints an error message.
	Error(msg string)
	// Table renders rows, the first one being the header.
	Table(rows [][]string) error
	// Println prints a line to standard output.
	Println(args ...interface{})
	// WithWriter returns a new UI instance writing to the specified writer.
	WithWriter(w io.Writer) UI
}
