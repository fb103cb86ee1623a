package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Check failure (overlaps found under --strict)
	ExitCommandError = 2 // Command error (unreadable source, no data, bad config, etc.)
)

// ExitError carries the process exit code out of a command's RunE.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError attaches an exit code to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not an ExitError come from cobra itself (unknown flags,
// wrong argument counts) and count as command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter renders command results as a JSON envelope or as text.
// Layout documents, SVG and check reports go to Writer; verbose progress
// lines go to ErrWriter so piped output stays clean.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
	TraceID   string // copied into every JSON response
}

// CLIResponse is the JSON envelope written under --format json.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // invocation correlation id
}

// CLIError is the error member of CLIResponse. Code is one of the
// ErrCode constants.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// newFormatter returns the formatter for one command invocation, with a
// fresh UUIDv7 trace id.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if id, err := uuid.NewV7(); err == nil {
		f.TraceID = id.String()
	}
	return f
}

// Success writes data inside an "ok" envelope, or prints it as-is in text
// mode.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error reports a failed command. Text mode prints details only under
// --verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Heading writes a bold section title in text mode. Styling is dropped
// automatically when Writer is not a terminal.
func (f *OutputFormatter) Heading(title string) {
	r := lipgloss.NewRenderer(f.Writer)
	fmt.Fprintln(f.Writer, r.NewStyle().Bold(true).Render(title))
}

// Field writes an indented "label: value" line in text mode.
func (f *OutputFormatter) Field(label string, value interface{}) {
	r := lipgloss.NewRenderer(f.Writer)
	fmt.Fprintf(f.Writer, "  %s %v\n", r.NewStyle().Faint(true).Width(14).Render(label+":"), value)
}

// VerboseLog prints a progress line to ErrWriter when --verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose || f.ErrWriter == nil {
		return
	}
	fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}
