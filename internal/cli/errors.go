package cli

import (
	"errors"

	"github.com/roach88/aftershock/internal/annotate"
	"github.com/roach88/aftershock/internal/ingest"
	"github.com/roach88/aftershock/internal/timeline"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeWriteFailed = "E007" // File write error

	ErrCodeIngest     = "E010" // Source could not be fetched or parsed
	ErrCodeNoData     = "E011" // No record survived normalization
	ErrCodeAnnotation = "E012" // Annotation overlay invalid
	ErrCodeConfig     = "E013" // Config file invalid
	ErrCodeOverlaps   = "E014" // Overlapping circles found under --strict
)

// classifyError maps a pipeline error to its CLI error code and a details
// value for verbose and JSON output.
func classifyError(err error) (string, interface{}) {
	var ingestErr *ingest.Error
	var annErr *annotate.Error

	switch {
	case errors.As(err, &ingestErr):
		return ErrCodeIngest, map[string]string{
			"source": ingestErr.Source,
			"op":     ingestErr.Op,
		}
	case errors.Is(err, timeline.ErrNoData):
		return ErrCodeNoData, nil
	case errors.As(err, &annErr):
		details := map[string]interface{}{"field": annErr.Field}
		if annErr.Pos.IsValid() {
			details["file"] = annErr.Pos.Filename()
			details["line"] = annErr.Pos.Line()
			details["column"] = annErr.Pos.Column()
		}
		return ErrCodeAnnotation, details
	default:
		return ErrCodeGeneric, nil
	}
}

// outputError reports err through the formatter and returns the matching
// ExitError.
func outputError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(ExitCommandError, code+": "+message, nil)
}
