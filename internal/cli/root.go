package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "json" | "text"
	ConfigPath     string
	MetricsFile    string
	ViewportWidth  float64
	ViewportHeight float64

	// Logger is set by the root command. Subcommands built on their own
	// fall back to a handler on the command's stderr.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the aftershock CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "aftershock",
		Short: "aftershock - beeswarm timelines for earthquake sequences",
		Long: `Lay out an aftershock catalog as a vertical beeswarm timeline.

Events are placed on a time axis at 15 pixels per minute and spread
sideways by a collision relaxation so circles sized by magnitude do
not overlap. The layout is written as JSON for a web front end or
rendered directly to SVG.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			slog.SetDefault(opts.Logger)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	cmd.PersistentFlags().Float64Var(&opts.ViewportWidth, "viewport-width", 0, "viewport width in pixels (overrides config)")
	cmd.PersistentFlags().Float64Var(&opts.ViewportHeight, "viewport-height", 0, "viewport height in pixels (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewLayoutCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewRevealCommand(opts))

	return cmd
}

// newLogger builds the text handler used by every command: Debug when
// verbose, Info otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if o.Logger == nil {
		o.Logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	}
	return o.Logger
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
