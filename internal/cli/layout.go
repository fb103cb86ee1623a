package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aftershock/internal/timeline"
)

// LayoutOptions holds flags for the layout command.
type LayoutOptions struct {
	*RootOptions
	Output      string // output file path
	Annotations string // CUE overlay path
}

// LayoutSummary is reported when the document goes to a file.
type LayoutSummary struct {
	Output   string  `json:"output"`
	Events   int     `json:"events"`
	Dropped  int     `json:"dropped"`
	Height   float64 `json:"height"`
	Overlaps int     `json:"overlaps"`
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LayoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "layout <source>",
		Short: "Compute event positions and write the JSON layout document",
		Long: `Compute the beeswarm layout of a catalog and write it as JSON.

The source may be a file path, an http(s) URL or "-" for standard input.
Without --output the document is written to standard output.

Example:
  aftershock layout aftershocks.csv -o layout.json
  aftershock layout https://example.org/catalog.csv -a overlay.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&opts.Annotations, "annotations", "a", "", "CUE annotation overlay")

	return cmd
}

func runLayout(opts *LayoutOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, _, err := buildTimeline(opts.RootOptions, cmd, formatter, source, opts.Annotations)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := timeline.WriteJSON(&buf, doc); err != nil {
		return outputError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	if opts.Output == "" {
		if formatter.Format == "json" {
			return formatter.Success(json.RawMessage(buf.Bytes()))
		}
		_, err := formatter.Writer.Write(buf.Bytes())
		return err
	}

	if err := writeFile(formatter, opts.Output, buf.Bytes()); err != nil {
		return err
	}

	summary := LayoutSummary{
		Output:   opts.Output,
		Events:   len(doc.Events),
		Dropped:  doc.Report.Dropped(),
		Height:   doc.Chart.Height,
		Overlaps: doc.Overlaps,
	}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "✓ Laid out %d event(s), %d dropped, chart height %gpx\n",
		summary.Events, summary.Dropped, summary.Height)
	fmt.Fprintf(formatter.Writer, "Wrote layout to %s\n", summary.Output)
	return nil
}
