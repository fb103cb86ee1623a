package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aftershock/internal/render"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Output      string
	Annotations string
}

// RenderSummary is the result of the render command.
type RenderSummary struct {
	Output string  `json:"output"`
	Events int     `json:"events"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render the timeline to SVG",
		Long: `Lay out a catalog and draw it as an SVG timeline.

The default output file is the source's base name with a .svg extension,
written to the current directory.

Example:
  aftershock render aftershocks.csv
  aftershock render - -o sequence.svg < catalog.tsv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output SVG path (default <source>.svg)")
	cmd.Flags().StringVarP(&opts.Annotations, "annotations", "a", "", "CUE annotation overlay")

	return cmd
}

func runRender(opts *RenderOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, cfg, err := buildTimeline(opts.RootOptions, cmd, formatter, source, opts.Annotations)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	style := render.NewStyle(cfg.Style, cfg.Chart.Margin)
	if err := render.SVG(&buf, doc, style); err != nil {
		return outputError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(source, ".svg")
	}
	if err := writeFile(formatter, output, buf.Bytes()); err != nil {
		return err
	}

	summary := RenderSummary{
		Output: output,
		Events: len(doc.Events),
		Width:  doc.Chart.Width,
		Height: doc.Chart.Height + 2*style.Margin,
	}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "✓ Rendered %d event(s) to %s (%gx%g)\n",
		summary.Events, summary.Output, summary.Width, summary.Height)
	return nil
}
