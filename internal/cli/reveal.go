package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/reveal"
)

// RevealOptions holds flags for the reveal command.
type RevealOptions struct {
	*RootOptions
	Scroll   float64
	Fraction float64 // negative means the configured fraction
}

// RevealResult is the result of the reveal command.
type RevealResult struct {
	Scroll    float64      `json:"scroll"`
	Threshold float64      `json:"threshold"`
	Revealed  int          `json:"revealed"`
	Total     int          `json:"total"`
	Instant   string       `json:"instant"`
	Elapsed   string       `json:"elapsed"`
	Latest    *LatestEvent `json:"latest,omitempty"`
}

// LatestEvent identifies the most recently revealed event.
type LatestEvent struct {
	ID        string  `json:"id"`
	Time      string  `json:"time"`
	Magnitude float64 `json:"magnitude"`
}

// NewRevealCommand creates the reveal command.
func NewRevealCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RevealOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reveal <source>",
		Short: "Show which events are revealed at a scroll offset",
		Long: `Lay out a catalog and report the reveal state for a scroll offset.

Events are revealed once their time position passes a line drawn at
--fraction of the viewport height below the top of the viewport.

Example:
  aftershock reveal aftershocks.csv --scroll 4200
  aftershock reveal aftershocks.csv --scroll 0 --fraction 0.5 --viewport-height 900`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Scroll, "scroll", 0, "scroll offset in pixels from the top of the chart")
	cmd.Flags().Float64Var(&opts.Fraction, "fraction", -1, "reveal line as a fraction of the viewport height (default from config)")

	return cmd
}

func runReveal(opts *RevealOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Fraction > 1 {
		return outputError(formatter, ErrCodeGeneric, fmt.Sprintf("--fraction must be at most 1, got %g", opts.Fraction), nil)
	}

	doc, cfg, err := buildTimeline(opts.RootOptions, cmd, formatter, source, "")
	if err != nil {
		return err
	}

	fraction := cfg.Reveal.Fraction
	if opts.Fraction >= 0 {
		fraction = opts.Fraction
	}

	threshold := reveal.Threshold(opts.Scroll, cfg.Chart.ViewportHeight, fraction)
	st := reveal.At(doc, threshold)

	result := RevealResult{
		Scroll:    opts.Scroll,
		Threshold: st.Threshold,
		Revealed:  st.Revealed,
		Total:     st.Total,
		Instant:   event.FormatInstant(st.Instant),
		Elapsed:   st.Label,
	}
	if st.Latest != nil {
		result.Latest = &LatestEvent{
			ID:        st.Latest.ID,
			Time:      st.Latest.RawTime,
			Magnitude: st.Latest.Magnitude,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.Heading(fmt.Sprintf("%d of %d event(s) revealed", result.Revealed, result.Total))
	formatter.Field("threshold", fmt.Sprintf("%gpx", result.Threshold))
	formatter.Field("time", result.Instant)
	formatter.Field("elapsed", result.Elapsed)
	if result.Latest != nil {
		formatter.Field("latest", fmt.Sprintf("M%.1f at %s", result.Latest.Magnitude, result.Latest.Time))
	}
	return nil
}
