package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/timeline"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Strict bool // fail when any circles still overlap
}

// CheckReport is the result of the check command.
type CheckReport struct {
	Source    string         `json:"source"`
	Total     int            `json:"total"`
	Kept      int            `json:"kept"`
	DroppedBy map[string]int `json:"dropped_by"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Minutes   int            `json:"minutes"`
	Height    float64        `json:"height"`
	Overlaps  int            `json:"overlaps"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <source>",
		Short: "Report how a catalog normalizes and lays out",
		Long: `Load a catalog, lay it out and report record counts, the time span,
the chart height and how many circle pairs still overlap.

With --strict the command exits with status 1 when any overlap remains.

Example:
  aftershock check aftershocks.csv
  aftershock check --strict --format json aftershocks.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any circles overlap")

	return cmd
}

func runCheck(opts *CheckOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, _, err := buildTimeline(opts.RootOptions, cmd, formatter, source, "")
	if err != nil {
		return err
	}

	report := CheckReport{
		Source: doc.Source,
		Total:  doc.Report.Total,
		Kept:   doc.Report.Kept,
		DroppedBy: map[string]int{
			string(event.DropTime):      doc.Report.DroppedBy(event.DropTime),
			string(event.DropMagnitude): doc.Report.DroppedBy(event.DropMagnitude),
		},
		Start:    event.FormatInstant(doc.Scale.Start),
		End:      event.FormatInstant(doc.Scale.End),
		Minutes:  doc.Scale.Minutes(),
		Height:   doc.Chart.Height,
		Overlaps: doc.Overlaps,
	}

	if opts.Strict && report.Overlaps > 0 {
		message := fmt.Sprintf("%d overlapping circle pair(s)", report.Overlaps)
		_ = formatter.Error(ErrCodeOverlaps, message, report)
		return WrapExitError(ExitFailure, ErrCodeOverlaps+": "+message, nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	outputCheckText(formatter, report, doc)
	return nil
}

func outputCheckText(formatter *OutputFormatter, report CheckReport, doc *timeline.Document) {
	formatter.Heading("Records")
	formatter.Field("total", report.Total)
	formatter.Field("kept", report.Kept)
	formatter.Field("bad time", report.DroppedBy[string(event.DropTime)])
	formatter.Field("bad magnitude", report.DroppedBy[string(event.DropMagnitude)])
	fmt.Fprintln(formatter.Writer)

	formatter.Heading("Chart")
	formatter.Field("start", report.Start)
	formatter.Field("end", report.End)
	formatter.Field("minutes", report.Minutes)
	formatter.Field("height", fmt.Sprintf("%gpx", report.Height))
	formatter.Field("radius", fmt.Sprintf("%g-%gpx", doc.Chart.RadiusRange.Min, doc.Chart.RadiusRange.Max))
	formatter.Field("magnitude", fmt.Sprintf("%g-%g", doc.Chart.MagnitudeMin, doc.Chart.MagnitudeMax))
	fmt.Fprintln(formatter.Writer)

	if report.Overlaps == 0 {
		fmt.Fprintln(formatter.Writer, "✓ No overlapping circles")
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %d overlapping circle pair(s)\n", report.Overlaps)
	}
}
