package cli

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/aftershock/internal/config"
	"github.com/roach88/aftershock/internal/ingest"
	"github.com/roach88/aftershock/internal/metrics"
	"github.com/roach88/aftershock/internal/timeline"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.ViewportWidth > 0 {
		cfg.Chart.ViewportWidth = opts.ViewportWidth
	}
	if opts.ViewportHeight > 0 {
		cfg.Chart.ViewportHeight = opts.ViewportHeight
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildTimeline runs the pipeline for one source. Failures are reported
// through formatter and returned as an ExitError.
func buildTimeline(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter,
	source, annotationsPath string) (*timeline.Document, config.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, cfg, outputError(formatter, ErrCodeConfig, err.Error(), nil)
	}

	log := opts.logger(cmd)
	builder := timeline.NewBuilder(cfg, log)
	builder.Fetcher = &ingest.Fetcher{
		Client: ingest.NewHTTPClient(cfg.Ingest.Timeout),
		Stdin:  cmd.InOrStdin(),
	}

	formatter.VerboseLog("Loading %s", source)
	doc, err := builder.Build(cmd.Context(), source, annotationsPath)
	if err != nil {
		log.Error("build failed", "source", source, "error", err)
		code, details := classifyError(err)
		return nil, cfg, outputError(formatter, code, err.Error(), details)
	}

	if opts.MetricsFile != "" {
		rec := metrics.New()
		rec.Observe(doc)
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, cfg, outputError(formatter, ErrCodeWriteFailed, err.Error(), nil)
		}
		formatter.VerboseLog("Wrote metrics to %s", opts.MetricsFile)
	}

	return doc, cfg, nil
}

// defaultOutputPath derives an output file name from a source: the base
// name with its extension replaced by ext.
func defaultOutputPath(source, ext string) string {
	name := ""
	switch {
	case source == ingest.Stdin:
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		if u, err := url.Parse(source); err == nil {
			name = path.Base(u.Path)
		}
	default:
		name = filepath.Base(source)
	}
	if name == "" || name == "/" || name == "." {
		name = "timeline"
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}

// writeFile writes data to path, reporting failures as E007.
func writeFile(formatter *OutputFormatter, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return outputError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
	}
	return nil
}
