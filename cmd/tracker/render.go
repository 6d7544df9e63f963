package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"tracker/internal/clock"
	"tracker/internal/config"
	"tracker/internal/filters"
	"tracker/internal/logging"
	"tracker/internal/orders"
	"tracker/internal/reports"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	templatePath string
	ordersPath   string
	dataPath     string
	configPath   string
	timeZone     string
	now          string
	output       string
}

// renderData is what templates see: the report fields plus any extra data
type renderData struct {
	reports.ReportData
	Data map[string]any
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template against orders loaded from YAML",
		Long: `Render executes an HTML template with the tracker filters. Without
--template the built-in order report is rendered. Orders come from a YAML list
of order records, extra values from --data are available as .Data.`,
		Example: `  tracker render --orders orders.yaml
  tracker render -t card.html --orders orders.yaml --tz America/Chicago --now 2025-01-15T09:30:00-06:00 -o card.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}
			return runRender(cmd.Context(), opts, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.templatePath, "template", "t", "", "Template file (default: built-in order report)")
	flags.StringVar(&opts.ordersPath, "orders", "", "YAML file with a list of order records")
	flags.StringVar(&opts.dataPath, "data", "", "YAML file with extra template data")
	flags.StringVar(&opts.configPath, "config", "", "Tracker config file")
	flags.StringVar(&opts.timeZone, "tz", "", "Display time zone (overrides config)")
	flags.StringVar(&opts.now, "now", "", "Render as if it were this time, e.g. 2025-01-15T09:30:00Z")
	flags.StringVarP(&opts.output, "output", "o", "", "Write output to file instead of stdout")

	return cmd
}

func runRender(ctx context.Context, opts *renderOptions, out io.Writer) error {
	logger := logging.GetLogger("render")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.timeZone != "" {
		cfg.TimeZone = opts.timeZone
	}

	c, err := renderClock(cfg, opts.now)
	if err != nil {
		return err
	}

	tmpl, err := loadTemplate(opts.templatePath, filters.New(c).FuncMap())
	if err != nil {
		return err
	}

	var list []*orders.Order
	if opts.ordersPath != "" {
		if list, err = orders.LoadFile(opts.ordersPath); err != nil {
			return err
		}
	}

	extra := map[string]any{}
	if opts.dataPath != "" {
		raw, err := os.ReadFile(opts.dataPath)
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &extra); err != nil {
			return fmt.Errorf("failed to parse data file %s: %w", opts.dataPath, err)
		}
	}

	generator := reports.NewOrderReportGenerator(nil, nil, nil, c, cfg.StackName)
	data := renderData{
		ReportData: generator.CollectReportData(ctx, list),
		Data:       extra,
	}

	logger.Info().
		Str("template", tmpl.Name()).
		Int("orders", len(list)).
		Str("zone", c.Location().String()).
		Msg("Rendering template")

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

func renderClock(cfg *config.Config, now string) (clock.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if now == "" {
		return clock.NewSystem(loc), nil
	}

	ts, err := clock.ParseTimestamp(now)
	if err != nil {
		return nil, err
	}
	if ts.IsZero() {
		return clock.NewSystem(loc), nil
	}
	return clock.NewFixed(ts.Resolve(loc), loc), nil
}

func loadTemplate(path string, funcs template.FuncMap) (*template.Template, error) {
	if path == "" {
		return reports.ParseTemplate(funcs)
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tmpl, nil
}
