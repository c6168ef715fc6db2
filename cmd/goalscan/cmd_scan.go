package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/reporting"
	"github.com/solarreach/goalscan/internal/spinner"
)

var scanFormats = []string{"text", "json", "junit", "markdown", "html"}

type scanOptions struct {
	paths  pathFlags
	format string
	output string
	strict bool
}

func newScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the project and report the status of every goal",
		Long: `Scan the project and report the status of every goal.

Every registered detector runs against the source tree and the results are
merged with the stored goals. Goals without a detector are reported as
warnings; detectors without a stored goal are appended.

Output formats:
  text      human-readable table (default)
  json      {"goals": [...]} as served by GET /api/goals/scan
  junit     JUnit XML for CI dashboards
  markdown  Markdown table
  html      standalone HTML page

With --strict the command exits with code 1 when any goal is not achieved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	opts.paths.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, junit, markdown, html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with code 1 when any goal is not achieved")

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions) error {
	if !validFormat(opts.format) {
		return fmt.Errorf("unknown format %q (expected one of %v)", opts.format, scanFormats)
	}

	cfg, err := opts.paths.loadConfig()
	if err != nil {
		return err
	}
	scanner, _, err := newScanner(cfg)
	if err != nil {
		return err
	}

	stop := spinner.Start(cmd.ErrOrStderr(), "Scanning "+scanner.Root())
	entries, err := scanner.Scan(cmd.Context())
	stop()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	color := opts.output == "" && spinner.IsTerminal(w) && os.Getenv("NO_COLOR") == ""
	if opts.output != "" {
		if dir := filepath.Dir(opts.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if err := renderReport(w, opts.format, scanner.Root(), entries, color); err != nil {
		return err
	}
	if opts.output != "" {
		slog.Info("report written", "path", opts.output, "format", opts.format)
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", opts.output) //nolint:errcheck
	}

	summary := reporting.Summarize(entries)
	if opts.strict && summary.NotAchieved > 0 {
		return &GoalFailureError{
			Message: fmt.Sprintf("%d of %d goal(s) not achieved", summary.NotAchieved, summary.Total),
		}
	}
	return nil
}

func renderReport(w io.Writer, format, root string, entries []models.ReportEntry, color bool) error {
	switch format {
	case "json":
		return writeJSONReport(w, entries)
	case "junit":
		return reporting.WriteJUnitXML(w, "goalscan", root, entries)
	case "markdown":
		_, err := io.WriteString(w, reporting.RenderMarkdown(entries))
		return err
	case "html":
		page, err := reporting.RenderHTML(entries)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	default:
		writeTextReport(w, root, entries, color)
		return nil
	}
}

func validFormat(f string) bool {
	for _, s := range scanFormats {
		if s == f {
			return true
		}
	}
	return false
}
