package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unb-mds/2025-2-Mural-UnB/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

func renderRunSummary(w io.Writer, res pipeline.ProcessResult, opts pipeline.ProcessOptions) {
	c := res.Counts
	lines := []string{
		titleStyle.Render("Lab directory ready"),
		fmt.Sprintf("%s %s", dimStyle.Render("Run:"), res.RunID),
		fmt.Sprintf("%s %d accepted, %d rejected", dimStyle.Render("Headers:"), c["headers"], c["rejectedHeaders"]),
		fmt.Sprintf("%s %d campus, %s unique", dimStyle.Render("Records:"), c["campus"], successStyle.Render(fmt.Sprint(c["records"]))),
		fmt.Sprintf("%s %s downloaded, %d reused, %s placeholders",
			dimStyle.Render("Images:"),
			successStyle.Render(fmt.Sprint(c["download"])),
			c["reused"],
			warnStyle.Render(fmt.Sprint(c["placeholder"])),
		),
	}
	if failures := failureLine(c); failures != "" {
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Fallbacks:"), failures))
	}
	for _, p := range []string{opts.CSVPath, opts.XLSXPath} {
		if p != "" {
			lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Wrote:"), p))
		}
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("took %.1fs", res.Timings["totalMs"]/1000)))

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

func failureLine(counts map[string]int) string {
	var parts []string
	for k, v := range counts {
		if kind, ok := strings.CutPrefix(k, "fail_"); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, v))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func renderExport(w io.Writer, runID string, rows int, out string) {
	fmt.Fprintf(w, "%s %d rows from run %s to %s\n", successStyle.Render("exported"), rows, dimStyle.Render(runID), out)
}

func renderPortfolio(w io.Writer, link pipeline.PortfolioLink, out string) {
	content := fmt.Sprintf("%s\n%s %s\n%s %s\n%s %s",
		titleStyle.Render("Portfolio downloaded"),
		dimStyle.Render("Link:"), link.Text,
		dimStyle.Render("URL:"), link.URL,
		dimStyle.Render("Saved:"), successStyle.Render(out),
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}
