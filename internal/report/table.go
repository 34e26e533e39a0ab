package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/nao1215/rookeen/internal/model"
)

// TableWriter outputs a human-readable summary for terminals.
type TableWriter struct {
	baseWriter
}

// NewTableWriter creates a TableWriter.
func NewTableWriter(output io.Writer) *TableWriter {
	return &TableWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs a document table, an analyzer table and any warnings.
func (w *TableWriter) Write(report *model.AnalysisReport) (int, error) {
	cw := &countingWriter{w: w.output}

	fmt.Fprintf(cw, "%s %s report\n\n", report.Tool, report.Version)

	doc := tablewriter.NewTable(cw, tablewriter.WithHeaderAutoFormat(tw.Off))
	doc.Header("Property", "Value")
	for _, row := range documentRows(report) {
		if err := doc.Append(row); err != nil {
			return cw.n, err
		}
	}
	if err := doc.Render(); err != nil {
		return cw.n, err
	}
	fmt.Fprintln(cw)

	analyzers := tablewriter.NewTable(cw, tablewriter.WithHeaderAutoFormat(tw.Off))
	analyzers.Header("Analyzer", "Type", "Confidence", "Time", "Status")
	for _, a := range report.Analyzers {
		row := []string{
			a.Name,
			string(a.AnalysisType),
			strconv.FormatFloat(a.Confidence, 'f', 2, 64),
			formatSeconds(a.ProcessingTime),
			status(a),
		}
		if err := analyzers.Append(row); err != nil {
			return cw.n, err
		}
	}
	if err := analyzers.Render(); err != nil {
		return cw.n, err
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(cw, "\nWarnings:")
		for _, warning := range report.Warnings {
			fmt.Fprintf(cw, "  - %s\n", warning)
		}
	}
	return cw.n, nil
}

// documentRows are the property rows shared by table and markdown.
func documentRows(report *model.AnalysisReport) [][]string {
	rows := [][]string{
		{"Source", report.Source.Type + ": " + report.Source.Value},
		{"Title", report.Content.Title},
		{"Language", fmt.Sprintf("%s (%.2f, %s)", report.Language.Code, report.Language.Confidence, report.Language.Model)},
		{"Characters", humanize.Comma(int64(report.Content.CharCount))},
		{"Words", humanize.Comma(int64(report.Content.WordCount))},
		{"Analyzers", strconv.Itoa(len(report.Analyzers))},
		{"Total time", formatSeconds(report.Timing.TotalSeconds)},
	}
	if report.Source.Domain != "" {
		rows = slices.Insert(rows, 1, []string{"Domain", report.Source.Domain})
	}
	if report.RunID != "" {
		rows = append(rows, []string{"Run ID", report.RunID})
	}
	return rows
}

// status summarizes an analyzer result in one word.
func status(a model.AnalyzerResult) string {
	switch {
	case a.Metadata.Error != "":
		return "failed: " + truncateString(a.Metadata.Error, 40)
	case !a.Supported():
		return "unsupported"
	default:
		return "ok"
	}
}

// formatSeconds renders a duration given in seconds.
func formatSeconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond).String()
}

// truncateString shortens s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
