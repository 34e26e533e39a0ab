package report

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/rookeen/internal/model"
)

// MarkdownWriter outputs reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAnalyzers(md, report)
	w.writePOSChart(md, report)
	w.writeDetails(md, report)
	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1(report.Content.Title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   documentRows(report),
	})
	md.PlainText("")

	for _, warning := range report.Warnings {
		md.Warningf("%s", warning)
		md.PlainText("")
	}
	if failed := report.FailedAnalyzers(); len(failed) > 0 {
		md.Cautionf("%d analyzer(s) failed: %v", len(failed), failed)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeAnalyzers(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Analyzers")
	md.PlainText("")

	if len(report.Analyzers) == 0 {
		md.PlainText("No analyzers were run.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Analyzers))
	for i, a := range report.Analyzers {
		rows[i] = []string{
			"`" + a.Name + "`",
			string(a.AnalysisType),
			strconv.FormatFloat(a.Confidence, 'f', 2, 64),
			formatSeconds(a.ProcessingTime),
			status(a),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Analyzer", "Type", "Confidence", "Time", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePOSChart draws the part-of-speech distribution when the pos
// analyzer ran.
func (w *MarkdownWriter) writePOSChart(md *markdown.Markdown, report *model.AnalysisReport) {
	pos, ok := report.Analyzer(string(model.AnalysisPOS))
	if !ok {
		return
	}
	counts := intCounts(pos.Results["upos_counts"])
	if len(counts) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Part-of-speech distribution"),
		piechart.WithShowData(true),
	)
	for _, tag := range sortedKeys(counts) {
		chart.LabelAndIntValue(tag, uint64(counts[tag])) //nolint:gosec // counts are positive
	}

	md.H2("Part of speech")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDetails lists the scalar results of every analyzer.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Results")
	md.PlainText("")

	for _, a := range report.Analyzers {
		md.PlainText("### " + a.Name)
		md.PlainText("")

		flat, err := Flatten(a.Results)
		if err != nil || len(flat) == 0 {
			md.PlainText("No scalar results.")
			md.PlainText("")
			continue
		}
		items := make([]string, 0, len(flat))
		for _, k := range sortedKeys(flat) {
			items = append(items, "**"+k+"**: "+truncateString(flat[k], 80))
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.AnalysisReport) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by %s %s from %s of text*",
		report.Tool, report.Version, humanize.Bytes(uint64(report.Content.CharCount))) //nolint:gosec // counts are non-negative
}
