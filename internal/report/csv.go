package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/nao1215/rookeen/internal/model"
)

// csvFixedColumns come before the flattened result columns.
var csvFixedColumns = []string{
	"name", "analysis_type", "processing_time", "confidence", "language", "model", "error",
}

// CSVWriter outputs one row per analyzer. Scalar results become
// columns named after their dotted keys, in sorted order; analyzers
// without a key leave the cell empty.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header row and one row per analyzer.
func (w *CSVWriter) Write(report *model.AnalysisReport) (int, error) {
	flat := make([]map[string]string, len(report.Analyzers))
	union := make(map[string]struct{})
	for i, a := range report.Analyzers {
		f, err := Flatten(a.Results)
		if err != nil {
			return 0, err
		}
		flat[i] = f
		for k := range f {
			union[k] = struct{}{}
		}
	}
	resultColumns := sortedKeys(union)

	cw := &countingWriter{w: w.output}
	out := csv.NewWriter(cw)

	header := append([]string{}, csvFixedColumns...)
	for _, k := range resultColumns {
		header = append(header, "results."+k)
	}
	if err := out.Write(header); err != nil {
		return cw.n, err
	}

	for i, a := range report.Analyzers {
		row := []string{
			a.Name,
			string(a.AnalysisType),
			strconv.FormatFloat(a.ProcessingTime, 'f', 6, 64),
			strconv.FormatFloat(a.Confidence, 'f', -1, 64),
			a.Metadata.Language,
			a.Metadata.Model,
			a.Metadata.Error,
		}
		for _, k := range resultColumns {
			row = append(row, flat[i][k])
		}
		if err := out.Write(row); err != nil {
			return cw.n, err
		}
	}
	out.Flush()
	return cw.n, out.Error()
}
