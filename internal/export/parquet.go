package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/nao1215/rookeen/internal/model"
)

// AnalyzerRow is one row of the Parquet export.
type AnalyzerRow struct {
	Name             string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	AnalysisType     string  `parquet:"name=analysis_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ProcessingTime   float64 `parquet:"name=processing_time, type=DOUBLE"`
	Confidence       float64 `parquet:"name=confidence, type=DOUBLE"`
	MetadataModel    string  `parquet:"name=metadata_model, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	MetadataLanguage string  `parquet:"name=metadata_language, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	// ResultsJSON is the results object encoded as JSON.
	ResultsJSON string `parquet:"name=results_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// AnalyzerRows converts analyzer results to Parquet rows.
func AnalyzerRows(results []model.AnalyzerResult) ([]AnalyzerRow, error) {
	rows := make([]AnalyzerRow, 0, len(results))
	for _, r := range results {
		encoded, err := resultsJSON(r.Results)
		if err != nil {
			return nil, fmt.Errorf("failed to encode results of %s: %w", r.Name, err)
		}
		rows = append(rows, AnalyzerRow{
			Name:             r.Name,
			AnalysisType:     string(r.AnalysisType),
			ProcessingTime:   r.ProcessingTime,
			Confidence:       r.Confidence,
			MetadataModel:    r.Metadata.Model,
			MetadataLanguage: r.Metadata.Language,
			ResultsJSON:      encoded,
		})
	}
	return rows, nil
}

// WriteParquet writes one row per analyzer to w.
func WriteParquet(w io.Writer, results []model.AnalyzerResult) error {
	rows, err := AnalyzerRows(results)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriterFromWriter(w, new(AnalyzerRow), 1)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row %s: %w", row.Name, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

func resultsJSON(results map[string]any) (string, error) {
	if results == nil {
		return "{}", nil
	}
	b, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
