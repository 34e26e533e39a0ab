package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nao1215/rookeen/internal/database"
	"github.com/nao1215/rookeen/internal/pipeline"
)

// NewSnapshot converts a finished request to a database snapshot.
func NewSnapshot(out *pipeline.Outcome) (*database.Snapshot, error) {
	if out == nil || out.Report == nil || out.Parsed == nil {
		return nil, errors.New("snapshot needs a report and a parsed document")
	}
	r := out.Report

	snap := &database.Snapshot{
		Document: database.DocumentRecord{
			RunID:       r.RunID,
			Title:       out.Document.Title,
			Text:        out.Parsed.Text,
			Language:    r.Language.Code,
			Model:       r.Language.Model,
			Digest:      out.Document.Digest,
			SourceType:  r.Source.Type,
			SourceValue: r.Source.Value,
		},
		Tokens:    make([]database.TokenRecord, len(out.Parsed.Tokens)),
		Analyzers: make([]database.AnalyzerRecord, len(r.Analyzers)),
	}

	for i, t := range out.Parsed.Tokens {
		snap.Tokens[i] = database.TokenRecord{
			Index:      i,
			Sent:       t.Sent,
			Text:       t.Text,
			Lemma:      t.Lemma,
			UPOS:       t.UPOS,
			XPOS:       t.XPOS,
			Dep:        t.Dep,
			Head:       t.Head,
			IsStop:     t.IsStop,
			IsAlpha:    t.IsAlpha,
			IsPunct:    t.IsPunct,
			Whitespace: t.Whitespace(),
			Start:      t.Start,
			End:        t.End,
			EntType:    t.EntType,
			EntIOB:     t.EntIOB,
		}
	}

	for i, a := range r.Analyzers {
		encoded, err := resultsJSON(a.Results)
		if err != nil {
			return nil, fmt.Errorf("failed to encode results of %s: %w", a.Name, err)
		}
		snap.Analyzers[i] = database.AnalyzerRecord{
			Name:           a.Name,
			AnalysisType:   string(a.AnalysisType),
			ProcessingTime: a.ProcessingTime,
			Confidence:     a.Confidence,
			ResultsJSON:    encoded,
			Error:          a.Metadata.Error,
		}
	}
	return snap, nil
}

// WriteDocBin replaces the file at path with a snapshot of out.
func WriteDocBin(ctx context.Context, path string, out *pipeline.Outcome) error {
	snap, err := NewSnapshot(out)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	db, err := database.Open(path, database.DefaultOptions())
	if err != nil {
		return err
	}
	if _, err := db.SaveSnapshot(ctx, snap); err != nil {
		_ = db.Close()
		return err
	}
	return db.Close()
}
