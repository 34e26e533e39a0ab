package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/pipeline"
	"github.com/nao1215/rookeen/internal/report"
)

// Options selects what a Manager writes.
type Options struct {
	// Format of the main report: json, csv, table or md.
	Format string

	Parquet bool
	CoNLLU  bool
	Tokens  bool
	DocBin  bool

	// Engine is the CoNLL-U engine.
	Engine Engine
}

// Any reports whether an optional export is enabled.
func (o Options) Any() bool {
	return o.Parquet || o.CoNLLU || o.Tokens || o.DocBin
}

// Manager writes the files of finished requests.
type Manager struct {
	opts   Options
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager.
func NewManager(opts Options, options ...ManagerOption) *Manager {
	if opts.Format == "" {
		opts.Format = report.FormatJSON
	}
	if opts.Engine == "" {
		opts.Engine = EngineAuto
	}
	m := &Manager{opts: opts}
	for _, opt := range options {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Options returns the options of m.
func (m *Manager) Options() Options {
	return m.opts
}

// WriteAll writes the main report and every enabled export under base
// and returns the written paths. Export failures do not stop the
// remaining exports; they are joined into the returned error.
func (m *Manager) WriteAll(ctx context.Context, base string, out *pipeline.Outcome) ([]string, error) {
	path, err := m.WriteReport(base, out)
	if err != nil {
		return nil, err
	}
	paths, err := m.Export(ctx, base, out)
	return append([]string{path}, paths...), err
}

// WriteReport writes the main report to base plus the format extension.
func (m *Manager) WriteReport(base string, out *pipeline.Outcome) (string, error) {
	path := ReportPath(base, m.opts.Format)
	err := writeFile(path, func(w io.Writer) error {
		rw, err := report.New(m.opts.Format, w)
		if err != nil {
			return err
		}
		_, err = rw.Write(out.Report)
		return err
	})
	if err != nil {
		return "", apperr.Wrap(apperr.Generic, err, "failed to write report "+path)
	}
	m.logger.Debug("report written", "path", path, "format", m.opts.Format)
	return path, nil
}

// Export writes the enabled exports of out under base.
func (m *Manager) Export(ctx context.Context, base string, out *pipeline.Outcome) ([]string, error) {
	type job struct {
		name string
		path string
		run  func(path string) error
	}

	var jobs []job
	if m.opts.Parquet {
		jobs = append(jobs, job{"parquet", base + ParquetExt, func(path string) error {
			return writeFile(path, func(w io.Writer) error {
				return WriteParquet(w, out.Report.Analyzers)
			})
		}})
	}
	if m.opts.CoNLLU {
		if m.opts.Engine.Resolve() == EngineBasic {
			m.logger.Warn("basic CoNLL-U engine writes parser labels without Universal Dependencies normalization",
				"recommendation", "use --conllu-engine high-quality")
		}
		jobs = append(jobs, job{"conllu", base + CoNLLUExt, func(path string) error {
			if out.Parsed == nil {
				return errNoParse
			}
			return writeFile(path, func(w io.Writer) error {
				return WriteCoNLLU(w, out.Parsed, m.opts.Engine)
			})
		}})
	}
	if m.opts.Tokens {
		jobs = append(jobs, job{"tokens", base + TokensExt, func(path string) error {
			if out.Parsed == nil {
				return errNoParse
			}
			return writeFile(path, func(w io.Writer) error {
				return WriteTokensJSON(w, out.Parsed)
			})
		}})
	}
	if m.opts.DocBin {
		jobs = append(jobs, job{"docbin", base + DocBinExt, func(path string) error {
			if err := ensureDir(path); err != nil {
				return err
			}
			return WriteDocBin(ctx, path, out)
		}})
	}

	var (
		paths []string
		errs  []error
	)
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := j.run(j.path); err != nil {
			m.logger.Error("export failed", "export", j.name, "path", j.path, "error", err)
			errs = append(errs, fmt.Errorf("%s export: %w", j.name, err))
			continue
		}
		m.logger.Debug("export written", "export", j.name, "path", j.path)
		paths = append(paths, j.path)
	}

	if err := errors.Join(errs...); err != nil {
		return paths, apperr.Wrap(apperr.Generic, err, "")
	}
	return paths, nil
}

var errNoParse = errors.New("no parsed document")

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// writeFile creates path with its directory and hands it to fn.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
