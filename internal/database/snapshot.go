package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

var (
	// ErrSnapshotNotFound is returned when no document has the requested id.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrNotExist is returned by Open when the file is missing and
	// CreateIfNotExists is false.
	ErrNotExist = errors.New("snapshot file does not exist")
)

// SnapshotDB is a snapshot file opened for reading or writing.
type SnapshotDB struct {
	db   *sql.DB
	path string
}

// Options configures SnapshotDB behavior.
type Options struct {
	// CreateIfNotExists creates the file and its directory if missing.
	CreateIfNotExists bool

	// EnableWAL switches the journal to write-ahead logging. WAL leaves
	// -wal and -shm files next to the database, so exports keep it off.
	EnableWAL bool
}

// DefaultOptions returns the options used for exports.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         false,
	}
}

// Open opens or creates the snapshot file at path.
func Open(path string, opts Options) (*SnapshotDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check snapshot path: %w", err)
		}
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file.
	dsn := path + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SnapshotDB{db: db, path: path}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return sdb, nil
}

// Path returns the file the snapshot lives in.
func (s *SnapshotDB) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SnapshotDB) Close() error {
	return s.db.Close()
}

func (s *SnapshotDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS document (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL,
		language TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		digest TEXT NOT NULL DEFAULT '',
		source_type TEXT NOT NULL DEFAULT '',
		source_value TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- One row per token, ordered by idx within a document
	CREATE TABLE IF NOT EXISTS tokens (
		doc_id INTEGER NOT NULL REFERENCES document(id),
		idx INTEGER NOT NULL,
		sent INTEGER NOT NULL,
		text TEXT NOT NULL,
		lemma TEXT NOT NULL,
		upos TEXT NOT NULL,
		xpos TEXT NOT NULL,
		dep TEXT NOT NULL,
		head INTEGER NOT NULL,
		is_stop INTEGER NOT NULL,
		is_alpha INTEGER NOT NULL,
		is_punct INTEGER NOT NULL,
		whitespace TEXT NOT NULL,
		start_offset INTEGER NOT NULL,
		end_offset INTEGER NOT NULL,
		ent_type TEXT NOT NULL DEFAULT '',
		ent_iob TEXT NOT NULL DEFAULT 'O',
		PRIMARY KEY (doc_id, idx)
	);

	CREATE TABLE IF NOT EXISTS analyzers (
		doc_id INTEGER NOT NULL REFERENCES document(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		analysis_type TEXT NOT NULL,
		processing_time REAL NOT NULL,
		confidence REAL NOT NULL,
		results_json TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (doc_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_analyzers_name ON analyzers(name);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// DocumentRecord is a row of the document table.
type DocumentRecord struct {
	ID          int64
	RunID       string
	Title       string
	Text        string
	Language    string
	Model       string
	Digest      string
	SourceType  string
	SourceValue string
	CreatedAt   time.Time
}

// TokenRecord is a row of the tokens table.
type TokenRecord struct {
	Index      int
	Sent       int
	Text       string
	Lemma      string
	UPOS       string
	XPOS       string
	Dep        string
	Head       int
	IsStop     bool
	IsAlpha    bool
	IsPunct    bool
	Whitespace string
	Start      int
	End        int
	EntType    string
	EntIOB     string
}

// AnalyzerRecord is a row of the analyzers table.
type AnalyzerRecord struct {
	Name           string
	AnalysisType   string
	ProcessingTime float64
	Confidence     float64
	// ResultsJSON is the analyzer's results object encoded as JSON.
	ResultsJSON string
	Error       string
}

// Snapshot is one document with its tokens and analyzer results.
type Snapshot struct {
	Document  DocumentRecord
	Tokens    []TokenRecord
	Analyzers []AnalyzerRecord
}

// SaveSnapshot stores snap in a single transaction and returns the new
// document id.
func (s *SnapshotDB) SaveSnapshot(ctx context.Context, snap *Snapshot) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	doc := snap.Document
	created := doc.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := tx.ExecContext(ctx, `
	INSERT INTO document (run_id, title, text, language, model, digest, source_type, source_value, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID, doc.Title, doc.Text, doc.Language, doc.Model, doc.Digest,
		doc.SourceType, doc.SourceValue, created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document id: %w", err)
	}

	if err = insertTokens(ctx, tx, id, snap.Tokens); err != nil {
		return 0, err
	}
	if err = insertAnalyzers(ctx, tx, id, snap.Analyzers); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, nil
}

func insertTokens(ctx context.Context, tx *sql.Tx, docID int64, tokens []TokenRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO tokens (doc_id, idx, sent, text, lemma, upos, xpos, dep, head,
		is_stop, is_alpha, is_punct, whitespace, start_offset, end_offset, ent_type, ent_iob)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare token insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tokens {
		iob := t.EntIOB
		if iob == "" {
			iob = "O"
		}
		if _, err := stmt.ExecContext(ctx,
			docID, t.Index, t.Sent, t.Text, t.Lemma, t.UPOS, t.XPOS, t.Dep, t.Head,
			t.IsStop, t.IsAlpha, t.IsPunct, t.Whitespace, t.Start, t.End, t.EntType, iob,
		); err != nil {
			return fmt.Errorf("failed to insert token %d: %w", t.Index, err)
		}
	}
	return nil
}

func insertAnalyzers(ctx context.Context, tx *sql.Tx, docID int64, analyzers []AnalyzerRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO analyzers (doc_id, position, name, analysis_type, processing_time, confidence, results_json, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare analyzer insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range analyzers {
		results := a.ResultsJSON
		if results == "" {
			results = "{}"
		}
		if _, err := stmt.ExecContext(ctx,
			docID, i, a.Name, a.AnalysisType, a.ProcessingTime, a.Confidence, results, a.Error,
		); err != nil {
			return fmt.Errorf("failed to insert analyzer %s: %w", a.Name, err)
		}
	}
	return nil
}

// LoadSnapshot reads the snapshot with the given document id.
func (s *SnapshotDB) LoadSnapshot(ctx context.Context, id int64) (*Snapshot, error) {
	var (
		snap    Snapshot
		created string
	)
	err := s.db.QueryRowContext(ctx, `
	SELECT id, run_id, title, text, language, model, digest, source_type, source_value, created_at
	FROM document WHERE id = ?`, id).Scan(
		&snap.Document.ID,
		&snap.Document.RunID,
		&snap.Document.Title,
		&snap.Document.Text,
		&snap.Document.Language,
		&snap.Document.Model,
		&snap.Document.Digest,
		&snap.Document.SourceType,
		&snap.Document.SourceValue,
		&created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	snap.Document.CreatedAt = parseTimestamp(created)

	if snap.Tokens, err = s.loadTokens(ctx, id); err != nil {
		return nil, err
	}
	if snap.Analyzers, err = s.loadAnalyzers(ctx, id); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Latest returns the most recently stored snapshot.
func (s *SnapshotDB) Latest(ctx context.Context) (*Snapshot, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM document ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest document: %w", err)
	}
	return s.LoadSnapshot(ctx, id)
}

func (s *SnapshotDB) loadTokens(ctx context.Context, docID int64) ([]TokenRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT idx, sent, text, lemma, upos, xpos, dep, head, is_stop, is_alpha, is_punct,
		whitespace, start_offset, end_offset, ent_type, ent_iob
	FROM tokens WHERE doc_id = ? ORDER BY idx`, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	var tokens []TokenRecord
	for rows.Next() {
		var t TokenRecord
		if err := rows.Scan(
			&t.Index, &t.Sent, &t.Text, &t.Lemma, &t.UPOS, &t.XPOS, &t.Dep, &t.Head,
			&t.IsStop, &t.IsAlpha, &t.IsPunct, &t.Whitespace, &t.Start, &t.End,
			&t.EntType, &t.EntIOB,
		); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *SnapshotDB) loadAnalyzers(ctx context.Context, docID int64) ([]AnalyzerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT name, analysis_type, processing_time, confidence, results_json, error
	FROM analyzers WHERE doc_id = ? ORDER BY position`, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyzers: %w", err)
	}
	defer rows.Close()

	var analyzers []AnalyzerRecord
	for rows.Next() {
		var a AnalyzerRecord
		if err := rows.Scan(
			&a.Name, &a.AnalysisType, &a.ProcessingTime, &a.Confidence, &a.ResultsJSON, &a.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analyzer: %w", err)
		}
		analyzers = append(analyzers, a)
	}
	return analyzers, rows.Err()
}

// ListDocuments returns every document in the file without tokens or
// text, oldest first.
func (s *SnapshotDB) ListDocuments(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, run_id, title, language, model, digest, source_type, source_value, created_at
	FROM document ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentRecord
	for rows.Next() {
		var (
			d       DocumentRecord
			created string
		)
		if err := rows.Scan(
			&d.ID, &d.RunID, &d.Title, &d.Language, &d.Model, &d.Digest,
			&d.SourceType, &d.SourceValue, &created,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.CreatedAt = parseTimestamp(created)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// parseTimestamp parses the stored RFC 3339 time. SQLite's own
// CURRENT_TIMESTAMP format is accepted too.
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
