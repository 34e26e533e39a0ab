package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/model"
)

// StdinName is the stream name used for standard input.
const StdinName = "stdin"

// ReadLocal reads a text or HTML file. HTML is recognised by the .html
// and .htm extensions.
func ReadLocal(path string) (Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, apperr.Wrap(apperr.IO, fmt.Errorf("%w: %s", ErrNotFound, path), "")
		}
		return Document{}, apperr.Wrap(apperr.IO, err, "")
	}

	origin := Origin{
		Kind:      model.SourceFile,
		Value:     path,
		FetchedAt: time.Now().UTC(),
	}

	var page Page
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		page, err = ExtractHTML(bytes.NewReader(data))
		if err != nil {
			return Document{}, apperr.Wrap(apperr.IO, err, "failed to parse "+path)
		}
	default:
		page = Page{
			Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Text:  string(data),
		}
	}
	if page.Title == "" {
		page.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc := NewDocument(origin, page.Title, page.Text)
	if doc.Blank() {
		return Document{}, apperr.Wrap(apperr.IO, fmt.Errorf("%w: %s", ErrEmptyInput, path), "")
	}
	return doc, nil
}

// ReadStream reads all of r as plain text. name identifies the stream
// in the report, normally StdinName.
func ReadStream(r io.Reader, name string) (Document, error) {
	if name == "" {
		name = StdinName
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, apperr.Wrap(apperr.IO, err, "failed to read "+name)
	}

	origin := Origin{
		Kind:      model.SourceStdin,
		Value:     name,
		FetchedAt: time.Now().UTC(),
	}
	doc := NewDocument(origin, name, string(data))
	if doc.Blank() {
		return Document{}, apperr.Wrap(apperr.IO, fmt.Errorf("%w: %s", ErrEmptyInput, name), "")
	}
	return doc, nil
}
