package source

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/rookeen/internal/model"
)

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Untitled"

var (
	// ErrEmptyInput is returned when the text is blank.
	ErrEmptyInput = errors.New("input contains no text")
	// ErrNotFound is returned when a local file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrDisallowed is returned when robots.txt forbids the URL.
	ErrDisallowed = errors.New("disallowed by robots.txt")
	// ErrHTTPStatus is returned for unsuccessful HTTP responses.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Origin records where a document came from.
type Origin struct {
	// Kind is model.SourceURL, model.SourceFile or model.SourceStdin.
	Kind string

	// Value is the URL, the file path or the stream name.
	Value string

	FetchedAt time.Time

	// Domain is the URL host, empty for local input.
	Domain string
}

// Info converts the origin into the report's source block.
func (o Origin) Info() model.SourceInfo {
	info := model.NewSourceInfo(o.Kind, o.Value, o.FetchedAt)
	info.Domain = o.Domain
	return info
}

// Document is acquired text ready for analysis.
type Document struct {
	Origin Origin
	Title  string

	// Text is NFC-normalized.
	Text string

	// Digest is the hex SHA3-256 of Text.
	Digest string

	// Language is the detected or forced language code, empty until
	// WithLanguage is called.
	Language string
}

// NewDocument normalizes text and computes its digest. A blank title
// becomes DefaultTitle.
func NewDocument(origin Origin, title, text string) Document {
	text = Normalize(text)
	title = strings.TrimSpace(norm.NFC.String(title))
	if title == "" {
		title = DefaultTitle
	}
	return Document{
		Origin: origin,
		Title:  title,
		Text:   text,
		Digest: Digest(text),
	}
}

// WithLanguage returns a copy of d with the language set.
func (d Document) WithLanguage(code string) Document {
	d.Language = code
	return d
}

// Blank reports whether the document has no visible text.
func (d Document) Blank() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Normalize converts text to NFC and unifies line endings.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// Digest returns the hex SHA3-256 of text.
func Digest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
