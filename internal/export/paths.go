package export

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/report"
)

// File suffixes of the optional exports.
const (
	ParquetExt = ".parquet"
	CoNLLUExt  = ".conllu"
	TokensExt  = ".tokens.json"
	DocBinExt  = ".docbin"
)

// BasePath returns the path all output files share, without extension.
// An explicit output wins; a trailing ".json" is dropped from it.
// Otherwise the base is <outputDir>/<slug>_<unix seconds>.
func BasePath(output, outputDir string, src model.SourceInfo, now time.Time) string {
	if output != "" {
		if strings.HasSuffix(strings.ToLower(output), ".json") {
			return output[:len(output)-len(".json")]
		}
		return output
	}
	name := Slug(src) + "_" + strconv.FormatInt(now.Unix(), 10)
	return filepath.Join(outputDir, name)
}

// Slug names the output files of a source: the host of a URL, the file
// name without extension, or "stdin". Characters other than letters
// and digits become underscores.
func Slug(src model.SourceInfo) string {
	var raw string
	switch src.Type {
	case model.SourceURL:
		raw = src.Domain
		if u, err := url.Parse(src.Value); err == nil && u.Hostname() != "" {
			raw = u.Hostname()
		}
		raw = strings.TrimPrefix(raw, "www.")
	case model.SourceFile:
		base := filepath.Base(src.Value)
		raw = strings.TrimSuffix(base, filepath.Ext(base))
	default:
		raw = model.SourceStdin
	}

	slug := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, raw)
	if strings.Trim(slug, "_") == "" {
		return "output"
	}
	return slug
}

// ReportPath returns the main report file for format.
func ReportPath(base, format string) string {
	return base + report.Extension(format)
}
