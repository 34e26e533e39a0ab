package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/config"
)

// Output flags that are not configuration keys.
const (
	flagOutput        = "output"
	flagStdout        = "stdout"
	flagExportParquet = "export-parquet"
	flagExportCoNLLU  = "export-conllu"
	flagExportTokens  = "export-tokens-json"
	flagExportDocBin  = "export-docbin"
)

// addAnalysisFlags registers the flags shared by analyze, analyze-file
// and batch. Defaults are left at their zero values: only flags the
// user sets end up in the command-line configuration layer.
func addAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	// Language
	f.String("lang", "", "Force the document language (ISO 639-1 code) instead of detecting it")
	f.String("languages", "", "Comma-separated language models to load at startup")
	f.Bool("models-auto-download", false, "Install missing language models automatically (default true)")
	f.Bool("no-models-auto-download", false, "Fail instead of installing missing language models")

	// Analyzers
	f.StringSlice("enable", nil, "Run only these analyzers (repeatable)")
	f.StringSlice("disable", nil, "Skip these analyzers (repeatable, wins over --enable)")
	f.Bool("enable-sentiment", false, "Run the sentiment analyzer")
	f.Bool("enable-embeddings", false, "Run the embeddings analyzer")
	f.String("embeddings-backend", "", "Embeddings backend: small-local, large-local or remote-api (default small-local)")
	f.String("embeddings-model", "", "Embeddings model name (default: the backend's model)")
	f.Bool("embeddings-preload", false, "Load the embeddings backend at startup")
	f.String("openai-api-key", "", "API key for the remote-api backend (default: OPENAI_API_KEY)")

	// Fetching
	f.Float64("rate-limit", 0, "Maximum requests per second (default 0.5)")
	f.String("robots", "", "robots.txt policy: respect or ignore (default respect)")
	f.Float64("timeout", 0, "Time budget of one request in seconds (default 30)")
	f.String("proxy", "", "Proxy URL; host:port is treated as a SOCKS5 proxy")
	f.String("user-agent", "", "User-Agent header for HTTP requests")

	// Output
	f.String("format", "", "Report format: json, csv, table or md (default json)")
	f.StringP(flagOutput, "o", "", "Base path of the report and exports (a trailing .json is stripped)")
	f.String("output-dir", "", "Directory for reports when --output is not given (default results)")
	f.Bool(flagStdout, false, "Print the report to stdout instead of writing files")
	f.Bool(flagExportParquet, false, "Write analyzer results as Parquet")
	f.Bool(flagExportCoNLLU, false, "Write the parse as CoNLL-U")
	f.String("conllu-engine", "", "CoNLL-U serializer: auto, high-quality or basic (default auto)")
	f.Bool(flagExportTokens, false, "Write tokens, entities and sentences as JSON")
	f.Bool(flagExportDocBin, false, "Write a binary document snapshot")
}

// changed returns a pointer to the flag value when the user set the
// flag, and nil otherwise.
func changed[T any](flags *pflag.FlagSet, name string, get func(string) (T, error)) (*T, error) {
	if !flags.Changed(name) {
		return nil, nil //nolint:nilnil // nil means the layer does not supply the key
	}
	v, err := get(name)
	if err != nil {
		return nil, apperr.Wrap(apperr.Usage, err, "")
	}
	return &v, nil
}

// cliLayer builds the command-line configuration layer from the flags
// the user set.
func cliLayer(flags *pflag.FlagSet) (config.Layer, error) {
	layer := config.Layer{Name: "cli"}

	strs := []struct {
		flag string
		dst  **string
	}{
		{"lang", &layer.Language},
		{"embeddings-backend", &layer.EmbeddingsBackend},
		{"embeddings-model", &layer.EmbeddingsModel},
		{"openai-api-key", &layer.OpenAIAPIKey},
		{"robots", &layer.Robots},
		{"proxy", &layer.Proxy},
		{"user-agent", &layer.UserAgent},
		{"format", &layer.Format},
		{"output-dir", &layer.OutputDir},
		{"conllu-engine", &layer.ConllUEngine},
	}
	for _, s := range strs {
		v, err := changed(flags, s.flag, flags.GetString)
		if err != nil {
			return config.Layer{}, err
		}
		*s.dst = v
	}

	bools := []struct {
		flag string
		dst  **bool
	}{
		{"enable-sentiment", &layer.EnableSentiment},
		{"enable-embeddings", &layer.EnableEmbeddings},
		{"embeddings-preload", &layer.EmbeddingsPreload},
	}
	for _, b := range bools {
		v, err := changed(flags, b.flag, flags.GetBool)
		if err != nil {
			return config.Layer{}, err
		}
		*b.dst = v
	}

	floats := []struct {
		flag string
		dst  **float64
	}{
		{"rate-limit", &layer.RateLimit},
		{"timeout", &layer.TimeoutSeconds},
	}
	for _, n := range floats {
		v, err := changed(flags, n.flag, flags.GetFloat64)
		if err != nil {
			return config.Layer{}, err
		}
		*n.dst = v
	}

	lists := []struct {
		flag string
		dst  **[]string
	}{
		{"enable", &layer.Enable},
		{"disable", &layer.Disable},
	}
	for _, l := range lists {
		v, err := changed(flags, l.flag, flags.GetStringSlice)
		if err != nil {
			return config.Layer{}, err
		}
		*l.dst = v
	}

	if flags.Changed("languages") {
		raw, err := flags.GetString("languages")
		if err != nil {
			return config.Layer{}, apperr.Wrap(apperr.Usage, err, "")
		}
		layer.LanguagesPreload = config.Ptr(config.SplitList(raw))
	}

	autoDownload, err := modelsAutoDownload(flags)
	if err != nil {
		return config.Layer{}, err
	}
	layer.ModelsAutoDownload = autoDownload

	if flags.Lookup("concurrency") != nil {
		v, err := changed(flags, "concurrency", flags.GetInt)
		if err != nil {
			return config.Layer{}, err
		}
		layer.Concurrency = v
	}

	return layer, nil
}

// modelsAutoDownload resolves the --models-auto-download and
// --no-models-auto-download pair.
func modelsAutoDownload(flags *pflag.FlagSet) (*bool, error) {
	on, err := changed(flags, "models-auto-download", flags.GetBool)
	if err != nil {
		return nil, err
	}
	off, err := changed(flags, "no-models-auto-download", flags.GetBool)
	if err != nil {
		return nil, err
	}
	switch {
	case on != nil && off != nil:
		return nil, apperr.New(apperr.Usage, "--models-auto-download and --no-models-auto-download are mutually exclusive")
	case off != nil:
		return config.Ptr(!*off), nil
	default:
		return on, nil
	}
}

// outputFlags are the per-invocation output settings.
type outputFlags struct {
	output  string
	stdout  bool
	parquet bool
	conllu  bool
	tokens  bool
	docbin  bool
}

// readOutputFlags reads the output flags. Commands without a flag read
// it as unset.
func readOutputFlags(flags *pflag.FlagSet) outputFlags {
	boolFlag := func(name string) bool {
		v, err := flags.GetBool(name)
		return err == nil && v
	}
	output, _ := flags.GetString(flagOutput) //nolint:errcheck // missing flag reads as ""
	return outputFlags{
		output:  output,
		stdout:  boolFlag(flagStdout),
		parquet: boolFlag(flagExportParquet),
		conllu:  boolFlag(flagExportCoNLLU),
		tokens:  boolFlag(flagExportTokens),
		docbin:  boolFlag(flagExportDocBin),
	}
}
