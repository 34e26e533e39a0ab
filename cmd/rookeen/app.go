package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/rookeen/internal/analyzer"
	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/config"
	"github.com/nao1215/rookeen/internal/embedding"
	"github.com/nao1215/rookeen/internal/export"
	"github.com/nao1215/rookeen/internal/log"
	"github.com/nao1215/rookeen/internal/nlp"
	"github.com/nao1215/rookeen/internal/pipeline"
	"github.com/nao1215/rookeen/internal/report"
	"github.com/nao1215/rookeen/internal/source"
)

// dotEnvFile is loaded into the environment before the env layer is read.
const dotEnvFile = ".env"

// app holds the resources of one CLI invocation.
type app struct {
	cfg          config.Config
	out          outputFlags
	runID        string
	logger       *slog.Logger
	store        *nlp.Store
	embeddings   *embedding.Pool
	registry     *analyzer.Registry
	fetcher      *source.Fetcher
	orchestrator *pipeline.Orchestrator
	exporter     *export.Manager
}

// loadConfig resolves the configuration of cmd from its flags, the
// environment and the config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cli, err := cliLayer(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}

	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return config.Config{}, err
	}
	env, err := config.EnvLayer(nil)
	if err != nil {
		return config.Config{}, err
	}

	file := config.Layer{Name: "file"}
	path, err := config.FindConfigFile(getGlobalString(cmd, flagConfig))
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		if file, err = config.LoadFileLayer(path); err != nil {
			return config.Config{}, err
		}
	}

	return config.Resolve(cli, env, file, config.DefaultLayer())
}

// newApp builds the shared resources for an analysis command.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel, getVerboseFlag(cmd))
	if err != nil {
		return nil, apperr.Wrap(apperr.Config, err, "")
	}
	runID := log.NewRunID()
	logger := log.New(cmd.ErrOrStderr(), log.Options{
		Level:   level,
		RunID:   runID,
		TraceID: getGlobalString(cmd, flagTraceID),
	})
	slog.SetDefault(logger)

	a := &app{
		cfg:    cfg,
		out:    readOutputFlags(cmd.Flags()),
		runID:  runID,
		logger: logger,
	}

	a.store, err = nlp.NewStore(cfg.ModelDir,
		nlp.WithAutoDownload(cfg.ModelsAutoDownload),
		nlp.WithStoreLogger(logger),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Model, err, "")
	}

	a.embeddings = embedding.NewPool(embedding.NewDefaultRegistry(), embedding.Options{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.EmbeddingsBaseURL,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.MaxRetries,
	}, embedding.WithPoolLogger(logger))

	a.registry = analyzer.NewRegistry()
	if err := analyzer.RegisterBuiltins(a.registry, analyzer.Deps{
		Embeddings:        a.embeddings,
		EmbeddingsBackend: cfg.EmbeddingsBackend,
		EmbeddingsModel:   cfg.EmbeddingsModel,
		Secrets:           []string{cfg.OpenAIAPIKey},
		Logger:            logger,
	}); err != nil {
		return nil, err
	}

	fetchOpts := []source.Option{
		source.WithLimiter(source.NewLimiter(cfg.RateLimit)),
		source.WithRobots(cfg.Robots),
		source.WithMaxRetries(cfg.MaxRetries),
		source.WithUserAgent(cfg.UserAgent),
		source.WithProxy(proxyURL(cfg.Proxy)),
		source.WithTimeout(cfg.Timeout()),
		source.WithLogger(logger),
	}
	if len(cfg.Sites) > 0 {
		fetchOpts = append(fetchOpts, source.WithSiteSettings(func(host string) source.SiteSettings {
			site := cfg.Site(host)
			return source.SiteSettings{
				Cookie:    site.Cookie,
				UserAgent: site.UserAgent,
				Headers:   site.Headers,
			}
		}))
	}
	a.fetcher, err = source.NewFetcher(fetchOpts...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Config, err, "invalid fetch settings")
	}

	a.orchestrator = pipeline.New(a.registry, a.store,
		pipeline.WithLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithTimeout(cfg.Timeout()),
		pipeline.WithVersion(getVersion()),
		pipeline.WithRunID(runID),
	)

	engine, err := export.ParseEngine(cfg.ConllUEngine)
	if err != nil {
		return nil, apperr.Wrap(apperr.Config, err, "")
	}
	a.exporter = export.NewManager(export.Options{
		Format:  cfg.Format,
		Parquet: a.out.parquet,
		CoNLLU:  a.out.conllu,
		Tokens:  a.out.tokens,
		DocBin:  a.out.docbin,
		Engine:  engine,
	}, export.WithLogger(logger))

	return a, nil
}

// proxyURL turns a bare host:port into a SOCKS5 proxy URL.
func proxyURL(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "socks5://" + raw
}

// preload loads the configured language models and, when requested,
// the embeddings backend. Embeddings failures only log a warning.
func (a *app) preload(ctx context.Context) error {
	if err := a.store.Preload(ctx, a.cfg.LanguagesPreload); err != nil {
		return err
	}
	if a.cfg.EnableEmbeddings && a.cfg.EmbeddingsPreload {
		_ = a.embeddings.Preload(ctx, a.cfg.EmbeddingsBackend, a.cfg.EmbeddingsModel) //nolint:errcheck // logged by the pool
	}
	return nil
}

// template returns the language and analyzer selection shared by every
// request of the invocation.
func (a *app) template() pipeline.Request {
	lang := a.cfg.Language
	if lang == "" {
		lang = a.cfg.DefaultLanguage
	}
	return pipeline.Request{
		Language: lang,
		Selection: analyzer.Selection{
			Enable:  a.cfg.Enable,
			Disable: a.cfg.Disable,
			OptionalFlags: map[string]bool{
				analyzer.NameEmbeddings: a.cfg.EnableEmbeddings,
				analyzer.NameSentiment:  a.cfg.EnableSentiment,
			},
		},
	}
}

// checkSelection rejects an invalid analyzer selection before anything
// is fetched or loaded.
func (a *app) checkSelection() error {
	return a.orchestrator.CheckSelection(a.template().Selection)
}

// prepare applies the template to req.
func (a *app) prepare(req pipeline.Request) pipeline.Request {
	t := a.template()
	req.Language = t.Language
	req.Selection = t.Selection
	return req
}

// analyze runs one request and writes its outputs.
func (a *app) analyze(ctx context.Context, cmd *cobra.Command, req pipeline.Request) error {
	if err := a.checkSelection(); err != nil {
		return err
	}
	if err := a.preload(ctx); err != nil {
		return err
	}

	out, err := a.orchestrator.Analyze(ctx, a.prepare(req))
	if err != nil {
		return err
	}
	return a.emit(ctx, cmd, out)
}

// emit writes the report and exports of out, or prints the report when
// --stdout is set.
func (a *app) emit(ctx context.Context, cmd *cobra.Command, out *pipeline.Outcome) error {
	if a.out.stdout {
		if a.exporter.Options().Any() {
			a.logger.Warn("exports are skipped when printing to stdout")
		}
		w, err := report.New(a.cfg.Format, cmd.OutOrStdout())
		if err != nil {
			return apperr.Wrap(apperr.Usage, err, "")
		}
		if _, err := w.Write(out.Report); err != nil {
			return apperr.Wrap(apperr.IO, err, "failed to write report")
		}
		return nil
	}

	base := export.BasePath(a.out.output, a.cfg.OutputDir, out.Report.Source, time.Now())
	paths, err := a.exporter.WriteAll(ctx, base, out)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return err
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
