package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/config"
)

func TestCLILayer(t *testing.T) {
	t.Parallel()

	t.Run("unset flags leave keys empty", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Parse(nil); err != nil {
			t.Fatal(err)
		}
		layer, err := cliLayer(cmd.Flags())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if layer.Format != nil || layer.Language != nil || layer.RateLimit != nil || layer.ModelsAutoDownload != nil {
			t.Errorf("expected an empty layer, got %+v", layer)
		}
	})

	t.Run("set flags fill keys", func(t *testing.T) {
		t.Parallel()

		cmd := NewBatchCmd()
		err := cmd.Flags().Parse([]string{
			"--lang", "de",
			"--languages", "en, fr",
			"--enable", "pos", "--enable", "ner",
			"--disable", "keywords",
			"--enable-sentiment",
			"--rate-limit", "2.5",
			"--timeout", "10",
			"--format", "md",
			"--no-models-auto-download",
			"--concurrency", "4",
			"--conllu-engine", "basic",
		})
		if err != nil {
			t.Fatal(err)
		}
		layer, err := cliLayer(cmd.Flags())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if layer.Language == nil || *layer.Language != "de" {
			t.Errorf("unexpected language %v", layer.Language)
		}
		if layer.LanguagesPreload == nil || !reflect.DeepEqual(*layer.LanguagesPreload, []string{"en", "fr"}) {
			t.Errorf("unexpected preload %v", layer.LanguagesPreload)
		}
		if layer.Enable == nil || !reflect.DeepEqual(*layer.Enable, []string{"pos", "ner"}) {
			t.Errorf("unexpected enable %v", layer.Enable)
		}
		if layer.Disable == nil || !reflect.DeepEqual(*layer.Disable, []string{"keywords"}) {
			t.Errorf("unexpected disable %v", layer.Disable)
		}
		if layer.EnableSentiment == nil || !*layer.EnableSentiment {
			t.Error("expected sentiment enabled")
		}
		if layer.RateLimit == nil || *layer.RateLimit != 2.5 {
			t.Errorf("unexpected rate limit %v", layer.RateLimit)
		}
		if layer.TimeoutSeconds == nil || *layer.TimeoutSeconds != 10 {
			t.Errorf("unexpected timeout %v", layer.TimeoutSeconds)
		}
		if layer.Format == nil || *layer.Format != "md" {
			t.Errorf("unexpected format %v", layer.Format)
		}
		if layer.ModelsAutoDownload == nil || *layer.ModelsAutoDownload {
			t.Errorf("expected auto download off, got %v", layer.ModelsAutoDownload)
		}
		if layer.Concurrency == nil || *layer.Concurrency != 4 {
			t.Errorf("unexpected concurrency %v", layer.Concurrency)
		}
		if layer.ConllUEngine == nil || *layer.ConllUEngine != config.ConllUBasic {
			t.Errorf("unexpected engine %v", layer.ConllUEngine)
		}
	})

	t.Run("conflicting auto download flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Parse([]string{"--models-auto-download", "--no-models-auto-download"}); err != nil {
			t.Fatal(err)
		}
		_, err := cliLayer(cmd.Flags())
		if !apperr.Is(err, apperr.Usage) {
			t.Errorf("expected a usage error, got %v", err)
		}
	})
}

func TestReadOutputFlags(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()
	if err := cmd.Flags().Parse([]string{"-o", filepath.Join("out", "report.json"), "--export-parquet", "--export-docbin"}); err != nil {
		t.Fatal(err)
	}
	got := readOutputFlags(cmd.Flags())
	want := outputFlags{output: filepath.Join("out", "report.json"), parquet: true, docbin: true}
	if got != want {
		t.Errorf("readOutputFlags() = %+v, want %+v", got, want)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "format = \"csv\"\nconcurrency = 5\n")

	root := NewRootCmd()
	analyze, _, err := root.Find([]string{"analyze"})
	if err != nil {
		t.Fatal(err)
	}
	if err := root.PersistentFlags().Parse([]string{"--config", env.configPath}); err != nil {
		t.Fatal(err)
	}
	if err := analyze.Flags().Parse([]string{"--format", "table"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(analyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != config.FormatTable {
		t.Errorf("expected the flag to win, got format %q", cfg.Format)
	}
	if cfg.Concurrency != 5 {
		t.Errorf("expected concurrency from the file, got %d", cfg.Concurrency)
	}
	if cfg.RateLimit != 50 {
		t.Errorf("expected rate limit from the file, got %v", cfg.RateLimit)
	}
}

func TestProxyURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"127.0.0.1:9050", "socks5://127.0.0.1:9050"},
		{"socks5h://proxy:1080", "socks5h://proxy:1080"},
		{"http://proxy:3128", "http://proxy:3128"},
	}
	for _, tt := range tests {
		if got := proxyURL(tt.in); got != tt.want {
			t.Errorf("proxyURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
