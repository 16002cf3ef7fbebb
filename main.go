package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	Sd "github.com/maroda/scansion/display"
	So "github.com/maroda/scansion/obvy"
	Sp "github.com/maroda/scansion/plugin"
	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

var (
	configPath = flag.String("config", "", "config file (json or yaml), environment only when empty")
	langFlag   = flag.String("lang", "", "language of the poem: ru or en")
	fileFlag   = flag.String("file", "", "poem to scan, stdin when empty")
	sentences  = flag.Bool("sentences", false, "split on sentence punctuation instead of line breaks")
	serveFlag  = flag.Bool("serve", false, "serve the HTTP API instead of scanning once")
	viewFlag   = flag.Bool("view", false, "show the scanned poem in the terminal")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		slog.Error("Scansion failed", slog.Any("Error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *langFlag != "" {
		cfg.Language = *langFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	So.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.Debug("Scansion initializing", slog.String("user", Ss.FillEnvVar("USER")))

	otelShutdown, err := So.InitOTel(cfg.OTel)
	if err != nil {
		return err
	}
	defer otelShutdown()

	lexicon, err := buildLexicon(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := &Sd.View{
		Lexicon:  lexicon,
		Language: St.Language(cfg.Language),
		Stats:    So.NewStatsInternal(),
	}
	if err := Sd.InitOutput(view, cfg); err != nil {
		return err
	}
	if view.Output != nil {
		defer func() {
			if err := view.Output.Close(); err != nil {
				slog.Error("Output close failed", slog.Any("Error", err))
			}
		}()
	}

	if *serveFlag {
		return Sd.StartWeb(ctx, cfg.Listen, view)
	}

	text, err := readPoem(*fileFlag)
	if err != nil {
		return err
	}
	var lines []string
	if *sentences {
		lines = Ss.SplitIntoLines(text)
	} else {
		lines = Ss.SplitVerses(text)
	}

	poem, err := view.Analyze(ctx, view.Language, lines)
	if err != nil {
		return err
	}

	if *viewFlag {
		return Sd.StartView(poem)
	}
	fmt.Println(Sd.RenderReport(poem))
	return nil
}

func loadConfig(path string) (*Ss.ConfigFile, error) {
	if path == "" {
		return Ss.LoadConfigEnv()
	}
	return Ss.LoadConfigFileName(path)
}

// buildLexicon loads whatever stress data the config points at.
// Missing data is allowed, the affected language then scans as undetermined.
func buildLexicon(cfg *Ss.ConfigFile) (*Ss.Lexicon, error) {
	lx := &Ss.Lexicon{}

	switch {
	case cfg.DictEN != "" && cfg.DictENFormat == "cmu":
		dict, err := Ss.LoadCMUDict(cfg.DictEN)
		if err != nil {
			return nil, err
		}
		lx.English = dict
	case cfg.DictEN != "":
		dict, err := Ss.LoadStressDict(cfg.DictEN)
		if err != nil {
			return nil, err
		}
		lx.English = dict
	default:
		slog.Warn("No English dictionary, every word is guessed")
	}

	switch {
	case cfg.AccentURL != "":
		decoder, err := Sp.DecoderLookup(cfg.AccentDecoder, cfg.AccentKey)
		if err != nil {
			return nil, err
		}
		acc := Ss.NewHTTPAccentizer(cfg.AccentURL, cfg.AccentRate)
		acc.Timeout = cfg.AccentTimeout
		acc.Decode = decoder.Decode
		lx.Russian = acc
		slog.Info("Russian stress model", slog.String("url", cfg.AccentURL), slog.String("decoder", decoder.Type()))
	case cfg.DictRU != "":
		dict, err := Ss.LoadStressDict(cfg.DictRU)
		if err != nil {
			return nil, err
		}
		lx.Russian = Ss.NewDictAccentizer(dict)
	default:
		slog.Warn("No Russian stress model configured")
	}

	return lx, nil
}

func readPoem(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("poem file %s: %w", path, err)
	}
	return string(b), err
}
