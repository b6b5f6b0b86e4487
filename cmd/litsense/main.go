package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/config"
	"github.com/tsawler/litsense/internal/engine"
	"github.com/tsawler/litsense/internal/logging"
	"github.com/tsawler/litsense/internal/tui"
	"github.com/tsawler/litsense/internal/version"
)

type Config struct {
	File string
	Text string
	Type string

	Output     string
	ConfigPath string

	TUI         bool
	ShowVersion bool

	LogLevel  string
	LogFormat string
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()

	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.File, "file", cfg.File, "Path to a text file to analyze")
	fs.StringVar(&cfg.File, "f", cfg.File, "Shorthand for -file")
	fs.StringVar(&cfg.Text, "text", cfg.Text, "Text to analyze directly")
	fs.StringVar(&cfg.Text, "t", cfg.Text, "Shorthand for -text")
	fs.StringVar(&cfg.Type, "type", cfg.Type, "Text type: poem, book, story, essay or general (file mode infers it from the extension)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Report format: text, json or both")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Shorthand for -output")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Analyzer settings file (YAML); defaults apply when it does not exist")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Start the interactive terminal UI")
	fs.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "Print version information and exit")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	if cfg.ShowVersion {
		_, err := fmt.Fprintln(stdout, version.Get().String())
		return err
	}

	logger := logging.InitLoggerTo(stderr, cfg.LogLevel, cfg.LogFormat)

	settings, err := config.LoadAnalyzer(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.ConfigPath, err)
	}
	analyzer, err := engine.New(*settings, logger)
	if err != nil {
		return err
	}

	if cfg.TUI {
		_, err := tea.NewProgram(tui.New(analyzer), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	}

	if cfg.File != "" {
		return analyzeFile(ctx, analyzer, cfg, stdout, logger)
	}

	textType, err := litsense.ParseTextType(cfg.Type)
	if err != nil {
		return err
	}
	result, err := analyzer.AnalyzeComplete(ctx, cfg.Text, textType)
	if err != nil {
		return err
	}
	return printReport(stdout, result, cfg.Output)
}

func analyzeFile(ctx context.Context, analyzer *litsense.Analyzer, cfg Config, stdout io.Writer, logger *slog.Logger) error {
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.File, err)
	}

	textType := litsense.TextTypeForPath(cfg.File)
	if cfg.Type != "" {
		if textType, err = litsense.ParseTextType(cfg.Type); err != nil {
			return err
		}
	}

	logger.Info("Analyzing file", "path", cfg.File, "text_type", textType, "bytes", len(data))
	result, err := analyzer.AnalyzeComplete(ctx, string(data), textType)
	if err != nil {
		return err
	}

	written, err := writeReports(cfg.File, result, cfg.Output)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(stdout, "Report saved to %s\n", path)
	}
	return nil
}
