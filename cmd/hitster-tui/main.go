package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/handiism/hitster-cards/internal/config"
	"github.com/handiism/hitster-cards/internal/generate"
	"github.com/handiism/hitster-cards/internal/logging"
	"github.com/handiism/hitster-cards/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	logFlag := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configFlag, *logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.NewFromSettings(settings, logOut)
	if err != nil {
		return err
	}

	build := func(ctx context.Context, kind generate.SourceKind, onProgress func(generate.ProgressEvent)) (*generate.Manager, error) {
		opts, err := generate.OptionsFromSettings(settings, time.Now())
		if err != nil {
			return nil, err
		}
		// The wizard asks before verifying and applying.
		opts.Verify = false
		opts.ApplyVerified = false
		return generate.NewFromSettings(ctx, settings, opts, kind, logger, onProgress)
	}

	return tui.Run(settings, build)
}
