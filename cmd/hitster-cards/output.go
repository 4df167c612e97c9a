package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/handiism/hitster-cards/internal/generate"
)

// progressPrinter writes pipeline events as lines. Symbols are only used
// when the writer is a terminal.
type progressPrinter struct {
	w       io.Writer
	verbose bool
	symbols bool
}

func newProgressPrinter(w io.Writer, verbose bool) *progressPrinter {
	return &progressPrinter{w: w, verbose: verbose, symbols: isTerminal(w)}
}

func (p *progressPrinter) print(event generate.ProgressEvent) {
	if event.Level == generate.LevelVerbose && !p.verbose {
		return
	}
	fmt.Fprintln(p.w, p.prefix(event.Level)+event.Message)
}

func (p *progressPrinter) prefix(level generate.ProgressLevel) string {
	if !p.symbols {
		switch level {
		case generate.LevelError:
			return "error: "
		case generate.LevelWarning:
			return "warning: "
		default:
			return ""
		}
	}
	switch level {
	case generate.LevelError:
		return "❌ "
	case generate.LevelWarning:
		return "⚠️  "
	case generate.LevelSuccess:
		return "✅ "
	case generate.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
