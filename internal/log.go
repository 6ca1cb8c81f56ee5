package internal

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mattn/go-isatty"
)

// Log returns a logger carrying the request ID from the context, if any.
// Background work sets synthetic request IDs so its logs can be grouped.
func Log(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if ctx == nil {
		return logger
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	return logger
}

// SetupLogging installs the default slog handler. Terminals get colored text,
// everything else gets JSON.
func SetupLogging(verbose bool) {
	slog.SetDefault(slog.New(newLogHandler(os.Stderr, verbose)))
}

func newLogHandler(w io.Writer, verbose bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
		Level:           log.InfoLevel,
	}
	if verbose {
		opts.Level = log.DebugLevel
	}

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}
	if tty {
		opts.Formatter = log.TextFormatter
	}

	handler := log.NewWithOptions(w, opts)

	if tty {
		styles := log.DefaultStyles()
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DBG").Bold(true).Foreground(lipgloss.Color("63"))
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INF").Bold(true).Foreground(lipgloss.Color("86"))
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WRN").Bold(true).Foreground(lipgloss.Color("192"))
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERR").Bold(true).Foreground(lipgloss.Color("204"))
		handler.SetStyles(styles)
	}

	return handler
}
