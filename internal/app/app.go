package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/agbru/meowgic/internal/catfact"
	"github.com/agbru/meowgic/internal/config"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/ui"
)

// Application represents the meowgic application instance.
type Application struct {
	Config    config.AppConfig
	Fetcher   catfact.Fetcher
	ErrWriter io.Writer

	// isTerminal decides between the interactive and the plain mode.
	isTerminal func(w io.Writer) bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFetcher replaces the HTTP client, typically in tests.
func WithFetcher(f catfact.Fetcher) AppOption {
	return func(a *Application) { a.Fetcher = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, isTerminal: isTerminal}
	for _, opt := range opts {
		opt(app)
	}

	programName := "meowgic"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode. Plain mode is
// used when requested or when out is not a terminal.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.UI.NoColor)

	plain := a.Config.UI.Plain || !a.isTerminal(out)

	logger, closeLog, err := a.newLogger(plain)
	if err != nil {
		a.errorf("Error opening log file: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return a.runSession(ctx, out, plain, logger)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCode maps an error returned by New to a process exit code.
func ExitCode(err error) int {
	var ce apperrors.ConfigError
	switch {
	case err == nil, IsHelpError(err):
		return apperrors.ExitSuccess
	case errors.As(err, &ce):
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
