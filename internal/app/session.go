package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/meowgic/internal/catfact"
	"github.com/agbru/meowgic/internal/cli"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/logging"
	"github.com/agbru/meowgic/internal/server"
	"github.com/agbru/meowgic/internal/tui"
)

// runSession runs the front end, alongside the metrics server when one is
// configured. The server stops as soon as the front end returns.
func (a *Application) runSession(ctx context.Context, out io.Writer, plain bool, logger logging.Logger) int {
	mode := "tui"
	if plain {
		mode = "plain"
	}
	logger.Info("session started",
		logging.String("mode", mode),
		logging.String("version", Version),
		logging.String("url", a.Config.Fetch.URL))

	if a.Config.Metrics.Addr == "" {
		return a.runFrontend(ctx, out, plain, a.fetcher(logger, nil), logger)
	}

	metrics := server.NewMetrics()
	srv := server.New(a.Config.Metrics.Addr, metrics, logger)
	fetcher := a.fetcher(logger, metrics)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	code := apperrors.ExitSuccess
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		code = a.runFrontend(gctx, out, plain, fetcher, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("metrics server failed", err)
		a.errorf("Metrics server error: %v\n", err)
		if code == apperrors.ExitSuccess || code == apperrors.ExitErrorCanceled {
			return apperrors.ExitErrorGeneric
		}
	}
	return code
}

func (a *Application) runFrontend(ctx context.Context, out io.Writer, plain bool, fetcher catfact.Fetcher, logger logging.Logger) int {
	opts := a.Config.SequencerOptions()
	if plain {
		return cli.RunPlain(ctx, fetcher, cli.PlainConfig{
			Sequencer: opts,
			Out:       out,
			ErrOut:    a.ErrWriter,
			Logger:    logger,
		})
	}
	return tui.Run(ctx, opts, fetcher, logger)
}

// fetcher returns the configured Fetcher, building the HTTP client unless
// one was injected. A nil metrics disables request observation.
func (a *Application) fetcher(logger logging.Logger, metrics *server.Metrics) catfact.Fetcher {
	if a.Fetcher != nil {
		return a.Fetcher
	}
	opts := []catfact.Option{
		catfact.WithURL(a.Config.Fetch.URL),
		catfact.WithTimeout(a.Config.Fetch.Timeout),
		catfact.WithRateLimit(a.Config.Fetch.RPS),
		catfact.WithLogger(logger),
	}
	if metrics != nil {
		opts = append(opts, catfact.WithObserver(metrics))
	}
	return catfact.NewClient(opts...)
}

// newLogger builds the session logger. The terminal belongs to the TUI, so
// logs go to the configured file, to stderr (warnings only) in plain mode,
// or nowhere. Every entry carries the session id.
func (a *Application) newLogger(plain bool) (logging.Logger, func(), error) {
	session := uuid.NewString()
	level := logging.ParseLevel(a.Config.Log.Level)

	var (
		w       io.Writer
		closeFn = func() {}
	)
	switch {
	case a.Config.Log.File != "":
		f, err := os.OpenFile(a.Config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case plain && a.ErrWriter != nil:
		w = zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
		if level < zerolog.WarnLevel {
			level = zerolog.WarnLevel
		}
	default:
		return logging.NewNopLogger(), closeFn, nil
	}

	return logging.NewLogger(w, "meowgic", level).With(logging.String("session", session)), closeFn, nil
}

func (a *Application) errorf(format string, args ...any) {
	if a.ErrWriter != nil {
		fmt.Fprintf(a.ErrWriter, format, args...)
	}
}
