package cli

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/agbru/meowgic/internal/catfact"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/logging"
	"github.com/agbru/meowgic/internal/sequencer"
	"github.com/agbru/meowgic/internal/ui"
)

// PlainConfig configures a plain session.
type PlainConfig struct {
	// Sequencer holds the timeline options (boot, delays, theme).
	Sequencer sequencer.Options
	// Out receives the boot script and the fact.
	Out io.Writer
	// ErrOut receives the failure message.
	ErrOut io.Writer
	// Logger receives diagnostics; nil discards them.
	Logger logging.Logger
	// Clock drives the timers; nil uses real time.
	Clock sequencer.Clock
}

// RunPlain plays the boot script, fetches exactly one fact, types it out and
// returns the process exit code. A failed fetch prints the user-facing
// message to ErrOut and yields ExitErrorFetch.
//
// Parameters:
//   - ctx: Cancels the session and any in-flight request.
//   - fetcher: The source of the fact.
//   - cfg: The session configuration.
//
// Returns:
//   - int: The process exit code.
func RunPlain(ctx context.Context, fetcher catfact.Fetcher, cfg PlainConfig) int {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.ErrOut == nil {
		cfg.ErrOut = cfg.Out
	}

	var (
		mu      sync.Mutex
		lastErr error
	)
	recording := catfact.FetcherFunc(func(ctx context.Context) (catfact.Fact, error) {
		fact, err := fetcher.Fetch(ctx)
		mu.Lock()
		lastErr = err
		mu.Unlock()
		return fact, err
	})

	p := newPlainPresenter(cfg.Out, ui.PaletteFor(cfg.Sequencer.Theme))
	defer p.stopSpinner()

	opts := []sequencer.RunnerOption{
		sequencer.WithLogger(cfg.Logger),
		sequencer.WithStateListener(p.observe),
	}
	if cfg.Clock != nil {
		opts = append(opts, sequencer.WithClock(cfg.Clock))
	}
	runner := sequencer.NewRunner(ctx, sequencer.New(cfg.Sequencer), recording, opts...)
	defer runner.Close()

	runner.Start()
	select {
	case <-p.booted:
	case <-ctx.Done():
		return apperrors.ExitErrorCanceled
	}

	runner.Trigger()
	select {
	case <-p.settled:
	case <-ctx.Done():
		return apperrors.ExitErrorCanceled
	}
	runner.Close()

	if runner.State().Fetch.Error == "" {
		return apperrors.ExitSuccess
	}
	mu.Lock()
	err := lastErr
	mu.Unlock()
	return apperrors.HandleFetchError(err, cfg.ErrOut)
}

// plainPresenter turns state snapshots into appended output. It only ever
// writes what is new since the previous snapshot. observe runs with the
// Runner locked, so its fields need no further synchronization.
type plainPresenter struct {
	out     io.Writer
	palette ui.Palette
	styles  plainStyles
	spinner Spinner

	booted  chan struct{}
	settled chan struct{}

	lines    int
	bootDone bool
	spinning bool
	echoed   bool
	typed    int
	done     bool
}

func newPlainPresenter(out io.Writer, p ui.Palette) *plainPresenter {
	sp := newSpinner(out)
	sp.UpdateSuffix(" " + LoadingLabel)
	return &plainPresenter{
		out:     out,
		palette: p,
		styles:  newPlainStyles(p),
		spinner: sp,
		booted:  make(chan struct{}),
		settled: make(chan struct{}),
	}
}

func (p *plainPresenter) observe(st sequencer.State) {
	if st.Boot.Active {
		for ; p.lines < len(st.Boot.Lines); p.lines++ {
			DisplayBootLine(p.out, p.palette, strings.TrimRight(st.Boot.Lines[p.lines], " "))
		}
	} else if !p.bootDone {
		p.bootDone = true
		close(p.booted)
	}

	switch {
	case st.Fetch.Loading && !p.spinning:
		p.spinner.Start()
		p.spinning = true
	case !st.Fetch.Loading && p.spinning:
		p.stopSpinner()
	}

	if p.done || !st.Fetch.ShowCommand {
		return
	}
	if st.Fetch.Error != "" {
		p.finish()
		return
	}
	if st.CommandEchoVisible() && !p.echoed {
		DisplayCommandEcho(p.out, p.palette)
		p.echoed = true
	}
	if len(st.Reveal.Revealed) > p.typed {
		if p.typed == 0 {
			io.WriteString(p.out, p.styles.prompt.Render(promptGlyph))
		}
		io.WriteString(p.out, p.styles.text.Render(st.Reveal.Revealed[p.typed:]))
		p.typed = len(st.Reveal.Revealed)
		if st.Reveal.Complete() {
			io.WriteString(p.out, "\n")
			p.finish()
		}
	}
}

func (p *plainPresenter) stopSpinner() {
	if p.spinning {
		p.spinner.Stop()
		p.spinning = false
	}
}

func (p *plainPresenter) finish() {
	p.done = true
	close(p.settled)
}
