package sequencer

import (
	"context"
	"sync"

	"github.com/agbru/meowgic/internal/catfact"
	"github.com/agbru/meowgic/internal/logging"
)

// ownedTimer is a timer slot held by the Runner. token changes whenever the
// slot is re-armed or cancelled, so a callback that already fired but lost
// the race for the lock recognises itself as stale.
type ownedTimer struct {
	timer Timer
	token uint64
}

// Runner drives a Coordinator with real (or virtual) timers and a Fetcher.
// All transitions are serialized by one mutex, which plays the role of the
// single UI thread. Close releases every timer and cancels any in-flight
// fetch; it is safe to defer it on every exit path.
type Runner struct {
	mu       sync.Mutex
	coord    *Coordinator
	clock    Clock
	fetcher  catfact.Fetcher
	logger   logging.Logger
	onChange func(State)

	timers map[TimerKey]*ownedTimer
	tokens uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock substitutes the clock.
func WithClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithStateListener registers fn to receive a snapshot after every transition.
// fn runs with the Runner locked and must not call back into it.
func WithStateListener(fn func(State)) RunnerOption {
	return func(r *Runner) { r.onChange = fn }
}

// NewRunner creates a Runner that executes the commands coord emits. It owns
// one cancellable timer per TimerKey and runs each Fetch on its own goroutine.
//
// Parameters:
//   - ctx: The parent of every fetch context. Close cancels it.
//   - coord: The coordinator to drive. It must not be shared.
//   - fetcher: The source of facts.
//   - opts: Optional clock, logger and state listener.
//
// Returns:
//   - *Runner: A runner that has not started yet.
func NewRunner(ctx context.Context, coord *Coordinator, fetcher catfact.Fetcher, opts ...RunnerOption) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		coord:   coord,
		clock:   RealClock(),
		fetcher: fetcher,
		logger:  logging.NewNopLogger(),
		timers:  make(map[TimerKey]*ownedTimer),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins the timeline.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.apply(r.coord.Start())
	r.notify()
}

// Send dispatches msg.
func (r *Runner) Send(msg Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.apply(r.coord.Dispatch(msg))
	r.notify()
}

// Trigger requests a new fact.
func (r *Runner) Trigger() { r.Send(FetchRequestedMsg{}) }

// ToggleTheme flips the palette.
func (r *Runner) ToggleTheme() { r.Send(ThemeToggledMsg{}) }

// State returns the current snapshot.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coord.State()
}

// Pending returns the number of armed timer slots.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Close stops every timer, cancels in-flight fetches and waits for them to
// return. It is idempotent.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.apply(r.coord.Close())
	r.closed = true
	r.cancel()
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Runner) apply(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case Schedule:
			r.arm(cmd)
		case Cancel:
			r.disarm(cmd.Key)
		case Fetch:
			r.fetch(cmd.Attempt)
		}
	}
}

func (r *Runner) arm(s Schedule) {
	r.disarm(s.Key)
	r.tokens++
	token := r.tokens
	key, msg := s.Key, s.Msg
	t := r.clock.AfterFunc(s.After, func() { r.fire(key, token, msg) })
	r.timers[key] = &ownedTimer{timer: t, token: token}
}

func (r *Runner) disarm(key TimerKey) {
	if ot, ok := r.timers[key]; ok {
		ot.timer.Stop()
		delete(r.timers, key)
	}
}

func (r *Runner) fire(key TimerKey, token uint64, msg Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ot, ok := r.timers[key]
	if r.closed || !ok || ot.token != token {
		return
	}
	delete(r.timers, key)
	r.apply(r.coord.Dispatch(msg))
	r.notify()
}

func (r *Runner) fetch(attempt uint64) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fact, err := r.fetcher.Fetch(r.ctx)
		if err != nil {
			r.logger.Error("fetch attempt failed", err, logging.Uint64("attempt", attempt))
			r.Send(FetchFailedMsg{Attempt: attempt, Err: err})
			return
		}
		r.logger.Debug("fetch attempt succeeded", logging.Uint64("attempt", attempt))
		r.Send(FetchSucceededMsg{Attempt: attempt, Text: fact.Text})
	}()
}

func (r *Runner) notify() {
	if r.onChange != nil {
		r.onChange(r.coord.State())
	}
}
