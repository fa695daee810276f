package sequencer

import (
	"errors"
	"sort"
	"time"
)

// sim executes Coordinator commands against virtual time. Fetch commands are
// recorded and answered explicitly by the test.
type sim struct {
	c       *Coordinator
	now     time.Duration
	timers  map[TimerKey]simTimer
	fetches []uint64
	onStep  func(State)
}

type simTimer struct {
	at  time.Duration
	msg Msg
}

func newSim(opts Options) *sim {
	s := &sim{c: New(opts), timers: make(map[TimerKey]simTimer)}
	s.apply(s.c.Start())
	return s
}

func (s *sim) apply(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case Schedule:
			s.timers[cmd.Key] = simTimer{at: s.now + cmd.After, msg: cmd.Msg}
		case Cancel:
			delete(s.timers, cmd.Key)
		case Fetch:
			s.fetches = append(s.fetches, cmd.Attempt)
		}
	}
}

func (s *sim) send(msg Msg) {
	s.apply(s.c.Dispatch(msg))
	if s.onStep != nil {
		s.onStep(s.c.State())
	}
}

// advance fires every timer due within d, in time order.
func (s *sim) advance(d time.Duration) {
	target := s.now + d
	for {
		key, ok := s.next(target)
		if !ok {
			s.now = target
			return
		}
		t := s.timers[key]
		delete(s.timers, key)
		s.now = t.at
		s.send(t.msg)
	}
}

// advanceUntil runs timers until cond holds or limit elapses.
func (s *sim) advanceUntil(limit time.Duration, cond func(State) bool) bool {
	end := s.now + limit
	for !cond(s.c.State()) {
		key, ok := s.next(end)
		if !ok {
			s.now = end
			return false
		}
		t := s.timers[key]
		delete(s.timers, key)
		s.now = t.at
		s.send(t.msg)
	}
	return true
}

func (s *sim) next(target time.Duration) (TimerKey, bool) {
	keys := make([]TimerKey, 0, len(s.timers))
	for k, t := range s.timers {
		if t.at <= target {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return 0, false
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := s.timers[keys[i]], s.timers[keys[j]]
		if ti.at != tj.at {
			return ti.at < tj.at
		}
		return keys[i] < keys[j]
	})
	return keys[0], true
}

func (s *sim) lastAttempt() uint64 {
	if len(s.fetches) == 0 {
		return 0
	}
	return s.fetches[len(s.fetches)-1]
}

func (s *sim) state() State { return s.c.State() }

// quickOpts skips boot and types one rune per 50ms.
func quickOpts() Options {
	return Options{SkipBoot: true, TypeDelay: FixedDelay(50 * time.Millisecond)}
}

var errTest = errors.New("test failure")
