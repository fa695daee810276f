//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks

package catfact

import (
	"context"
	"time"
)

// DefaultURL is the public endpoint used when none is configured.
const DefaultURL = "https://catfact.ninja/fact"

// Fact is a single cat fact as returned by the API.
type Fact struct {
	Text   string `json:"fact"`
	Length int    `json:"length"`
}

// Fetcher retrieves one fact per call.
type Fetcher interface {
	Fetch(ctx context.Context) (Fact, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (Fact, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (Fact, error) { return f(ctx) }

// Outcome labels the result of a fetch for observers.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Observer is notified around every request. Implementations must be safe
// for concurrent use.
type Observer interface {
	FetchStarted()
	FetchFinished(outcome Outcome, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) FetchStarted() {}

func (nopObserver) FetchFinished(Outcome, time.Duration) {}
