// Package relays forwards accepted donations to external sinks after the
// store commit. Sinks are best-effort: each one runs under its own bounded
// timeout, failures are logged and never reach the webhook caller, and one
// sink cannot block or fail another.
package relays

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"donasi/logger"
	"donasi/models"
)

// ErrNotConfigured marks a sink whose destination or credential is absent.
// Dispatch treats it as a silent skip, not a failure.
var ErrNotConfigured = errors.New("sink not configured")

const sinkTimeout = 5 * time.Second

type Event struct {
	Donation models.Donation
	Game     *models.Game
}

func (e Event) GameName() string {
	if e.Game != nil {
		return e.Game.Name
	}
	return "Unknown"
}

type Sink interface {
	Name() string
	Send(ctx context.Context, event Event) error
}

var (
	sinksMu sync.RWMutex
	sinks   = map[string]Sink{}
)

func Register(s Sink) {
	sinksMu.Lock()
	defer sinksMu.Unlock()
	sinks[strings.ToLower(s.Name())] = s
}

// Report summarizes one fan-out pass for logging and tests.
type Report struct {
	mu        sync.Mutex
	Delivered []string
	Skipped   []string
	Failed    []string
}

// Dispatch fans the donation out to every registered sink. Callers on the
// webhook path run it in a goroutine after persistence succeeds; sink latency
// never delays the HTTP response.
func Dispatch(donation models.Donation, game *models.Game) *Report {
	event := Event{Donation: donation, Game: game}
	report := &Report{}

	sinksMu.RLock()
	targets := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		targets = append(targets, s)
	}
	sinksMu.RUnlock()

	var wg sync.WaitGroup
	for _, s := range targets {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			deliver(s, event, report)
		}(s)
	}
	wg.Wait()

	logger.Log.Infow("relay fan-out finished",
		"donation_id", donation.DonationID,
		"game", event.GameName(),
		"delivered", report.Delivered,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report
}

func deliver(s Sink, event Event, report *Report) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorw("relay sink panicked",
				"sink", s.Name(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			report.add(&report.Failed, s.Name())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	err := s.Send(ctx, event)
	switch {
	case errors.Is(err, ErrNotConfigured):
		logger.Log.Infow("relay sink skipped, not configured", "sink", s.Name())
		report.add(&report.Skipped, s.Name())
	case err != nil:
		logger.Log.Errorw("relay sink failed",
			"sink", s.Name(),
			"donation_id", event.Donation.DonationID,
			"error", err,
		)
		report.add(&report.Failed, s.Name())
	default:
		report.add(&report.Delivered, s.Name())
	}
}

func (r *Report) add(bucket *[]string, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*bucket = append(*bucket, name)
}
