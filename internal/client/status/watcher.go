// Package status tracks whether the remote API is reachable by probing its
// health endpoint on a fixed interval. The probe runs on its own goroutine
// and never blocks directory operations.
package status

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/clock"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Pinger probes the remote API.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Watcher struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	clock    clock.Clock
	log      logging.Logger

	mu        sync.RWMutex
	mode      Mode
	lastCheck time.Time
}

func NewWatcher(p Pinger, interval, timeout time.Duration, clk clock.Clock, log logging.Logger) *Watcher {
	if clk == nil {
		clk = clock.Real()
	}
	return &Watcher{
		pinger:   p,
		interval: interval,
		timeout:  timeout,
		clock:    clk,
		log:      log,
		mode:     ModeUnknown,
	}
}

func (w *Watcher) Mode() Mode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mode
}

// LastCheck returns when the latest probe finished; zero before the first.
func (w *Watcher) LastCheck() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastCheck
}

// Check probes once and returns the resulting mode.
func (w *Watcher) Check(ctx context.Context) Mode {
	pctx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	mode := ModeOnline
	if err := w.pinger.Ping(pctx); err != nil {
		if ctx.Err() != nil {
			return w.Mode()
		}
		mode = ModeOffline
	}
	w.set(ctx, mode)
	return mode
}

func (w *Watcher) set(ctx context.Context, mode Mode) {
	w.mu.Lock()
	prev := w.mode
	w.mode = mode
	w.lastCheck = w.clock.Now()
	w.mu.Unlock()

	if prev != mode {
		w.log.Info(ctx, "switched mode", "from", prev, "to", mode)
	}
}

// Run probes immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Start runs the watcher on a new goroutine. The returned channel closes
// when it stops.
func (w *Watcher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}
