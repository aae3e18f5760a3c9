// Package pipeline keeps the latest normalized station snapshot in memory,
// refreshes it on a fixed interval and shares it among subscribers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rubiojr/gasolineras/internal/broadcast"
	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/pkg/api"
)

const (
	DefaultInterval = 5 * time.Minute

	cheapestCacheSize = 64
)

var (
	// ErrNoSnapshot is returned when no snapshot has been fetched yet.
	ErrNoSnapshot = errors.New("no station snapshot available")
	// ErrClosed is returned by a pipeline that has been closed.
	ErrClosed = errors.New("pipeline closed")
)

// Fetcher retrieves the raw feed. *api.FuelPriceAPI satisfies it.
type Fetcher interface {
	FetchPrices(ctx context.Context) (*api.GasStationList, error)
}

// Snapshot is the immutable result of one fetch cycle. Stations must not be
// modified by consumers.
type Snapshot struct {
	ID        uuid.UUID
	FeedDate  string
	FetchedAt time.Time
	Stations  []station.Station
}

// Update is delivered to subscribers after every fetch cycle. Exactly one of
// Snapshot and Err is set.
type Update struct {
	Snapshot *Snapshot
	Err      error
}

// State describes the pipeline for presentation.
type State struct {
	Loading  bool
	Err      error
	Snapshot *Snapshot
}

// Pipeline fetches, normalizes and caches the station list.
type Pipeline struct {
	fetcher  Fetcher
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time

	group    singleflight.Group
	updates  *broadcast.Broadcaster[Update]
	cheapest *lru.Cache[string, []station.Station]

	mu      sync.Mutex
	running bool
	closed  bool
	gen     uint64
	runCtx  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	loading bool
	lastErr error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithInterval sets the refresh period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a Pipeline. Nothing is fetched until the first call to
// Subscribe, Stations or Refresh.
func New(fetcher Fetcher, opts ...Option) *Pipeline {
	cheapest, _ := lru.New[string, []station.Station](cheapestCacheSize)
	p := &Pipeline{
		fetcher:  fetcher,
		interval: DefaultInterval,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		updates:  broadcast.New[Update](),
		cheapest: cheapest,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the refresh period.
func (p *Pipeline) Interval() time.Duration {
	return p.interval
}

// Subscribe starts the refresh loop if it is not running and returns a
// subscription to its updates. The latest snapshot, if any, is replayed
// immediately. Callers must Unsubscribe when done.
func (p *Pipeline) Subscribe() *broadcast.Subscription[Update] {
	// Register before starting so a concurrent Invalidate sees the subscriber.
	sub := p.updates.Subscribe()
	p.ensureStarted()
	return sub
}

// Stations returns the latest snapshot. When there is none yet it waits for
// the in-flight fetch, starting the refresh loop if needed.
func (p *Pipeline) Stations(ctx context.Context) (*Snapshot, error) {
	if s, ok := p.Latest(); ok {
		return s, nil
	}

	sub := p.Subscribe()
	defer sub.Unsubscribe()

	p.mu.Lock()
	closed, lastErr := p.closed, p.lastErr
	p.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if lastErr != nil {
		if s, ok := p.Latest(); ok {
			return s, nil
		}
		return nil, lastErr
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case u, ok := <-sub.C:
			if !ok {
				return nil, ErrClosed
			}
			if u.Err != nil {
				return nil, u.Err
			}
			if u.Snapshot != nil {
				return u.Snapshot, nil
			}
		}
	}
}

// Latest returns the last good snapshot without fetching.
func (p *Pipeline) Latest() (*Snapshot, bool) {
	u, ok := p.updates.Latest()
	if !ok || u.Snapshot == nil {
		return nil, false
	}
	return u.Snapshot, true
}

// Refresh fetches now, sharing a fetch already in flight, and publishes the
// result. The periodic schedule is left untouched.
func (p *Pipeline) Refresh(ctx context.Context) (*Snapshot, error) {
	runCtx, gen, err := p.ensureStarted()
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-p.refresh(runCtx, gen):
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Snapshot), nil
	}
}

// Invalidate stops the refresh loop and forgets the latest snapshot. When
// subscriptions are registered, callers blocked in Stations included, a new
// loop starts right away and they receive its updates. Otherwise the next
// Subscribe, Stations or Refresh call starts it.
func (p *Pipeline) Invalidate() {
	done := p.stop()
	p.updates.Reset()
	p.cheapest.Purge()
	if done != nil {
		<-done
	}
	p.log.Debug("Station cache invalidated")

	if p.updates.Len() > 0 {
		p.ensureStarted()
	}
}

// Close stops the refresh loop and closes every subscription.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := p.stop()
	if done != nil {
		<-done
	}
	p.updates.Close()
}

// State reports whether a fetch is in flight, the error of the last cycle and
// the latest good snapshot.
func (p *Pipeline) State() State {
	p.mu.Lock()
	st := State{Loading: p.loading, Err: p.lastErr}
	p.mu.Unlock()
	st.Snapshot, _ = p.Latest()
	return st
}

func (p *Pipeline) ensureStarted() (context.Context, uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, 0, ErrClosed
	}
	if p.running {
		return p.runCtx, p.gen, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.running = true
	p.runCtx = ctx
	p.cancel = cancel
	p.done = make(chan struct{})
	p.lastErr = nil

	go p.loop(ctx, p.gen, p.done)
	return ctx, p.gen, nil
}

func (p *Pipeline) stop() chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return nil
	}
	p.cancel()
	done := p.done
	p.running = false
	p.gen++
	p.runCtx, p.cancel, p.done = nil, nil, nil
	p.loading = false
	p.lastErr = nil
	return done
}

func (p *Pipeline) loop(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Debug("Station refresh loop started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.refresh(ctx, gen):
		}

		select {
		case <-ctx.Done():
			p.log.Debug("Station refresh loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// refresh joins or starts the fetch for generation gen.
func (p *Pipeline) refresh(ctx context.Context, gen uint64) <-chan singleflight.Result {
	return p.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return p.fetch(ctx, gen)
	})
}

func (p *Pipeline) fetch(ctx context.Context, gen uint64) (*Snapshot, error) {
	p.setLoading(gen, true)
	defer p.setLoading(gen, false)

	start := p.now()
	raw, err := p.fetcher.FetchPrices(ctx)
	if err == nil && raw == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		err = fmt.Errorf("error fetching stations: %w", err)
		if p.current(gen) {
			p.log.Error("Error updating prices", "error", err)
			p.mu.Lock()
			p.lastErr = err
			p.mu.Unlock()
			p.updates.Notify(Update{Err: err})
		}
		return nil, err
	}

	snap := &Snapshot{
		ID:        uuid.New(),
		FeedDate:  raw.Fecha,
		FetchedAt: p.now(),
		Stations:  station.NormalizeAll(raw.ListaEESSPrecio),
	}

	if !p.current(gen) {
		// Invalidated while in flight; the next loop publishes its own result.
		return snap, nil
	}
	p.mu.Lock()
	p.lastErr = nil
	p.mu.Unlock()
	p.updates.Publish(Update{Snapshot: snap})
	p.log.Info("Price update completed successfully",
		"stations", len(snap.Stations), "feed_date", snap.FeedDate, "took", p.now().Sub(start))
	return snap, nil
}

func (p *Pipeline) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running && p.gen == gen
}

func (p *Pipeline) setLoading(gen uint64, loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen {
		p.loading = loading
		if loading {
			p.lastErr = nil
		}
	}
}
