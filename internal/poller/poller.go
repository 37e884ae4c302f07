// Package poller keeps an up-to-date Snapshot of the five election exports.
//
// Every refresh, whatever triggered it, goes through Load. Each call takes a
// sequence number when it starts; a call that finishes after a newer one has
// started throws its results away, so a slow old request can never overwrite
// fresher data. Failed cycles leave the previous snapshot in place.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/elecciones-aragon/internal/results"
	"github.com/albapepper/elecciones-aragon/internal/sheets"
)

// DefaultInterval is the background refresh period.
const DefaultInterval = 5 * time.Minute

// Fetcher downloads the raw text of one export.
type Fetcher interface {
	Fetch(ctx context.Context, src sheets.Source) (string, error)
}

// Sources are the five exports a cycle reads.
type Sources struct {
	Seats          sheets.Source
	Votes          sheets.Source
	Status         sheets.Source
	Municipalities sheets.Source
	Turnout        sheets.Source
}

// All returns the sources in a fixed order.
func (s Sources) All() []sheets.Source {
	return []sheets.Source{s.Seats, s.Votes, s.Status, s.Municipalities, s.Turnout}
}

const (
	idxSeats = iota
	idxVotes
	idxStatus
	idxMunicipalities
	idxTurnout
	sourceCount
)

// errStale marks a cycle overtaken by a newer one. It is never reported.
var errStale = errors.New("superseded by a newer load")

// Config configures a Poller.
type Config struct {
	Sources  Sources
	Interval time.Duration
	Logger   *slog.Logger
}

// Poller owns the load sequence counter and the current snapshot.
type Poller struct {
	fetcher  Fetcher
	sources  Sources
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	seq     atomic.Uint64
	current atomic.Pointer[results.Snapshot]

	mu     sync.Mutex
	status Status

	triggers chan Trigger
}

// New creates a Poller. Nothing is fetched until Load or Run is called.
func New(fetcher Fetcher, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Poller{
		fetcher:  fetcher,
		sources:  cfg.Sources,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		now:      time.Now,
		triggers: make(chan Trigger, 4),
	}
}

// Current returns the latest published snapshot, or nil before the first
// successful cycle. Callers must treat it as read-only.
func (p *Poller) Current() *results.Snapshot {
	return p.current.Load()
}

// Load runs one poll cycle and reports the snapshot that is current when it
// returns and whether this call published it. Fetch and parse failures are
// logged and recorded in Status; they never reach the caller.
func (p *Poller) Load(ctx context.Context, trigger Trigger) (*results.Snapshot, bool) {
	id := p.begin(trigger)

	snap, err := p.cycle(ctx, id)
	published := false
	switch {
	case errors.Is(err, errStale):
		p.logger.Debug("Discarding stale load", "load_id", id, "trigger", trigger)
	case err != nil:
		p.logger.Error("Load failed, keeping previous snapshot",
			"load_id", id, "trigger", trigger, "error", err)
	default:
		published = p.publish(snap)
		if published {
			p.logger.Info("Snapshot published", "trigger", trigger, "summary", snap.Summary())
		} else {
			p.logger.Debug("Discarding stale load", "load_id", id, "trigger", trigger)
		}
	}

	p.finish(id, err, published)
	return p.Current(), published
}

// cycle fetches and parses every source. It returns errStale as soon as a
// newer load has started.
func (p *Poller) cycle(ctx context.Context, id uint64) (*results.Snapshot, error) {
	sources := p.sources.All()

	bodies := make([]string, sourceCount)
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			body, err := p.fetcher.Fetch(gctx, src)
			if err != nil {
				return err
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if p.stale(id) {
		return nil, errStale
	}

	rows := make([][]sheets.Row, sourceCount)
	g = new(errgroup.Group)
	for i, src := range sources {
		g.Go(func() error {
			r, err := sheets.Parse(bodies[i])
			if err != nil {
				var pe *sheets.ParseError
				if errors.As(err, &pe) {
					pe.Source = src.Name
					return pe
				}
				return fmt.Errorf("parse %s: %w", src.Name, err)
			}
			rows[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if p.stale(id) {
		return nil, errStale
	}

	return &results.Snapshot{
		LoadID:         id,
		FetchedAt:      p.now(),
		Seats:          results.ProcessSeats(rows[idxSeats]),
		Votes:          results.ProcessVotes(rows[idxVotes]),
		Status:         results.ProcessCountStatus(rows[idxStatus]),
		Municipalities: results.ProcessMunicipalities(rows[idxMunicipalities]),
		Turnout:        results.ProcessTurnout(rows[idxTurnout]),
	}, nil
}

func (p *Poller) stale(id uint64) bool {
	return p.seq.Load() != id
}

// publish installs snap unless a newer load has started or a snapshot with a
// higher id is already current.
func (p *Poller) publish(snap *results.Snapshot) bool {
	for {
		if p.stale(snap.LoadID) {
			return false
		}
		cur := p.current.Load()
		if cur != nil && cur.LoadID >= snap.LoadID {
			return false
		}
		if p.current.CompareAndSwap(cur, snap) {
			return true
		}
	}
}
