package poller

import (
	"context"
	"time"
)

// Run loads once, then keeps the snapshot fresh on a ticker and on every
// Notify until ctx is cancelled.
//
// Ticker loads start on schedule even if an earlier load is still running;
// the sequence guard keeps only the newest. Notified refreshes are
// coalesced instead: while any load is in flight at most one refresh is held
// back, and it starts once every running load has returned. A stream of
// triggers therefore cannot keep superseding cycles before they publish.
// Run waits for in-flight loads before returning.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Poller started", "interval", p.interval, "sources", len(p.sources.All()))

	finished := make(chan struct{})
	running := 0
	var pending Trigger

	start := func(trigger Trigger) {
		running++
		go func() {
			p.Load(ctx, trigger)
			finished <- struct{}{}
		}()
	}

	start(TriggerInitial)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			start(TriggerInterval)
		case trigger := <-p.triggers:
			if running > 0 {
				if pending == "" {
					p.logger.Debug("Load in flight, deferring refresh", "trigger", trigger)
				}
				pending = trigger
				continue
			}
			start(trigger)
		case <-finished:
			running--
			if running == 0 && pending != "" {
				start(pending)
				pending = ""
			}
		case <-ctx.Done():
			for ; running > 0; running-- {
				<-finished
			}
			p.logger.Info("Poller stopped")
			return
		}
	}
}

// Notify asks Run for a refresh. It never blocks: when the queue is full the
// trigger is dropped, since Run folds queued triggers into one refresh
// anyway.
func (p *Poller) Notify(trigger Trigger) bool {
	select {
	case p.triggers <- trigger:
		return true
	default:
		p.logger.Debug("Refresh already queued, dropping trigger", "trigger", trigger)
		return false
	}
}
