package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/albapepper/elecciones-aragon/internal/sheets"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRun_InitialLoadAndNotify(t *testing.T) {
	var fetches atomic.Int64
	p := New(funcFetcher(func(ctx context.Context, src sheets.Source) (string, error) {
		fetches.Add(1)
		return body(src, "PP"), nil
	}), Config{Sources: testSources(), Interval: time.Hour, Logger: testLogger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitFor(t, "initial snapshot", func() bool { return p.Current() != nil })
	if st := p.Status(); st.LastTrigger != TriggerInitial {
		t.Errorf("LastTrigger = %q, want %q", st.LastTrigger, TriggerInitial)
	}

	if !p.Notify(TriggerFocus) {
		t.Fatal("Notify rejected the first trigger")
	}
	waitFor(t, "focus snapshot", func() bool {
		cur := p.Current()
		return cur != nil && cur.LoadID >= 2
	})

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if n := fetches.Load(); n < 2*sourceCount {
		t.Errorf("fetches = %d, want at least %d", n, 2*sourceCount)
	}
}

func TestRun_Interval(t *testing.T) {
	p := New(funcFetcher(func(ctx context.Context, src sheets.Source) (string, error) {
		return body(src, "VOX"), nil
	}), Config{Sources: testSources(), Interval: 20 * time.Millisecond, Logger: testLogger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, "interval reloads", func() bool {
		cur := p.Current()
		return cur != nil && cur.LoadID >= 3
	})
}

func TestNotify_DoesNotBlock(t *testing.T) {
	p := New(funcFetcher(func(ctx context.Context, src sheets.Source) (string, error) {
		return body(src, "X"), nil
	}), Config{Sources: testSources(), Logger: testLogger})

	accepted := 0
	for i := 0; i < 10; i++ {
		if p.Notify(TriggerVisibility) {
			accepted++
		}
	}
	if accepted != cap(p.triggers) {
		t.Errorf("accepted = %d, want %d", accepted, cap(p.triggers))
	}
}

func TestRun_TriggersFasterThanACycleStillPublish(t *testing.T) {
	var fetches atomic.Int64
	p := New(funcFetcher(func(ctx context.Context, src sheets.Source) (string, error) {
		fetches.Add(1)
		select {
		case <-time.After(40 * time.Millisecond):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return body(src, "PP"), nil
	}), Config{Sources: testSources(), Interval: time.Hour, Logger: testLogger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	sent := 0
	deadline := time.Now().Add(400 * time.Millisecond)
	for time.Now().Before(deadline) {
		if p.Notify(TriggerFocus) {
			sent++
		}
		time.Sleep(10 * time.Millisecond)
	}

	if p.Current() == nil {
		t.Fatal("no snapshot published while triggers kept arriving")
	}
	cancel()
	<-done

	loads := int(fetches.Load()) / sourceCount
	if loads >= sent {
		t.Errorf("started %d loads for %d triggers, want them coalesced", loads, sent)
	}
	if st := p.Status(); st.Refreshing {
		t.Error("Refreshing still set after Run returned")
	}
}

func TestBeginFinish_OutOfOrder(t *testing.T) {
	p := New(funcFetcher(func(ctx context.Context, src sheets.Source) (string, error) {
		return body(src, "X"), nil
	}), Config{Sources: testSources(), Logger: testLogger})

	older := p.begin(TriggerInterval)
	newer := p.begin(TriggerFocus)
	if newer <= older {
		t.Fatalf("ids = %d, %d, want increasing", older, newer)
	}

	p.finish(newer, nil, false)
	if p.Status().Refreshing {
		t.Error("Refreshing set after the newest load finished")
	}
	p.finish(older, errStale, false)
	st := p.Status()
	if st.Refreshing || st.LastError != "" || st.LastTrigger != TriggerFocus {
		t.Errorf("Status = %+v, want idle with the newer trigger and no error", st)
	}
}
