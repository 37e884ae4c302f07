package poller

import (
	"errors"
	"fmt"
	"time"
)

// Trigger names what started a load.
type Trigger string

const (
	TriggerInitial    Trigger = "initial"
	TriggerInterval   Trigger = "interval"
	TriggerVisibility Trigger = "visibility"
	TriggerFocus      Trigger = "focus"
	TriggerManual     Trigger = "manual"
)

// ParseTrigger accepts the externally signalled triggers. The interval and
// initial triggers are owned by Run and cannot be requested.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case TriggerVisibility, TriggerFocus, TriggerManual:
		return t, nil
	case "":
		return TriggerManual, nil
	default:
		return "", fmt.Errorf("unknown trigger %q", s)
	}
}

// Status describes the poller for health checks and the refresh indicator.
type Status struct {
	Ready               bool      `json:"ready"`
	Refreshing          bool      `json:"refreshing"`
	LoadID              uint64    `json:"load_id"`
	LatestLoadID        uint64    `json:"latest_load_id"`
	LastTrigger         Trigger   `json:"last_trigger,omitempty"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastSuccess         time.Time `json:"last_success"`
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}

// Status returns a copy of the current poller status.
func (p *Poller) Status() Status {
	p.mu.Lock()
	s := p.status
	p.mu.Unlock()

	s.LatestLoadID = p.seq.Load()
	if cur := p.Current(); cur != nil {
		s.Ready = true
		s.LoadID = cur.LoadID
	}
	return s
}

// begin takes the next load id and marks a refresh in progress. The id is
// taken under the status lock so a load that started earlier can never
// record its start after a newer load has already finished.
func (p *Poller) begin(trigger Trigger) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.seq.Add(1)
	p.status.Refreshing = true
	p.status.LastTrigger = trigger
	p.status.LastAttempt = p.now()
	return id
}

// finish records the outcome of load id. Only the newest load may clear the
// refresh indicator; stale loads leave the record untouched.
func (p *Poller) finish(id uint64, err error, published bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	latest := !p.stale(id)
	switch {
	case published:
		p.status.LastSuccess = p.now()
		p.status.LastError = ""
		p.status.ConsecutiveFailures = 0
	case err != nil && latest && !errors.Is(err, errStale):
		p.status.LastError = err.Error()
		p.status.ConsecutiveFailures++
	}
	if latest {
		p.status.Refreshing = false
	}
}
