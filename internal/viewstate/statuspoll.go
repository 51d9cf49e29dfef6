package viewstate

import (
	"context"
	"time"

	"github.com/nordvik/glance/internal/recall"
)

// DefaultStatusInterval is the polling period for recorder status.
const DefaultStatusInterval = 30 * time.Second

// StatusPoller owns the best-effort recorder status. Fetch failures are
// swallowed entirely: the previous status (or none) is retained and the next
// tick simply tries again. Status never blocks or alarms the rest of the UI.
type StatusPoller struct {
	Status  *recall.StatusResponse
	Loading bool

	interval time.Duration
}

// NewStatusPoller creates a poller. interval <= 0 falls back to
// DefaultStatusInterval.
func NewStatusPoller(interval time.Duration) *StatusPoller {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	return &StatusPoller{interval: interval}
}

// Interval returns the polling period the host should schedule ticks at.
func (p *StatusPoller) Interval() time.Duration { return p.interval }

// Begin marks a fetch in flight. A manual refetch uses the same transition
// and does not affect the tick schedule.
func (p *StatusPoller) Begin() { p.Loading = true }

// Apply applies a fetch completion. Errors retain the previous status.
func (p *StatusPoller) Apply(st *recall.StatusResponse, err error) {
	p.Loading = false
	if err != nil {
		return
	}
	p.Status = st
}

// Bucket returns the derived recorder bucket. ok is false before the first
// successful fetch, when the indicator should render as unknown.
func (p *StatusPoller) Bucket() (recall.Bucket, bool) {
	if p.Status == nil {
		return "", false
	}
	return p.Status.Bucket(), true
}

// Run polls fetch immediately and then every Interval until ctx is
// cancelled, which provably stops the ticker. onUpdate (optional) fires
// after every successful fetch. Run owns the poller for its duration; it is
// meant for embedding the poller outside a message-driven UI, where the
// Begin/Apply pair is used instead.
func (p *StatusPoller) Run(ctx context.Context, fetch func(context.Context) (*recall.StatusResponse, error), onUpdate func(*recall.StatusResponse)) {
	poll := func() {
		p.Begin()
		st, err := fetch(ctx)
		p.Apply(st, err)
		if err == nil && onUpdate != nil {
			onUpdate(st)
		}
	}

	poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
