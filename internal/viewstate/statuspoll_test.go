package viewstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nordvik/glance/internal/recall"
)

func TestStatusApplyRetainsPreviousOnError(t *testing.T) {
	p := NewStatusPoller(0)
	if p.Interval() != DefaultStatusInterval {
		t.Errorf("interval = %v, want %v", p.Interval(), DefaultStatusInterval)
	}

	// Failure before any success: still no status.
	p.Begin()
	p.Apply(nil, errors.New("unreachable"))
	if p.Status != nil || p.Loading {
		t.Errorf("state = %+v", p)
	}
	if _, ok := p.Bucket(); ok {
		t.Error("Bucket should report unknown before first success")
	}

	p.Begin()
	p.Apply(&recall.StatusResponse{Status: "active", Recording: true}, nil)
	if b, ok := p.Bucket(); !ok || b != recall.BucketActive {
		t.Errorf("bucket = %v ok=%v", b, ok)
	}

	// Later failure keeps the last good status.
	p.Begin()
	p.Apply(nil, errors.New("unreachable"))
	if p.Status == nil || p.Status.Status != "active" {
		t.Errorf("status after failure = %+v", p.Status)
	}
}

func TestStatusRunPollsOnInterval(t *testing.T) {
	p := NewStatusPoller(20 * time.Millisecond)

	var calls atomic.Int64
	fetch := func(context.Context) (*recall.StatusResponse, error) {
		calls.Add(1)
		return &recall.StatusResponse{Recording: true}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, fetch, nil)
		close(done)
	}()

	// Immediate fetch plus at least one tick.
	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("only %d fetches before deadline", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancellation")
	}

	// The ticker must be gone: no further fetches after Run returns.
	settled := calls.Load()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != settled {
		t.Errorf("fetches continued after cancellation: %d -> %d", settled, calls.Load())
	}
}

func TestStatusRunCancelledBeforeFirstTick(t *testing.T) {
	p := NewStatusPoller(time.Hour)

	var calls atomic.Int64
	fetch := func(context.Context) (*recall.StatusResponse, error) {
		calls.Add(1)
		return nil, errors.New("down")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, fetch, nil)
		close(done)
	}()

	// Let the immediate fetch happen, then deactivate before the first tick.
	deadline := time.After(2 * time.Second)
	for calls.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("immediate fetch never happened")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
	if calls.Load() != 1 {
		t.Errorf("fetches = %d, want exactly the immediate one", calls.Load())
	}
}

func TestStatusRunNotifiesOnSuccessOnly(t *testing.T) {
	p := NewStatusPoller(10 * time.Millisecond)

	var fetches atomic.Int64
	fetch := func(context.Context) (*recall.StatusResponse, error) {
		if fetches.Add(1)%2 == 0 {
			return nil, errors.New("flaky")
		}
		return &recall.StatusResponse{Paused: true}, nil
	}

	var updates atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, fetch, func(*recall.StatusResponse) { updates.Add(1) })
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for fetches.Load() < 4 {
		select {
		case <-deadline:
			t.Fatalf("only %d fetches", fetches.Load())
		case <-time.After(2 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if updates.Load() == 0 || updates.Load() >= fetches.Load() {
		t.Errorf("updates = %d, fetches = %d; want updates only for successes", updates.Load(), fetches.Load())
	}
}
