package cmd

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchLoopFollowsGivenInterval(t *testing.T) {
	var renders atomic.Int64
	done := make(chan struct{})
	go func() {
		time.Sleep(120 * time.Millisecond)
		close(done)
	}()

	watchLoop(25*time.Millisecond, done, func() error {
		renders.Add(1)
		return nil
	}, func(error) {})

	got := renders.Load()
	if got < 3 || got > 6 {
		t.Fatalf("rendered %d times over 120ms at a 25ms cadence", got)
	}
}

func TestWatchLoopSurfacesRenderErrors(t *testing.T) {
	var reported atomic.Int64
	done := make(chan struct{})
	go func() {
		time.Sleep(60 * time.Millisecond)
		close(done)
	}()

	watchLoop(20*time.Millisecond, done, func() error {
		return errors.New("stale")
	}, func(error) {
		reported.Add(1)
	})

	if reported.Load() == 0 {
		t.Fatal("render errors not surfaced")
	}
}

func TestWatchLoopStopsOnDone(t *testing.T) {
	var renders atomic.Int64
	done := make(chan struct{})
	close(done)

	finished := make(chan struct{})
	go func() {
		watchLoop(5*time.Millisecond, done, func() error {
			renders.Add(1)
			return nil
		}, func(error) {})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on done")
	}
}
