package service_test

import (
	"testing"
	"time"

	"drt/internal/modules/tracker/domain"
	"drt/internal/modules/tracker/service"
	"drt/internal/platform/clock"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(_ time.Duration, fn func()) clock.Timer {
	t := &fakeTimer{fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// fireLast simulates expiry of the most recently armed timer.
func (c *fakeClock) fireLast() {
	if len(c.timers) == 0 {
		return
	}
	c.timers[len(c.timers)-1].fn()
}

func (c *fakeClock) armedCount() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func TestIdleTimeoutPausesRunningSession(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	clk.advance(domain.IdleTimeout)
	clk.fireLast()

	snap := svc.Snapshot()
	if !snap.Paused {
		t.Fatalf("idle timeout must pause the session")
	}
	if snap.Elapsed != domain.IdleTimeout {
		t.Fatalf("elapsed must freeze at the pause instant, got %v", snap.Elapsed)
	}
}

func TestActivityRestartsCountdownAndStaleCallbackIsDropped(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	stale := clk.timers[len(clk.timers)-1]
	clk.advance(30 * time.Second)
	svc.Activity()

	if !stale.stopped {
		t.Fatalf("activity must cancel the previous idle timer")
	}
	// A Stop that raced with expiry: the callback still arrives but must be
	// discarded by the generation guard.
	stale.fn()
	if svc.Snapshot().Paused {
		t.Fatalf("stale idle callback must not pause the session")
	}

	clk.advance(domain.IdleTimeout)
	clk.fireLast()
	if !svc.Snapshot().Paused {
		t.Fatalf("rearmed timer must still pause on expiry")
	}
}

func TestIdleWatchdogIsNotArmedWhilePaused(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	svc.TogglePause() // show panel
	svc.TogglePause() // pause
	armed := clk.armedCount()

	svc.Activity()
	if clk.armedCount() != armed {
		t.Fatalf("activity while paused must not arm the watchdog")
	}

	svc.TogglePause() // resume
	if clk.armedCount() != armed+1 {
		t.Fatalf("resume must rearm the watchdog")
	}
}

func TestTogglePauseAsymmetry(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	open, paused := svc.TogglePause()
	if !open || paused {
		t.Fatalf("first toggle must show the panel and keep running, got open=%t paused=%t", open, paused)
	}
	open, paused = svc.TogglePause()
	if !open || !paused {
		t.Fatalf("second toggle must pause, got open=%t paused=%t", open, paused)
	}
	open, paused = svc.TogglePause()
	if !open || paused {
		t.Fatalf("third toggle must resume, got open=%t paused=%t", open, paused)
	}
}

func TestPausedSessionResumesEvenWithHiddenPanel(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	clk.advance(domain.IdleTimeout)
	clk.fireLast()
	if !svc.Snapshot().Paused {
		t.Fatalf("setup: idle pause expected")
	}

	open, paused := svc.TogglePause()
	if paused {
		t.Fatalf("toggle on a paused clock must resume regardless of panel visibility")
	}
	if open {
		t.Fatalf("resuming must not open the panel as a side effect")
	}
}

func TestOpenResetsSessionForNewDocument(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)

	svc.Open("doc-1", 1)
	clk.advance(5 * time.Second)
	svc.PageChanged(2)
	clk.advance(10 * time.Second)

	svc.Open("doc-2", 4)
	snap := svc.Snapshot()
	if snap.DocumentID != "doc-2" || snap.CurrentPage != 4 {
		t.Fatalf("expected fresh session for doc-2 page 4, got %+v", snap)
	}
	if len(snap.History) != 0 || snap.Elapsed != 0 || snap.Paused {
		t.Fatalf("document change must fully reset the tracker, got %+v", snap)
	}
}

func TestCloseReleasesWatchdogAndSession(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	last := clk.timers[len(clk.timers)-1]
	svc.Close()
	if !last.stopped {
		t.Fatalf("close must stop the idle timer")
	}

	last.fn() // in-flight callback after teardown
	snap := svc.Snapshot()
	if snap.DocumentID != "" || snap.Paused {
		t.Fatalf("closed tracker must report an empty snapshot, got %+v", snap)
	}
	svc.Close() // second close is harmless
}

func TestSnapshotIsReadOnly(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	svc := service.NewTrackerService(clk)
	svc.Open("doc-1", 1)

	clk.advance(3 * time.Second)
	svc.PageChanged(2)

	first := svc.Snapshot()
	clk.advance(700 * time.Millisecond)
	second := svc.Snapshot()

	if len(first.History) != 1 || len(second.History) != 1 {
		t.Fatalf("snapshots must observe the same committed history")
	}
	if second.Elapsed-first.Elapsed != 700*time.Millisecond {
		t.Fatalf("snapshot reads must not disturb the time base, got %v and %v", first.Elapsed, second.Elapsed)
	}
	if second.CurrentPageDuration != 700*time.Millisecond {
		t.Fatalf("expected 700ms on the current page, got %v", second.CurrentPageDuration)
	}
}

func TestPageChangedBeforeOpenIsIgnored(t *testing.T) {
	t.Parallel()
	svc := service.NewTrackerService(newFakeClock())
	svc.PageChanged(3)
	svc.Activity()
	if snap := svc.Snapshot(); snap.DocumentID != "" {
		t.Fatalf("events before open must be discarded, got %+v", snap)
	}
}
