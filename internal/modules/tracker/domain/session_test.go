package domain_test

import (
	"testing"
	"time"

	"drt/internal/modules/tracker/domain"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestElapsedContinuityAcrossPause(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))

	if !s.Pause(at(5000)) {
		t.Fatalf("pause from running should transition")
	}
	frozen := s.Elapsed(at(5000))
	if frozen != 5*time.Second {
		t.Fatalf("expected 5s frozen elapsed, got %v", frozen)
	}
	if got := s.Elapsed(at(60000)); got != frozen {
		t.Fatalf("elapsed must not advance while paused, got %v", got)
	}
	if !s.Resume(at(60000)) {
		t.Fatalf("resume from paused should transition")
	}
	if got := s.Elapsed(at(60000)); got != frozen {
		t.Fatalf("elapsed must be continuous across pause, got %v want %v", got, frozen)
	}
	if got := s.Elapsed(at(61000)); got != frozen+time.Second {
		t.Fatalf("elapsed must advance again after resume, got %v", got)
	}
}

func TestPauseAndResumeAreNoOpsWhenRepeated(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))
	if s.Resume(at(100)) {
		t.Fatalf("resume while running must be a no-op")
	}
	if !s.Pause(at(1000)) {
		t.Fatalf("first pause should transition")
	}
	if s.Pause(at(2000)) {
		t.Fatalf("pause while paused must be a no-op")
	}
	if !s.Resume(at(3000)) {
		t.Fatalf("resume should transition")
	}
	// The second pause must not have moved the pause mark: only the
	// 1000..3000 gap is excluded.
	if got := s.Elapsed(at(4000)); got != 2*time.Second {
		t.Fatalf("expected 2s elapsed, got %v", got)
	}
}

func TestHistoryMergesRepeatVisitsInFirstVisitOrder(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))

	s.PageChanged(2, at(3000))  // commit page 1: 3000ms
	s.PageChanged(1, at(7000))  // commit page 2: 4000ms
	s.PageChanged(3, at(9500))  // commit page 1 again: +2500ms

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("expected one record per distinct page, got %d", len(history))
	}
	if history[0].Page != 1 || history[0].Duration != 5500*time.Millisecond {
		t.Fatalf("expected page 1 with 5500ms at position 0, got %+v", history[0])
	}
	if history[1].Page != 2 || history[1].Duration != 4000*time.Millisecond {
		t.Fatalf("expected page 2 with 4000ms at position 1, got %+v", history[1])
	}
}

func TestDwellThresholdBoundary(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))

	s.PageChanged(2, at(2000)) // exactly at threshold: skim, not committed
	if got := s.History(); len(got) != 0 {
		t.Fatalf("2000ms dwell must not be committed, got %+v", got)
	}
	if s.Live.Page != 2 || !s.Live.ReferenceTime.Equal(at(2000)) {
		t.Fatalf("live tracker must still reset on a skim, got %+v", s.Live)
	}

	s.PageChanged(3, at(4001)) // 2001ms: committed
	history := s.History()
	if len(history) != 1 || history[0].Page != 2 || history[0].Duration != 2001*time.Millisecond {
		t.Fatalf("2001ms dwell must be committed, got %+v", history)
	}
}

func TestPageChangeWhilePausedRetargetsOnly(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))
	s.Pause(at(4000))

	if !s.PageChanged(7, at(8000)) {
		t.Fatalf("page change while paused should retarget")
	}
	if len(s.History()) != 0 {
		t.Fatalf("no duration may be committed while paused")
	}
	if s.Live.Page != 7 || !s.Live.ReferenceTime.Equal(at(0)) {
		t.Fatalf("reference time must not move while paused, got %+v", s.Live)
	}

	s.Resume(at(10000))
	// Gap of 6000ms shifted the reference to t=6000; one second later the
	// retargeted page has accumulated 5s of running dwell.
	if got := s.CurrentPageDuration(at(11000)); got != 5*time.Second {
		t.Fatalf("expected 5s dwell after resume, got %v", got)
	}
}

func TestInvalidAndSamePageChangesAreDiscarded(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 3, at(0))

	for _, page := range []int{0, -4, 3} {
		if s.PageChanged(page, at(5000)) {
			t.Fatalf("page %d must be discarded", page)
		}
	}
	if s.Live.Page != 3 || !s.Live.ReferenceTime.Equal(at(0)) {
		t.Fatalf("live tracker must be preserved, got %+v", s.Live)
	}
	if len(s.History()) != 0 {
		t.Fatalf("history must be untouched")
	}
}

func TestCurrentPageDurationFreezesWhilePaused(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))
	s.PageChanged(2, at(3000))
	s.Pause(at(4500))

	if got := s.CurrentPageDuration(at(4500)); got != 1500*time.Millisecond {
		t.Fatalf("expected 1500ms at pause instant, got %v", got)
	}
	if got := s.CurrentPageDuration(at(90000)); got != 1500*time.Millisecond {
		t.Fatalf("dwell must stay frozen while paused, got %v", got)
	}
}

func TestPauseResumeEndToEndScenario(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))

	s.PageChanged(2, at(3000)) // commit {page 1, 3000ms}
	s.Pause(at(3000))
	s.Resume(at(10000)) // gap 7000ms

	// Dwell measured since the corrected reference (3000+7000) is 1000ms,
	// below threshold: not committed.
	s.PageChanged(3, at(11000))

	history := s.History()
	if len(history) != 1 || history[0].Page != 1 || history[0].Duration != 3000*time.Millisecond {
		t.Fatalf("expected only {page 1, 3000ms}, got %+v", history)
	}
	if got := s.Elapsed(at(11000)); got != 4*time.Second {
		t.Fatalf("expected 4s elapsed, got %v", got)
	}
	if s.Live.Page != 3 || !s.Live.ReferenceTime.Equal(at(11000)) {
		t.Fatalf("live tracker must point at page 3 from t=11000, got %+v", s.Live)
	}
}

func TestNewSessionClampsNonPositivePage(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 0, at(0))
	if s.Live.Page != 1 {
		t.Fatalf("expected page clamp to 1, got %d", s.Live.Page)
	}
}

func TestStatsDerivation(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))

	empty := s.Stats(at(30000))
	if empty.PagesRead != 0 || empty.TotalRecordedTime != 0 || empty.AverageTimePerPage != 0 {
		t.Fatalf("empty history must derive zero stats, got %+v", empty)
	}

	s.PageChanged(2, at(3000))
	s.PageChanged(3, at(8000))

	stats := s.Stats(at(8000))
	if stats.PagesRead != 2 {
		t.Fatalf("expected 2 pages read, got %d", stats.PagesRead)
	}
	if stats.TotalRecordedTime != 8*time.Second {
		t.Fatalf("expected 8s total, got %v", stats.TotalRecordedTime)
	}
	if stats.AverageTimePerPage != 4*time.Second {
		t.Fatalf("expected 4s average, got %v", stats.AverageTimePerPage)
	}
}

func TestPagesPerHourIsFloorStabilized(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("doc-1", 1, at(0))
	s.PageChanged(2, at(3000))

	// 3s of elapsed time: the rate uses the 60s floor, not the raw window.
	early := s.Stats(at(3000))
	if early.PagesPerHour != 60 {
		t.Fatalf("expected floor-stabilized 60 pages/hour, got %v", early.PagesPerHour)
	}

	// Past the floor the true elapsed window takes over: 1 page in 2h.
	late := s.Stats(t0.Add(2 * time.Hour))
	if late.PagesPerHour != 0.5 {
		t.Fatalf("expected 0.5 pages/hour, got %v", late.PagesPerHour)
	}
}
