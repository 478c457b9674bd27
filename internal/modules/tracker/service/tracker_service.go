package service

import (
	"sync"
	"time"

	"drt/internal/modules/tracker/domain"
	"drt/internal/platform/clock"
)

// Snapshot is an instantaneous, read-only view of the tracker. Reads take
// the same lock as mutations but never change state.
type Snapshot struct {
	PanelOpen           bool
	Paused              bool
	DocumentID          string
	StartTime           time.Time
	Elapsed             time.Duration
	CurrentPage         int
	CurrentPageDuration time.Duration
	Stats               domain.DerivedStats
	History             []domain.DwellRecord
}

// TrackerService owns the reading session for the currently open document.
// All four mutation paths (open/reset, page change, toggle, idle timeout)
// funnel through one mutex, so the resume dual shift and every other
// transition apply atomically even though timer callbacks and bubbletea
// commands arrive on other goroutines.
type TrackerService struct {
	clock clock.Clock

	mu        sync.Mutex
	session   *domain.Session
	panelOpen bool

	idleTimer clock.Timer
	idleGen   uint64
}

func NewTrackerService(clock clock.Clock) *TrackerService {
	return &TrackerService{clock: clock}
}

// Open resets the tracker for a newly current document: fresh time base,
// empty history, running, watchdog armed.
func (s *TrackerService) Open(documentID string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.NewSession(documentID, page, s.clock.Now())
	s.rearmLocked()
}

// Close drops the session and releases the idle timer. Safe to call twice;
// no background work survives it.
func (s *TrackerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.disarmLocked()
}

// PageChanged forwards a page-change event to the session.
func (s *TrackerService) PageChanged(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return
	}
	s.session.PageChanged(page, s.clock.Now())
}

// Activity restarts the idle countdown. The watchdog is only armed while
// the clock is running, so activity during a pause is ignored.
func (s *TrackerService) Activity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.Paused() {
		return
	}
	s.rearmLocked()
}

// TogglePause is the single control surface for the tracking panel and the
// pause state: a hidden panel becomes visible with the clock left running;
// a visible panel pauses a running clock; a paused clock resumes regardless
// of panel visibility.
func (s *TrackerService) TogglePause() (panelOpen, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.session != nil && s.session.Paused():
		s.session.Resume(s.clock.Now())
		s.rearmLocked()
	case !s.panelOpen:
		// Viewing the tracker does not imply pausing.
		s.panelOpen = true
	case s.session != nil:
		s.session.Pause(s.clock.Now())
		s.disarmLocked()
	default:
		// No open document: plain visibility toggle.
		s.panelOpen = false
	}
	return s.panelOpen, s.session != nil && s.session.Paused()
}

// Snapshot derives the presentation view of the tracker at this instant.
func (s *TrackerService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{PanelOpen: s.panelOpen}
	if s.session == nil {
		return snap
	}
	now := s.clock.Now()
	snap.Paused = s.session.Paused()
	snap.DocumentID = s.session.DocumentID
	snap.StartTime = s.session.StartTime
	snap.Elapsed = s.session.Elapsed(now)
	snap.CurrentPage = s.session.Live.Page
	snap.CurrentPageDuration = s.session.CurrentPageDuration(now)
	snap.Stats = s.session.Stats(now)
	snap.History = s.session.History()
	return snap
}

func (s *TrackerService) rearmLocked() {
	s.disarmLocked()
	s.idleGen++
	gen := s.idleGen
	s.idleTimer = s.clock.AfterFunc(domain.IdleTimeout, func() {
		s.idleExpired(gen)
	})
}

func (s *TrackerService) disarmLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
}

// idleExpired runs on the timer goroutine. Stop cannot un-fire a callback
// already in flight, so stale generations are dropped here before they can
// pause a session that was re-armed or replaced in the meantime.
func (s *TrackerService) idleExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.idleGen || s.session == nil {
		return
	}
	if s.session.Pause(s.clock.Now()) {
		s.idleTimer = nil
	}
}
