package domain

import "time"

const (
	// DwellCommitThreshold is the anti-skim cutoff: a dwell interval must be
	// strictly longer than this to be committed to history. Rapid page flips
	// (a jump-to-page, riffling with arrow keys) stay out of the statistics.
	DwellCommitThreshold = 2000 * time.Millisecond

	// IdleTimeout is how long the session may go without user activity
	// before the watchdog pauses it.
	IdleTimeout = 120 * time.Second

	// MinRateWindow floors the elapsed time used for the pages-per-hour
	// figure so the rate does not blow up right after session start.
	MinRateWindow = 60 * time.Second
)

// DwellRecord is the committed reading time for one page.
type DwellRecord struct {
	Page     int
	Duration time.Duration
}

// LiveTracker is the page currently on screen and when its dwell
// measurement began.
type LiveTracker struct {
	Page          int
	ReferenceTime time.Time
}

// Session is the pause-aware time base for one open document together with
// the per-page dwell ledger. Every method takes the current time explicitly;
// the session never reads a clock of its own. Callers own synchronization:
// the service layer funnels all mutations through a single lock.
type Session struct {
	DocumentID string
	StartTime  time.Time
	Live       LiveTracker

	pauseStartedAt time.Time
	paused         bool

	history []DwellRecord
	index   map[int]int // page number -> position in history
}

// NewSession starts a fresh time base for a document showing page at now.
func NewSession(documentID string, page int, now time.Time) *Session {
	if page < 1 {
		page = 1
	}
	return &Session{
		DocumentID: documentID,
		StartTime:  now,
		Live:       LiveTracker{Page: page, ReferenceTime: now},
		index:      map[int]int{},
	}
}

func (s *Session) Paused() bool { return s.paused }

// Elapsed returns the session duration net of paused intervals. While paused
// the value is frozen at the instant the pause began.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.paused {
		return s.pauseStartedAt.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// Pause freezes the time base. Reports false when already paused.
func (s *Session) Pause(now time.Time) bool {
	if s.paused {
		return false
	}
	s.pauseStartedAt = now
	s.paused = true
	return true
}

// Resume shifts StartTime and the live reference forward by the paused gap
// so neither elapsed time nor the current page's dwell counts the pause.
// The two shifts are one correction and must not be observed half-applied.
// Reports false when not paused.
func (s *Session) Resume(now time.Time) bool {
	if !s.paused {
		return false
	}
	gap := now.Sub(s.pauseStartedAt)
	s.StartTime = s.StartTime.Add(gap)
	s.Live.ReferenceTime = s.Live.ReferenceTime.Add(gap)
	s.pauseStartedAt = time.Time{}
	s.paused = false
	return true
}

// PageChanged moves the live tracker to page, committing the dwell on the
// previous page when it exceeds DwellCommitThreshold. Non-positive pages and
// same-page events are discarded with prior state preserved. Reports whether
// anything changed.
func (s *Session) PageChanged(page int, now time.Time) bool {
	if page < 1 || page == s.Live.Page {
		return false
	}
	if s.paused {
		// Retarget only; Resume retroactively corrects the reference time.
		s.Live.Page = page
		return true
	}
	s.commit(now.Sub(s.Live.ReferenceTime))
	// The reference resets even below threshold so the next interval is
	// measured from this page boundary.
	s.Live = LiveTracker{Page: page, ReferenceTime: now}
	return true
}

func (s *Session) commit(d time.Duration) {
	if d <= DwellCommitThreshold {
		return
	}
	if pos, ok := s.index[s.Live.Page]; ok {
		s.history[pos].Duration += d
		return
	}
	s.index[s.Live.Page] = len(s.history)
	s.history = append(s.history, DwellRecord{Page: s.Live.Page, Duration: d})
}

// CurrentPageDuration returns how long the live page has been on screen,
// frozen at the pause instant while paused.
func (s *Session) CurrentPageDuration(now time.Time) time.Duration {
	if s.paused {
		return s.pauseStartedAt.Sub(s.Live.ReferenceTime)
	}
	return now.Sub(s.Live.ReferenceTime)
}

// History returns the committed dwell records ordered by first visit.
func (s *Session) History() []DwellRecord {
	out := make([]DwellRecord, len(s.history))
	copy(out, s.history)
	return out
}
