package domain

import "time"

// DerivedStats are the read-side summary metrics. They are recomputed on
// every call, never stored.
type DerivedStats struct {
	PagesRead          int
	TotalRecordedTime  time.Duration
	AverageTimePerPage time.Duration
	PagesPerHour       float64
}

// Stats derives summary metrics from the session at the given instant.
func (s *Session) Stats(now time.Time) DerivedStats {
	stats := DerivedStats{PagesRead: len(s.history)}
	for _, rec := range s.history {
		stats.TotalRecordedTime += rec.Duration
	}
	if stats.PagesRead > 0 {
		stats.AverageTimePerPage = stats.TotalRecordedTime / time.Duration(stats.PagesRead)
	}
	window := s.Elapsed(now)
	if window < MinRateWindow {
		window = MinRateWindow
	}
	stats.PagesPerHour = float64(stats.PagesRead) / float64(window) * float64(time.Hour)
	return stats
}
