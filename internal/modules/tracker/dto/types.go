package dto

import "time"

type OpenInput struct {
	DocumentID string
	Page       int
}

type PageChangedInput struct {
	Page int
}

type ToggleOutput struct {
	PanelOpen bool
	Paused    bool
}

type DwellOutput struct {
	Page     int
	Duration time.Duration
}

type SnapshotOutput struct {
	PanelOpen           bool
	Paused              bool
	DocumentID          string
	StartTime           time.Time
	Elapsed             time.Duration
	CurrentPage         int
	CurrentPageDuration time.Duration
	PagesRead           int
	TotalRecordedTime   time.Duration
	AverageTimePerPage  time.Duration
	PagesPerHour        float64
	History             []DwellOutput
}
