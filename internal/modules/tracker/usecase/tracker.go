package usecase

import (
	"context"

	"drt/internal/modules/tracker/dto"
	trackerin "drt/internal/modules/tracker/port/in"
	"drt/internal/modules/tracker/service"
)

type Interactor struct {
	svc *service.TrackerService
}

func NewInteractor(svc *service.TrackerService) trackerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Open(_ context.Context, input dto.OpenInput) {
	i.svc.Open(input.DocumentID, input.Page)
}

func (i *Interactor) Close(_ context.Context) {
	i.svc.Close()
}

func (i *Interactor) PageChanged(_ context.Context, input dto.PageChangedInput) {
	i.svc.PageChanged(input.Page)
}

func (i *Interactor) Activity(_ context.Context) {
	i.svc.Activity()
}

func (i *Interactor) TogglePause(_ context.Context) dto.ToggleOutput {
	panelOpen, paused := i.svc.TogglePause()
	return dto.ToggleOutput{PanelOpen: panelOpen, Paused: paused}
}

func (i *Interactor) Snapshot(_ context.Context) dto.SnapshotOutput {
	snap := i.svc.Snapshot()
	out := dto.SnapshotOutput{
		PanelOpen:           snap.PanelOpen,
		Paused:              snap.Paused,
		DocumentID:          snap.DocumentID,
		StartTime:           snap.StartTime,
		Elapsed:             snap.Elapsed,
		CurrentPage:         snap.CurrentPage,
		CurrentPageDuration: snap.CurrentPageDuration,
		PagesRead:           snap.Stats.PagesRead,
		TotalRecordedTime:   snap.Stats.TotalRecordedTime,
		AverageTimePerPage:  snap.Stats.AverageTimePerPage,
		PagesPerHour:        snap.Stats.PagesPerHour,
	}
	out.History = make([]dto.DwellOutput, 0, len(snap.History))
	for _, rec := range snap.History {
		out.History = append(out.History, dto.DwellOutput{Page: rec.Page, Duration: rec.Duration})
	}
	return out
}
