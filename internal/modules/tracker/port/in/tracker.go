package in

import (
	"context"

	"drt/internal/modules/tracker/dto"
)

// Usecase is the tracker's inbound port. Its operations are total over
// well-formed inputs: out-of-domain events are discarded at the boundary,
// so nothing here returns an error.
type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput)
	Close(ctx context.Context)
	PageChanged(ctx context.Context, input dto.PageChangedInput)
	Activity(ctx context.Context)
	TogglePause(ctx context.Context) dto.ToggleOutput
	Snapshot(ctx context.Context) dto.SnapshotOutput
}
