package in

import (
	"context"

	trackerdto "drt/internal/modules/tracker/dto"
	trackerin "drt/internal/modules/tracker/port/in"
)

type TUIHandler struct {
	usecase trackerin.Usecase
}

func NewTUIHandler(usecase trackerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Open(ctx context.Context, documentID string, page int) {
	h.usecase.Open(ctx, trackerdto.OpenInput{DocumentID: documentID, Page: page})
}

func (h TUIHandler) Close(ctx context.Context) {
	h.usecase.Close(ctx)
}

func (h TUIHandler) PageChanged(ctx context.Context, page int) {
	h.usecase.PageChanged(ctx, trackerdto.PageChangedInput{Page: page})
}

func (h TUIHandler) Activity(ctx context.Context) {
	h.usecase.Activity(ctx)
}

func (h TUIHandler) TogglePause(ctx context.Context) trackerdto.ToggleOutput {
	return h.usecase.TogglePause(ctx)
}

func (h TUIHandler) Snapshot(ctx context.Context) trackerdto.SnapshotOutput {
	return h.usecase.Snapshot(ctx)
}
