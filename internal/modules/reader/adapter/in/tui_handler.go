package in

import (
	"context"

	"drt/internal/modules/reader/dto"
	readerin "drt/internal/modules/reader/port/in"
)

type TUIHandler struct {
	usecase readerin.Usecase
}

func NewTUIHandler(usecase readerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) OpenDocument(ctx context.Context, documentID, mode string, page int, launchExternal bool) (dto.OpenResult, error) {
	return h.usecase.OpenDocument(ctx, dto.OpenDocumentInput{DocumentID: documentID, Mode: mode, Page: page, LaunchExternal: launchExternal})
}

func (h TUIHandler) SavePosition(ctx context.Context, documentID string, pageCurrent, pageTotal int) error {
	return h.usecase.SavePosition(ctx, dto.SavePositionInput{DocumentID: documentID, PageCurrent: pageCurrent, PageTotal: pageTotal})
}
