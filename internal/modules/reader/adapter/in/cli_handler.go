package in

import (
	"context"

	"drt/internal/modules/reader/dto"
	readerin "drt/internal/modules/reader/port/in"
)

type CLIHandler struct {
	usecase readerin.Usecase
}

func NewCLIHandler(usecase readerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) OpenDocument(ctx context.Context, documentID, mode string, page int, launchExternal bool) (dto.OpenResult, error) {
	return h.usecase.OpenDocument(ctx, dto.OpenDocumentInput{DocumentID: documentID, Mode: mode, Page: page, LaunchExternal: launchExternal})
}
