package in

import (
	"context"

	"drt/internal/modules/library/dto"
	libraryin "drt/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) IngestFile(ctx context.Context, docType, path, title string, authors, tags []string) (dto.DocumentOutput, error) {
	return h.usecase.IngestFile(ctx, dto.IngestFileInput{
		Path:    path,
		Type:    docType,
		Title:   title,
		Authors: authors,
		Tags:    tags,
	})
}

func (h CLIHandler) IngestURL(ctx context.Context, docType, url, title string, authors, tags []string) (dto.DocumentOutput, error) {
	return h.usecase.IngestURL(ctx, dto.IngestURLInput{
		URL:     url,
		Type:    docType,
		Title:   title,
		Authors: authors,
		Tags:    tags,
	})
}

func (h CLIHandler) UpdateProgress(ctx context.Context, documentID string, percent float64, pageCurrent, pageTotal int) (dto.DocumentOutput, error) {
	return h.usecase.UpdateProgress(ctx, dto.UpdateProgressInput{DocumentID: documentID, Percent: percent, PageCurrent: pageCurrent, PageTotal: pageTotal})
}

func (h CLIHandler) ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error) {
	return h.usecase.ListDocuments(ctx)
}

func (h CLIHandler) GetDocument(ctx context.Context, id string) (dto.DocumentDetailOutput, error) {
	return h.usecase.GetDocument(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
