package in

import (
	"context"

	"drt/internal/modules/library/dto"
)

type Usecase interface {
	IngestFile(ctx context.Context, input dto.IngestFileInput) (dto.DocumentOutput, error)
	IngestURL(ctx context.Context, input dto.IngestURLInput) (dto.DocumentOutput, error)
	UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.DocumentOutput, error)
	ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error)
	GetDocument(ctx context.Context, id string) (dto.DocumentDetailOutput, error)
	Reindex(ctx context.Context) error
}
