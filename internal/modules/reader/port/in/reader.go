package in

import (
	"context"

	"drt/internal/modules/reader/dto"
)

type Usecase interface {
	OpenMarkdown(ctx context.Context, input dto.OpenMarkdownInput) (dto.OpenMarkdownOutput, error)
	OpenPDF(ctx context.Context, input dto.OpenPDFInput) (dto.OpenPDFOutput, error)
	OpenDocument(ctx context.Context, input dto.OpenDocumentInput) (dto.OpenResult, error)
	SavePosition(ctx context.Context, input dto.SavePositionInput) error
}
