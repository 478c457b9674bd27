package usecase

import (
	"context"

	"drt/internal/modules/library/domain"
	"drt/internal/modules/library/dto"
	libraryin "drt/internal/modules/library/port/in"
	"drt/internal/modules/library/service"
)

type Interactor struct {
	svc *service.DocumentService
}

func NewInteractor(svc *service.DocumentService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) IngestFile(ctx context.Context, input dto.IngestFileInput) (dto.DocumentOutput, error) {
	document, path, err := i.svc.IngestFile(ctx, domain.DocumentType(input.Type), input.Path, input.Title, input.Authors, input.Tags)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toOutput(document, path), nil
}

func (i *Interactor) IngestURL(ctx context.Context, input dto.IngestURLInput) (dto.DocumentOutput, error) {
	document, path, err := i.svc.IngestURL(ctx, domain.DocumentType(input.Type), input.URL, input.Title, input.Authors, input.Tags)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toOutput(document, path), nil
}

func (i *Interactor) UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.DocumentOutput, error) {
	document, err := i.svc.UpdateProgress(ctx, input.DocumentID, input.Percent, input.PageCurrent, input.PageTotal)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toOutput(document, document.NotePath), nil
}

func (i *Interactor) ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error) {
	documents, err := i.svc.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentOutput, 0, len(documents))
	for _, document := range documents {
		out = append(out, toOutput(document, document.NotePath))
	}
	return out, nil
}

func (i *Interactor) GetDocument(ctx context.Context, id string) (dto.DocumentDetailOutput, error) {
	document, err := i.svc.GetDocument(ctx, id)
	if err != nil {
		return dto.DocumentDetailOutput{}, err
	}
	return dto.DocumentDetailOutput{
		ID:          document.ID,
		Title:       document.Title,
		Type:        string(document.Type),
		Authors:     document.Authors,
		URL:         document.URL,
		FilePath:    document.FilePath,
		NotePath:    document.NotePath,
		Status:      document.Status,
		Percent:     document.ProgressPct,
		PageCurrent: document.PageCurrent,
		PageTotal:   document.PageTotal,
		Tags:        document.Tags,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(document domain.Document, path string) dto.DocumentOutput {
	return dto.DocumentOutput{
		ID:       document.ID,
		Title:    document.Title,
		Type:     string(document.Type),
		Percent:  document.ProgressPct,
		NotePath: path,
	}
}
