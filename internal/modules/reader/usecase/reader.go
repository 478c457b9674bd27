package usecase

import (
	"context"

	"drt/internal/modules/reader/dto"
	readerin "drt/internal/modules/reader/port/in"
	"drt/internal/modules/reader/service"
)

type Interactor struct {
	svc *service.ReaderService
}

func NewInteractor(svc *service.ReaderService) readerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OpenMarkdown(ctx context.Context, input dto.OpenMarkdownInput) (dto.OpenMarkdownOutput, error) {
	content, err := i.svc.OpenMarkdown(ctx, input.Path)
	if err != nil {
		return dto.OpenMarkdownOutput{}, err
	}
	return dto.OpenMarkdownOutput{Content: content}, nil
}

func (i *Interactor) OpenPDF(ctx context.Context, input dto.OpenPDFInput) (dto.OpenPDFOutput, error) {
	page, total, err := i.svc.OpenPDF(ctx, input.Path, input.Page)
	if err != nil {
		return dto.OpenPDFOutput{}, err
	}
	return dto.OpenPDFOutput{Page: page.Number, TotalPage: total, Text: page.Text}, nil
}

func (i *Interactor) OpenDocument(ctx context.Context, input dto.OpenDocumentInput) (dto.OpenResult, error) {
	mode, document, page, total, content, launched, err := i.svc.OpenDocument(ctx, input.DocumentID, input.Mode, input.Page, input.LaunchExternal)
	if err != nil {
		return dto.OpenResult{}, err
	}
	result := dto.OpenResult{
		DocumentID:       document.ID,
		Title:            document.Title,
		Type:             document.Type,
		Mode:             mode,
		Page:             page.Number,
		TotalPage:        total,
		Content:          content,
		Percent:          document.Percent,
		ExternalLaunched: launched,
	}
	if mode == "external" {
		if document.URL != "" {
			result.ExternalTarget = document.URL
		} else {
			result.ExternalTarget = document.FilePath
		}
	}
	return result, nil
}

func (i *Interactor) SavePosition(ctx context.Context, input dto.SavePositionInput) error {
	return i.svc.SavePosition(ctx, input.DocumentID, input.PageCurrent, input.PageTotal)
}
