package out

import (
	"context"

	"drt/internal/modules/library/dto"
	libraryin "drt/internal/modules/library/port/in"
	readerout "drt/internal/modules/reader/port/out"
)

type LibraryProgressAdapter struct {
	library libraryin.Usecase
}

func NewLibraryProgressAdapter(library libraryin.Usecase) readerout.ProgressPort {
	return &LibraryProgressAdapter{library: library}
}

func (a *LibraryProgressAdapter) Update(ctx context.Context, documentID string, percent float64, pageCurrent, pageTotal int) error {
	_, err := a.library.UpdateProgress(ctx, dto.UpdateProgressInput{
		DocumentID:  documentID,
		Percent:     percent,
		PageCurrent: pageCurrent,
		PageTotal:   pageTotal,
	})
	return err
}
