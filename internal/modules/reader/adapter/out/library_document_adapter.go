package out

import (
	"context"

	libraryin "drt/internal/modules/library/port/in"
	"drt/internal/modules/reader/domain"
	readerout "drt/internal/modules/reader/port/out"
)

type LibraryDocumentAdapter struct {
	library libraryin.Usecase
}

func NewLibraryDocumentAdapter(library libraryin.Usecase) readerout.DocumentResolver {
	return &LibraryDocumentAdapter{library: library}
}

func (a *LibraryDocumentAdapter) Resolve(ctx context.Context, documentID string) (domain.DocumentRef, error) {
	document, err := a.library.GetDocument(ctx, documentID)
	if err != nil {
		return domain.DocumentRef{}, err
	}
	return domain.DocumentRef{
		ID:          document.ID,
		Title:       document.Title,
		Type:        document.Type,
		URL:         document.URL,
		FilePath:    document.FilePath,
		NotePath:    document.NotePath,
		Percent:     document.Percent,
		PageCurrent: document.PageCurrent,
		PageTotal:   document.PageTotal,
	}, nil
}
