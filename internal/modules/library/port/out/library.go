package out

import (
	"context"

	"drt/internal/modules/library/domain"
)

type DocumentStore interface {
	Save(ctx context.Context, note domain.DocumentNote) (string, error)
	FindByID(ctx context.Context, id string) (domain.DocumentNote, error)
	List(ctx context.Context) ([]domain.DocumentNote, error)
}

// DocumentIndexProjector maintains a derived, queryable index of the vault.
type DocumentIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertDocument(ctx context.Context, document domain.Document) error
}
