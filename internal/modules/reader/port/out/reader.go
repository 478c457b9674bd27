package out

import (
	"context"

	"drt/internal/modules/reader/domain"
)

type MarkdownReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type PDFReader interface {
	ReadPage(ctx context.Context, path string, page int) (domain.Page, int, error)
}

type ProgressPort interface {
	Update(ctx context.Context, documentID string, percent float64, pageCurrent, pageTotal int) error
}

type DocumentResolver interface {
	Resolve(ctx context.Context, documentID string) (domain.DocumentRef, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
