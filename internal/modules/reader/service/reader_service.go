package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"drt/internal/modules/reader/domain"
	readerout "drt/internal/modules/reader/port/out"
)

type ReaderService struct {
	mdReader         readerout.MarkdownReader
	pdfReader        readerout.PDFReader
	progress         readerout.ProgressPort
	resolver         readerout.DocumentResolver
	externalLauncher readerout.ExternalLauncher
}

func NewReaderService(
	mdReader readerout.MarkdownReader,
	pdfReader readerout.PDFReader,
	progress readerout.ProgressPort,
	resolver readerout.DocumentResolver,
	externalLauncher readerout.ExternalLauncher,
) *ReaderService {
	return &ReaderService{
		mdReader:         mdReader,
		pdfReader:        pdfReader,
		progress:         progress,
		resolver:         resolver,
		externalLauncher: externalLauncher,
	}
}

func (s *ReaderService) OpenMarkdown(ctx context.Context, path string) (string, error) {
	return s.mdReader.Read(ctx, path)
}

func (s *ReaderService) OpenPDF(ctx context.Context, path string, page int) (domain.Page, int, error) {
	if page <= 0 {
		page = 1
	}
	return s.pdfReader.ReadPage(ctx, path, page)
}

func (s *ReaderService) OpenDocument(ctx context.Context, documentID, mode string, page int, launchExternal bool) (string, domain.DocumentRef, domain.Page, int, string, bool, error) {
	if s.resolver == nil {
		return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, fmt.Errorf("document resolver is not configured")
	}
	document, err := s.resolver.Resolve(ctx, documentID)
	if err != nil {
		return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, err
	}

	resolvedMode, err := resolveMode(mode, document)
	if err != nil {
		return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, err
	}

	switch resolvedMode {
	case "markdown":
		if document.FilePath == "" {
			return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, fmt.Errorf("document has no readable file path")
		}
		content, err := s.OpenMarkdown(ctx, document.FilePath)
		if err != nil {
			return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, err
		}
		return resolvedMode, document, domain.Page{}, 0, content, false, nil
	case "pdf":
		if document.FilePath == "" {
			return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, fmt.Errorf("document has no readable file path")
		}
		if page <= 0 && document.PageCurrent > 0 {
			page = document.PageCurrent
		}
		pdfPage, total, err := s.OpenPDF(ctx, document.FilePath, page)
		if err != nil {
			return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, err
		}
		return resolvedMode, document, pdfPage, total, pdfPage.Text, false, nil
	case "external":
		target := document.URL
		if target == "" {
			target = document.FilePath
		}
		if target == "" {
			return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, fmt.Errorf("document has no external target")
		}
		launched := false
		if launchExternal && s.externalLauncher != nil {
			if err := s.externalLauncher.Open(ctx, target); err != nil {
				return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, err
			}
			launched = true
		}
		content := fmt.Sprintf("type=%s title=%s target=%s", document.Type, document.Title, target)
		return resolvedMode, document, domain.Page{}, 0, content, launched, nil
	default:
		return "", domain.DocumentRef{}, domain.Page{}, 0, "", false, fmt.Errorf("unsupported reader mode")
	}
}

func resolveMode(mode string, document domain.DocumentRef) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = "auto"
	}
	switch mode {
	case "auto":
	case "markdown", "pdf", "external":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid mode %q", mode)
	}
	ext := strings.ToLower(filepath.Ext(document.FilePath))
	switch ext {
	case ".pdf":
		return "pdf", nil
	case ".md", ".markdown", ".txt":
		return "markdown", nil
	}
	if document.FilePath == "" && document.URL != "" {
		return "external", nil
	}
	return "markdown", nil
}

// SavePosition records the page the reader is on and derives the
// completion percentage when the total page count is known.
func (s *ReaderService) SavePosition(ctx context.Context, documentID string, pageCurrent, pageTotal int) error {
	if s.progress == nil {
		return fmt.Errorf("progress port is not configured")
	}
	if pageCurrent < 0 {
		pageCurrent = 0
	}
	percent := 0.0
	if pageTotal > 0 {
		if pageCurrent > pageTotal {
			pageCurrent = pageTotal
		}
		percent = float64(pageCurrent) / float64(pageTotal) * 100
	}
	return s.progress.Update(ctx, documentID, percent, pageCurrent, pageTotal)
}
