package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"drt/internal/modules/library/domain"
	libraryout "drt/internal/modules/library/port/out"
	"drt/internal/platform/clock"
	"drt/internal/platform/id"
	"drt/internal/platform/slug"
)

type DocumentService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     libraryout.DocumentStore
	projector libraryout.DocumentIndexProjector
}

func NewDocumentService(clock clock.Clock, idGen id.Generator, store libraryout.DocumentStore, projector libraryout.DocumentIndexProjector) *DocumentService {
	return &DocumentService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *DocumentService) IngestFile(ctx context.Context, docType domain.DocumentType, filePath, title string, authors, tags []string) (domain.Document, string, error) {
	if err := docType.Validate(); err != nil {
		return domain.Document{}, "", err
	}
	if strings.TrimSpace(filePath) == "" {
		return domain.Document{}, "", fmt.Errorf("file path is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	now := s.clock.Now()
	document := domain.Document{
		ID:        s.idGen.New(),
		Type:      docType,
		Title:     title,
		Authors:   authors,
		FilePath:  filePath,
		Slug:      slug.Make(title),
		Tags:      tags,
		Status:    "active",
		AddedAt:   now,
		UpdatedAt: now,
	}
	return s.persist(ctx, document)
}

func (s *DocumentService) IngestURL(ctx context.Context, docType domain.DocumentType, url, title string, authors, tags []string) (domain.Document, string, error) {
	if err := docType.Validate(); err != nil {
		return domain.Document{}, "", err
	}
	if strings.TrimSpace(url) == "" {
		return domain.Document{}, "", fmt.Errorf("url is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = url
	}
	now := s.clock.Now()
	document := domain.Document{
		ID:        s.idGen.New(),
		Type:      docType,
		Title:     title,
		Authors:   authors,
		URL:       url,
		Slug:      slug.Make(title),
		Tags:      tags,
		Status:    "active",
		AddedAt:   now,
		UpdatedAt: now,
	}
	return s.persist(ctx, document)
}

func (s *DocumentService) persist(ctx context.Context, document domain.Document) (domain.Document, string, error) {
	if err := document.Validate(); err != nil {
		return domain.Document{}, "", err
	}
	path, err := s.store.Save(ctx, domain.DocumentNote{Document: document})
	if err != nil {
		return domain.Document{}, "", err
	}
	document.NotePath = path
	if err := s.projector.UpsertDocument(ctx, document); err != nil {
		return domain.Document{}, "", err
	}
	return document, path, nil
}

func (s *DocumentService) UpdateProgress(ctx context.Context, documentID string, pct float64, pageCurrent, pageTotal int) (domain.Document, error) {
	note, err := s.store.FindByID(ctx, documentID)
	if err != nil {
		return domain.Document{}, err
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	note.Document.ProgressPct = pct
	note.Document.PageCurrent = pageCurrent
	note.Document.PageTotal = pageTotal
	note.Document.UpdatedAt = s.clock.Now()
	if _, err := s.store.Save(ctx, note); err != nil {
		return domain.Document{}, err
	}
	if err := s.projector.UpsertDocument(ctx, note.Document); err != nil {
		return domain.Document{}, err
	}
	return note.Document, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.Document)
	}
	return out, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, documentID string) (domain.Document, error) {
	note, err := s.store.FindByID(ctx, documentID)
	if err != nil {
		return domain.Document{}, err
	}
	return note.Document, nil
}

func (s *DocumentService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	notes, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.projector.UpsertDocument(ctx, note.Document); err != nil {
			return err
		}
	}
	return nil
}
