package domain

import (
	"fmt"
	"strings"
	"time"
)

type DocumentType string

const (
	DocumentTypeBook    DocumentType = "book"
	DocumentTypeArticle DocumentType = "article"
	DocumentTypePaper   DocumentType = "paper"
	DocumentTypeManual  DocumentType = "manual"
)

const SchemaVersion = 1

type Document struct {
	ID          string
	Type        DocumentType
	Title       string
	Authors     []string
	URL         string
	FilePath    string
	NotePath    string
	Slug        string
	Tags        []string
	Status      string
	ProgressPct float64
	PageCurrent int
	PageTotal   int
	AddedAt     time.Time
	UpdatedAt   time.Time
}

func (t DocumentType) Validate() error {
	switch t {
	case DocumentTypeBook, DocumentTypeArticle, DocumentTypePaper, DocumentTypeManual:
		return nil
	default:
		return fmt.Errorf("unsupported document type %q", string(t))
	}
}

func (d Document) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(d.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	return nil
}

// DocumentNote pairs a document's metadata with its note body on disk.
type DocumentNote struct {
	Document Document
	Body     string
}
