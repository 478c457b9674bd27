package domain_test

import (
	"testing"
	"time"

	"drt/internal/modules/library/domain"
)

func TestDocumentTypeValidate(t *testing.T) {
	t.Parallel()
	for _, valid := range []string{"book", "article", "paper", "manual"} {
		if err := domain.DocumentType(valid).Validate(); err != nil {
			t.Fatalf("%s should be valid: %v", valid, err)
		}
	}
	if err := domain.DocumentType("scroll").Validate(); err == nil {
		t.Fatalf("unknown document type should fail")
	}
}

func TestDocumentValidate(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	base := domain.Document{
		ID:        "id-1",
		Type:      domain.DocumentTypeBook,
		Title:     "Sample",
		Slug:      "sample",
		AddedAt:   now,
		UpdatedAt: now,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("document should be valid: %v", err)
	}

	cases := map[string]func(d *domain.Document){
		"type":  func(d *domain.Document) { d.Type = "mystery" },
		"id":    func(d *domain.Document) { d.ID = "" },
		"title": func(d *domain.Document) { d.Title = "  " },
		"slug":  func(d *domain.Document) { d.Slug = "" },
	}
	for name, mutate := range cases {
		doc := base
		mutate(&doc)
		if err := doc.Validate(); err == nil {
			t.Fatalf("missing/invalid %s should fail validation", name)
		}
	}
}
