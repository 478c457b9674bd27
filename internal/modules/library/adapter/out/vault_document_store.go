package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"drt/internal/modules/library/domain"
	libraryout "drt/internal/modules/library/port/out"
	apperrors "drt/internal/platform/errors"
	"drt/internal/platform/markdown"
)

// VaultDocumentStore keeps one markdown note per document under
// <vault>/documents, with metadata in YAML frontmatter.
type VaultDocumentStore struct {
	vaultPath string
}

func NewVaultDocumentStore(vaultPath string) libraryout.DocumentStore {
	return &VaultDocumentStore{vaultPath: vaultPath}
}

func (s *VaultDocumentStore) Save(_ context.Context, note domain.DocumentNote) (string, error) {
	document := note.Document
	notePath := filepath.Join(s.vaultPath, "documents", document.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create documents directory: %w", err)
	}

	body := note.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Notes\n\n## Highlights\n"
	}

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(document), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write document note: %w", err)
	}
	return notePath, nil
}

func (s *VaultDocumentStore) FindByID(ctx context.Context, id string) (domain.DocumentNote, error) {
	notes, err := s.List(ctx)
	if err != nil {
		return domain.DocumentNote{}, err
	}
	for _, note := range notes {
		if note.Document.ID == id {
			return note, nil
		}
	}
	return domain.DocumentNote{}, apperrors.ErrNotFound
}

func (s *VaultDocumentStore) List(_ context.Context) ([]domain.DocumentNote, error) {
	matches, err := filepath.Glob(filepath.Join(s.vaultPath, "documents", "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob document notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.DocumentNote, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		document, convErr := fromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode document %s: %w", path, convErr)
		}
		out = append(out, domain.DocumentNote{Document: document, Body: body})
	}
	return out, nil
}

func toFrontmatter(document domain.Document) map[string]any {
	return map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               document.ID,
		"type":             string(document.Type),
		"title":            document.Title,
		"authors":          document.Authors,
		"url":              document.URL,
		"file_path":        document.FilePath,
		"tags":             document.Tags,
		"status":           document.Status,
		"progress_percent": document.ProgressPct,
		"page_current":     document.PageCurrent,
		"page_total":       document.PageTotal,
		"added_at":         document.AddedAt.Format(time.RFC3339),
		"updated_at":       document.UpdatedAt.Format(time.RFC3339),
	}
}

func fromFrontmatter(meta map[string]any, notePath string) (domain.Document, error) {
	document := domain.Document{
		ID:          asString(meta["id"]),
		Type:        domain.DocumentType(asString(meta["type"])),
		Title:       asString(meta["title"]),
		Authors:     asStringSlice(meta["authors"]),
		URL:         asString(meta["url"]),
		FilePath:    asString(meta["file_path"]),
		NotePath:    notePath,
		Tags:        asStringSlice(meta["tags"]),
		Status:      asString(meta["status"]),
		ProgressPct: asFloat(meta["progress_percent"]),
		PageCurrent: int(asFloat(meta["page_current"])),
		PageTotal:   int(asFloat(meta["page_total"])),
	}
	document.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	addedAt, _ := time.Parse(time.RFC3339, asString(meta["added_at"]))
	updatedAt, _ := time.Parse(time.RFC3339, asString(meta["updated_at"]))
	document.AddedAt = addedAt
	document.UpdatedAt = updatedAt
	if err := document.Validate(); err != nil {
		return domain.Document{}, err
	}
	return document, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		var out float64
		_, _ = fmt.Sscanf(x, "%f", &out)
		return out
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
