package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	libraryout "drt/internal/modules/library/adapter/out"
	"drt/internal/modules/library/dto"
	libraryin "drt/internal/modules/library/port/in"
	"drt/internal/modules/library/service"
	"drt/internal/modules/library/usecase"
	"drt/internal/platform/clock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(time.Duration, func()) clock.Timer { return noopTimer{} }

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("doc-%03d", g.n)
}

func newLibrary(t *testing.T, vault string) libraryin.Usecase {
	t.Helper()
	projector, err := libraryout.NewSQLiteDocumentProjector(filepath.Join(vault, ".drt", "drt.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	fc := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	svc := service.NewDocumentService(fc, &seqID{}, libraryout.NewVaultDocumentStore(vault), projector)
	return usecase.NewInteractor(svc)
}

func TestIngestListAndGetRoundTrip(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc := newLibrary(t, vault)
	ctx := context.Background()

	out, err := uc.IngestFile(ctx, dto.IngestFileInput{
		Path:    "/library/effective-go.pdf",
		Type:    "book",
		Title:   "Effective Go",
		Authors: []string{"The Go Authors"},
		Tags:    []string{"go"},
	})
	if err != nil {
		t.Fatalf("ingest file: %v", err)
	}
	if out.ID == "" || !strings.HasSuffix(out.NotePath, "effective-go.md") {
		t.Fatalf("unexpected ingest output: %+v", out)
	}

	raw, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(raw)
	if !strings.Contains(note, "title: Effective Go") || !strings.Contains(note, "file_path: /library/effective-go.pdf") {
		t.Fatalf("note frontmatter incomplete:\n%s", note)
	}

	list, err := uc.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Effective Go" {
		t.Fatalf("expected single listed document, got %+v", list)
	}

	detail, err := uc.GetDocument(ctx, out.ID)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if detail.Type != "book" || detail.FilePath != "/library/effective-go.pdf" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestIngestRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, t.TempDir())
	ctx := context.Background()

	if _, err := uc.IngestFile(ctx, dto.IngestFileInput{Path: "/x.pdf", Type: "scroll"}); err == nil {
		t.Fatalf("unknown type must fail")
	}
	if _, err := uc.IngestFile(ctx, dto.IngestFileInput{Path: "  ", Type: "book", Title: "x"}); err == nil {
		t.Fatalf("blank path must fail")
	}
}

func TestUpdateProgressClampsAndPersists(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc := newLibrary(t, vault)
	ctx := context.Background()

	out, err := uc.IngestFile(ctx, dto.IngestFileInput{Path: "/library/sicp.pdf", Type: "book", Title: "SICP"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	updated, err := uc.UpdateProgress(ctx, dto.UpdateProgressInput{DocumentID: out.ID, Percent: 140, PageCurrent: 120, PageTotal: 120})
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if updated.Percent != 100 {
		t.Fatalf("expected clamp to 100, got %.1f", updated.Percent)
	}
	detail, err := uc.GetDocument(ctx, out.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if detail.PageCurrent != 120 || detail.PageTotal != 120 {
		t.Fatalf("page progress not persisted: %+v", detail)
	}
}

func TestReindexRebuildsFromVault(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc := newLibrary(t, vault)
	ctx := context.Background()

	if _, err := uc.IngestFile(ctx, dto.IngestFileInput{Path: "/library/a.pdf", Type: "paper", Title: "Paper A"}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	list, err := uc.ListDocuments(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected vault to survive reindex, got %+v err=%v", list, err)
	}
}
