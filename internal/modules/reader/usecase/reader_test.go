package usecase_test

import (
	"context"
	"testing"

	"drt/internal/modules/reader/domain"
	"drt/internal/modules/reader/dto"
	"drt/internal/modules/reader/service"
	"drt/internal/modules/reader/usecase"
)

type fakeMDReader struct{}

func (fakeMDReader) Read(context.Context, string) (string, error) { return "# ok", nil }

type fakePDFReader struct {
	lastPage int
}

func (f *fakePDFReader) ReadPage(_ context.Context, _ string, page int) (domain.Page, int, error) {
	f.lastPage = page
	return domain.Page{Number: page, Text: "pdf text"}, 200, nil
}

type fakeProgress struct {
	percent     float64
	pageCurrent int
	pageTotal   int
	called      bool
}

func (f *fakeProgress) Update(_ context.Context, _ string, percent float64, pageCurrent, pageTotal int) error {
	f.called = true
	f.percent = percent
	f.pageCurrent = pageCurrent
	f.pageTotal = pageTotal
	return nil
}

type fakeResolver struct {
	document domain.DocumentRef
}

func (r fakeResolver) Resolve(context.Context, string) (domain.DocumentRef, error) {
	return r.document, nil
}

type fakeLauncher struct {
	opened string
}

func (l *fakeLauncher) Open(_ context.Context, target string) error {
	l.opened = target
	return nil
}

func newReader(document domain.DocumentRef, pdf *fakePDFReader, progress *fakeProgress, launcher *fakeLauncher) (dto.OpenDocumentInput, func(context.Context, dto.OpenDocumentInput) (dto.OpenResult, error), func(context.Context, dto.SavePositionInput) error) {
	uc := usecase.NewInteractor(service.NewReaderService(fakeMDReader{}, pdf, progress, fakeResolver{document: document}, launcher))
	return dto.OpenDocumentInput{DocumentID: document.ID, Mode: "auto"}, uc.OpenDocument, uc.SavePosition
}

func TestOpenMarkdownAndPDFDirect(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewReaderService(
		fakeMDReader{},
		&fakePDFReader{},
		&fakeProgress{},
		fakeResolver{},
		&fakeLauncher{},
	))
	md, err := uc.OpenMarkdown(context.Background(), dto.OpenMarkdownInput{Path: "/tmp/a.md"})
	if err != nil {
		t.Fatalf("open markdown: %v", err)
	}
	if md.Content == "" {
		t.Fatalf("markdown content should not be empty")
	}
	pdf, err := uc.OpenPDF(context.Background(), dto.OpenPDFInput{Path: "/tmp/a.pdf", Page: 2})
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	if pdf.Page != 2 || pdf.TotalPage != 200 {
		t.Fatalf("unexpected pdf output: %+v", pdf)
	}
}

func TestOpenDocumentAutoModes(t *testing.T) {
	t.Parallel()
	launcher := &fakeLauncher{}

	input, open, _ := newReader(domain.DocumentRef{ID: "doc-1", Title: "Notes", Type: "article", FilePath: "/tmp/readme.md", Percent: 11}, &fakePDFReader{}, &fakeProgress{}, launcher)
	out, err := open(context.Background(), input)
	if err != nil {
		t.Fatalf("open markdown document: %v", err)
	}
	if out.Mode != "markdown" || out.Content == "" {
		t.Fatalf("expected markdown mode with content, got %+v", out)
	}

	input, open, _ = newReader(domain.DocumentRef{ID: "doc-2", Title: "Paper", Type: "paper", FilePath: "/tmp/file.pdf", Percent: 20}, &fakePDFReader{}, &fakeProgress{}, launcher)
	input.Page = 2
	out, err = open(context.Background(), input)
	if err != nil {
		t.Fatalf("open pdf document: %v", err)
	}
	if out.Mode != "pdf" || out.Page != 2 || out.TotalPage != 200 {
		t.Fatalf("expected pdf mode page info, got %+v", out)
	}

	input, open, _ = newReader(domain.DocumentRef{ID: "doc-3", Title: "Blog", Type: "article", URL: "https://example.com/post", Percent: 33}, &fakePDFReader{}, &fakeProgress{}, launcher)
	input.LaunchExternal = true
	out, err = open(context.Background(), input)
	if err != nil {
		t.Fatalf("open url document: %v", err)
	}
	if out.Mode != "external" || !out.ExternalLaunched || launcher.opened != "https://example.com/post" {
		t.Fatalf("expected external launch, got %+v", out)
	}
}

func TestOpenDocumentResumesAtSavedPage(t *testing.T) {
	t.Parallel()
	pdf := &fakePDFReader{}
	input, open, _ := newReader(domain.DocumentRef{ID: "doc-1", Title: "Paper", Type: "paper", FilePath: "/tmp/file.pdf", PageCurrent: 42, PageTotal: 200}, pdf, &fakeProgress{}, &fakeLauncher{})
	out, err := open(context.Background(), input)
	if err != nil {
		t.Fatalf("open document: %v", err)
	}
	if out.Page != 42 || pdf.lastPage != 42 {
		t.Fatalf("expected resume at page 42, got page %d (reader saw %d)", out.Page, pdf.lastPage)
	}

	input.Page = 7
	out, err = open(context.Background(), input)
	if err != nil {
		t.Fatalf("open document at explicit page: %v", err)
	}
	if out.Page != 7 {
		t.Fatalf("explicit page must win over saved page, got %d", out.Page)
	}
}

func TestSavePositionDerivesPercent(t *testing.T) {
	t.Parallel()
	progress := &fakeProgress{}
	_, _, save := newReader(domain.DocumentRef{ID: "doc-1"}, &fakePDFReader{}, progress, &fakeLauncher{})

	if err := save(context.Background(), dto.SavePositionInput{DocumentID: "doc-1", PageCurrent: 50, PageTotal: 200}); err != nil {
		t.Fatalf("save position: %v", err)
	}
	if !progress.called || progress.percent != 25 || progress.pageCurrent != 50 || progress.pageTotal != 200 {
		t.Fatalf("unexpected progress update: %+v", progress)
	}

	if err := save(context.Background(), dto.SavePositionInput{DocumentID: "doc-1", PageCurrent: 300, PageTotal: 200}); err != nil {
		t.Fatalf("save overshoot position: %v", err)
	}
	if progress.percent != 100 || progress.pageCurrent != 200 {
		t.Fatalf("overshoot should clamp to total, got %+v", progress)
	}
}

func TestOpenDocumentInvalidMode(t *testing.T) {
	t.Parallel()
	input, open, _ := newReader(domain.DocumentRef{ID: "doc-1", FilePath: "/tmp/readme.md"}, &fakePDFReader{}, &fakeProgress{}, &fakeLauncher{})
	input.Mode = "broken"
	if _, err := open(context.Background(), input); err == nil {
		t.Fatalf("invalid mode should fail")
	}
}

func TestOpenDocumentExternalWithoutTargetFails(t *testing.T) {
	t.Parallel()
	input, open, _ := newReader(domain.DocumentRef{ID: "doc-4", Title: "Ghost", Type: "article"}, &fakePDFReader{}, &fakeProgress{}, &fakeLauncher{})
	input.Mode = "external"
	if _, err := open(context.Background(), input); err == nil {
		t.Fatalf("missing external target should fail")
	}
}
