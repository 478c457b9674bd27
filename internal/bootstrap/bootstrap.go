package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	libraryinadapter "drt/internal/modules/library/adapter/in"
	libraryoutadapter "drt/internal/modules/library/adapter/out"
	libraryservice "drt/internal/modules/library/service"
	libraryusecase "drt/internal/modules/library/usecase"
	readerinadapter "drt/internal/modules/reader/adapter/in"
	readeroutadapter "drt/internal/modules/reader/adapter/out"
	readerservice "drt/internal/modules/reader/service"
	readerusecase "drt/internal/modules/reader/usecase"
	trackerinadapter "drt/internal/modules/tracker/adapter/in"
	trackerservice "drt/internal/modules/tracker/service"
	trackerusecase "drt/internal/modules/tracker/usecase"
	"drt/internal/platform/clock"
	"drt/internal/platform/config"
	"drt/internal/platform/id"
	uiapp "drt/internal/ui/app"
)

type App struct {
	LibraryCLI libraryinadapter.CLIHandler
	ReaderCLI  readerinadapter.CLIHandler
	ReaderTUI  readerinadapter.TUIHandler
	TrackerTUI trackerinadapter.TUIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	libraryStore := libraryoutadapter.NewVaultDocumentStore(cfg.VaultPath)
	libraryProjector, err := libraryoutadapter.NewSQLiteDocumentProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new document projector: %w", err)
	}
	librarySvc := libraryservice.NewDocumentService(clk, ids, libraryStore, libraryProjector)
	libraryUC := libraryusecase.NewInteractor(librarySvc)

	readerUC := readerusecase.NewInteractor(readerservice.NewReaderService(
		readeroutadapter.NewLocalMarkdownReader(),
		readeroutadapter.NewLocalPDFReader(),
		readeroutadapter.NewLibraryProgressAdapter(libraryUC),
		readeroutadapter.NewLibraryDocumentAdapter(libraryUC),
		readeroutadapter.NewOSExternalLauncher(),
	))

	trackerUC := trackerusecase.NewInteractor(trackerservice.NewTrackerService(clk))

	return &App{
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		ReaderCLI:  readerinadapter.NewCLIHandler(readerUC),
		ReaderTUI:  readerinadapter.NewTUIHandler(readerUC),
		TrackerTUI: trackerinadapter.NewTUIHandler(trackerUC),
	}, nil
}

func RunTUI(vaultPath string, app *App) error {
	model := uiapp.NewModel(vaultPath, app.LibraryCLI, app.ReaderTUI, app.TrackerTUI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
