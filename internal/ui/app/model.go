package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"drt/internal/modules/library/dto"
	readerdto "drt/internal/modules/reader/dto"
	trackerdto "drt/internal/modules/tracker/dto"
	"drt/internal/ui/components"
	"drt/internal/ui/theme"
	libraryview "drt/internal/ui/views/library"
	readerview "drt/internal/ui/views/reader"
	trackerview "drt/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type libraryPort interface {
	ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error)
	GetDocument(ctx context.Context, id string) (dto.DocumentDetailOutput, error)
	Reindex(ctx context.Context) error
}

type readerPort interface {
	OpenDocument(ctx context.Context, documentID, mode string, page int, launchExternal bool) (readerdto.OpenResult, error)
	SavePosition(ctx context.Context, documentID string, pageCurrent, pageTotal int) error
}

type trackerPort interface {
	Open(ctx context.Context, documentID string, page int)
	Close(ctx context.Context)
	PageChanged(ctx context.Context, page int)
	Activity(ctx context.Context)
	TogglePause(ctx context.Context) trackerdto.ToggleOutput
	Snapshot(ctx context.Context) trackerdto.SnapshotOutput
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLibrary tabID = iota
	tabReader
	tabCount
)

var tabLabels = [tabCount]string{
	"Library", "Reader",
}

// ─── async messages ───────────────────────────────────────────────────────────

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Stats   key.Binding
	PrevPg  key.Binding
	NextPg  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Stats:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stats/pause")),
		PrevPg:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "pdf page")),
		NextPg:  key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "pdf page")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Stats},
		{k.PrevPg, k.NextPg},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the reading
// tracker lifecycle, the global help overlay, and the command palette.
// All business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	vaultPath string

	library libraryPort
	tracker trackerPort

	// sub-views
	libView   libraryview.Model
	readView  readerview.Model
	statsView trackerview.Model

	// global UI state
	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	statsOpen    bool
	paused       bool
	trackedDocID string
	status       string
	width        int
	height       int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	vaultPath string,
	library libraryPort,
	reader readerPort,
	tracker trackerPort,
) Model {
	return Model{
		vaultPath: vaultPath,
		library:   library,
		tracker:   tracker,
		libView:   libraryview.New(libraryPortBridge{p: library}),
		readView:  readerview.New(readerPortBridge{p: reader}),
		statsView: trackerview.New(trackerPortBridge{p: tracker}),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.libView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Any keyboard or mouse input counts as reader activity and feeds the
	// idle watchdog. The tracker ignores it while paused or closed.
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		m.tracker.Activity(context.Background())
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.statsView.SetWidth(min(m.width-8, 52))
		m.help.Width = m.width
		m.propagateSize()

	case trackerview.TickMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "index rebuilt"
			cmds = append(cmds, m.libView.Reload())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	// OpenedMsg is produced by the reader view but bubbles up through the top
	// level so we can auto-switch tabs and drive the reading tracker.
	case readerview.OpenedMsg:
		if msg.Err != nil {
			m.status = "reader: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("reader: %s [%s]", msg.Result.Title, msg.Result.Mode)
			m.activeTab = tabReader
			m.syncTracker(msg.Result)
		}
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.tracker.Close(context.Background())
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "t":
			return m.toggleStats()
		case "enter":
			if m.activeTab == tabLibrary {
				if id, ok := m.libView.SelectedDocumentID(); ok {
					cmds = append(cmds, m.readView.OpenDocument(id, "auto", 0, false))
				}
			}
		case "left":
			if m.activeTab == tabReader {
				cmds = append(cmds, m.readView.PrevPage())
			}
		case "right":
			if m.activeTab == tabReader {
				cmds = append(cmds, m.readView.NextPage())
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabReader:
		m.readView, tabCmd = m.readView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.statsOpen:
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.statsView.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.View()
	case tabReader:
		return m.readView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "drt  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.trackedDocID != "" {
		marker := theme.Good.Render("● reading")
		if m.paused {
			marker = theme.Paused.Render("⏸ paused")
		}
		left = marker + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  t:stats  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.libView.SelectedDocumentID()

	switch parts[0] {
	case "reader:open":
		if selected == "" {
			m.status = "no document selected"
			return m, nil
		}
		mode := "auto"
		if len(parts) >= 2 {
			mode = parts[1]
		}
		page := 0
		if len(parts) >= 3 {
			if p, err := strconv.Atoi(parts[2]); err == nil {
				page = p
			}
		}
		return m, m.readView.OpenDocument(selected, mode, page, false)

	case "reader:next-page":
		return m, m.readView.NextPage()

	case "reader:prev-page":
		return m, m.readView.PrevPage()

	case "document:open-external":
		if selected == "" {
			m.status = "no document selected"
			return m, nil
		}
		return m, m.readView.OpenDocument(selected, "auto", 0, true)

	case "tracker:toggle":
		return m.toggleStats()

	case "tracker:close":
		m.tracker.Close(context.Background())
		m.trackedDocID = ""
		m.paused = false
		m.statsView.Hide()
		m.statsOpen = false
		m.status = "tracking stopped"
		return m, nil

	case "library:reindex":
		m.status = "rebuilding index…"
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// toggleStats forwards the stats key to the tracker, which decides between
// showing the panel, pausing, and resuming, then mirrors the outcome.
func (m Model) toggleStats() (tea.Model, tea.Cmd) {
	out := m.tracker.TogglePause(context.Background())
	m.paused = out.Paused
	var cmd tea.Cmd
	if out.PanelOpen {
		cmd = m.statsView.Show()
		m.statsOpen = true
	} else {
		m.statsView.Hide()
		m.statsOpen = false
	}
	switch {
	case out.Paused:
		m.status = "reading paused"
	case m.trackedDocID != "":
		m.status = "reading"
	}
	return m, cmd
}

// syncTracker points the tracker at whatever the reader now shows. A new
// document starts a fresh session; a page turn within the same document
// records the dwell on the page being left.
func (m *Model) syncTracker(result readerdto.OpenResult) {
	page := result.Page
	if page < 1 {
		page = 1
	}
	ctx := context.Background()
	if result.DocumentID != m.trackedDocID {
		m.tracker.Open(ctx, result.DocumentID, page)
		m.trackedDocID = result.DocumentID
		m.paused = false
		return
	}
	m.tracker.PageChanged(ctx, page)
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabLibrary {
		return m.libView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.libView, _ = m.libView.Update(sz)
	m.readView, _ = m.readView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexedMsg{err: m.library.Reindex(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type libraryPortBridge struct{ p libraryPort }

func (b libraryPortBridge) ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error) {
	return b.p.ListDocuments(ctx)
}
func (b libraryPortBridge) GetDocument(ctx context.Context, id string) (dto.DocumentDetailOutput, error) {
	return b.p.GetDocument(ctx, id)
}

type readerPortBridge struct{ p readerPort }

func (b readerPortBridge) OpenDocument(ctx context.Context, id, mode string, page int, ext bool) (readerdto.OpenResult, error) {
	return b.p.OpenDocument(ctx, id, mode, page, ext)
}
func (b readerPortBridge) SavePosition(ctx context.Context, id string, pageCurrent, pageTotal int) error {
	return b.p.SavePosition(ctx, id, pageCurrent, pageTotal)
}

type trackerPortBridge struct{ p trackerPort }

func (b trackerPortBridge) Snapshot(ctx context.Context) trackerdto.SnapshotOutput {
	return b.p.Snapshot(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
