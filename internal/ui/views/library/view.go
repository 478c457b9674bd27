package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	libdto "drt/internal/modules/library/dto"
	"drt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LibraryPort interface {
	ListDocuments(ctx context.Context) ([]libdto.DocumentOutput, error)
	GetDocument(ctx context.Context, id string) (libdto.DocumentDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DocumentsLoadedMsg struct {
	Documents []libdto.DocumentOutput
	Err       error
}

type DetailLoadedMsg struct {
	Detail libdto.DocumentDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type documentItem struct {
	document libdto.DocumentOutput
}

func (i documentItem) Title() string { return i.document.Title }
func (i documentItem) Description() string {
	return fmt.Sprintf("%s  %.0f%%", i.document.Type, i.document.Percent)
}
func (i documentItem) FilterValue() string { return i.document.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    LibraryPort
	list    list.Model
	detail  libdto.DocumentDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port LibraryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Library"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDocumentsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case DocumentsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Library — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Documents))
		for i, d := range msg.Documents {
			items[i] = documentItem{document: d}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Documents) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Documents[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(documentItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.document.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading library…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedDocumentID returns the current selection's document ID, if any.
func (m Model) SelectedDocumentID() (string, bool) {
	if item, ok := m.list.SelectedItem().(documentItem); ok {
		return item.document.ID, true
	}
	return "", false
}

// SelectedDocumentTitle returns the current selection's title.
func (m Model) SelectedDocumentTitle() string {
	if item, ok := m.list.SelectedItem().(documentItem); ok {
		return item.document.Title
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refetches the document list.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadDocumentsCmd(), m.spinner.Tick)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a document to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("type:    ") + d.Type + "\n")
	sb.WriteString(theme.Muted.Render("status:  ") + d.Status + "\n")
	sb.WriteString(fmt.Sprintf("%s%.1f%%\n", theme.Muted.Render("prog:    "), d.Percent))
	if len(d.Authors) > 0 {
		sb.WriteString(theme.Muted.Render("authors: ") + strings.Join(d.Authors, ", ") + "\n")
	}
	if d.FilePath != "" {
		sb.WriteString(theme.Muted.Render("file:    ") + d.FilePath + "\n")
	}
	if d.URL != "" {
		sb.WriteString(theme.Muted.Render("url:     ") + d.URL + "\n")
	}
	if d.NotePath != "" {
		sb.WriteString(theme.Muted.Render("note:    ") + d.NotePath + "\n")
	}
	if len(d.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:    ") + strings.Join(d.Tags, ", ") + "\n")
	}
	if d.PageTotal > 0 {
		sb.WriteString(fmt.Sprintf("%sp.%d / %d\n",
			theme.Muted.Render("pages:   "), d.PageCurrent, d.PageTotal))
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open in Reader  t: reading stats"))
	return sb.String()
}

func (m Model) loadDocumentsCmd() tea.Cmd {
	return func() tea.Msg {
		documents, err := m.port.ListDocuments(context.Background())
		return DocumentsLoadedMsg{Documents: documents, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetDocument(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
