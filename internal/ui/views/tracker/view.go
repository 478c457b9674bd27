package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	trackerdto "drt/internal/modules/tracker/dto"
	"drt/internal/ui/theme"
)

// refreshInterval paces the live clock while the panel is visible.
const refreshInterval = 100 * time.Millisecond

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the tracker use-case.
type Port interface {
	Snapshot(ctx context.Context) trackerdto.SnapshotOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg drives the periodic snapshot refresh.
type TickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the reading stats overlay. It polls the tracker on a
// fixed cadence while visible and stops ticking when hidden.
type Model struct {
	port     Port
	snapshot trackerdto.SnapshotOutput
	ticking  bool
	width    int
}

func New(port Port) Model {
	return Model{port: port}
}

// Show refreshes the snapshot immediately and starts the tick loop.
func (m *Model) Show() tea.Cmd {
	m.snapshot = m.port.Snapshot(context.Background())
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

// Hide stops the tick loop on the next tick.
func (m *Model) Hide() { m.ticking = false }

// SetWidth sets the render width for the overlay.
func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok && m.ticking {
		m.snapshot = m.port.Snapshot(context.Background())
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.snapshot
	var sb strings.Builder

	state := theme.Good.Render("reading")
	if s.Paused {
		state = theme.Paused.Render("paused")
	}
	if s.DocumentID == "" {
		state = theme.Muted.Render("no session")
	}
	sb.WriteString(theme.Title.Render("Reading Stats") + "  " + state + "\n\n")

	if s.DocumentID == "" {
		sb.WriteString(theme.Muted.Render("Open a document to start tracking.") + "\n")
		return theme.Panel.Width(m.panelWidth()).Render(sb.String())
	}

	sb.WriteString(row("elapsed", formatClock(s.Elapsed)))
	sb.WriteString(row("page", fmt.Sprintf("%d  (%s this page)", s.CurrentPage, formatClock(s.CurrentPageDuration))))
	sb.WriteString(row("pages read", fmt.Sprintf("%d", s.PagesRead)))
	sb.WriteString(row("recorded", formatClock(s.TotalRecordedTime)))
	if s.PagesRead > 0 {
		sb.WriteString(row("avg/page", formatClock(s.AverageTimePerPage)))
	}
	sb.WriteString(row("pace", fmt.Sprintf("%.1f pages/h", s.PagesPerHour)))

	if len(s.History) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("recent pages") + "\n")
		start := len(s.History) - 5
		if start < 0 {
			start = 0
		}
		for _, d := range s.History[start:] {
			sb.WriteString(fmt.Sprintf("  p.%-4d %s\n", d.Page, formatClock(d.Duration)))
		}
	}

	return theme.Panel.Width(m.panelWidth()).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) panelWidth() int {
	w := m.width
	if w < 24 {
		w = 44
	}
	return w
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s\n", theme.Muted.Render(fmt.Sprintf("%-11s", label)), value)
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
