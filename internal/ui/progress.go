package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"myton/internal/driver"
)

type suiteModel struct {
	title    string
	events   <-chan driver.SuiteEvent
	spinner  spinner.Model
	prog     progress.Model
	items    []caseItem
	index    map[string]int
	finished int
	failed   int
	width    int
	done     bool
}

type caseItem struct {
	path   string
	status driver.CaseStatus
	cached bool
}

type eventMsg driver.SuiteEvent
type doneMsg struct{}

// NewSuiteModel returns a Bubble Tea model that renders golden suite
// progress. The model quits when events is closed.
func NewSuiteModel(title string, scripts []string, events <-chan driver.SuiteEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]caseItem, 0, len(scripts))
	index := make(map[string]int, len(scripts))
	for i, path := range scripts {
		items = append(items, caseItem{path: path, status: driver.CasePending})
		index[path] = i
	}
	return &suiteModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *suiteModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *suiteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.SuiteEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *suiteModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d", m.title, m.finished, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d failed", m.failed)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 9
	nameWidth := max(m.width-statusWidth-12, 20)
	for _, item := range m.items {
		label := item.status.String()
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, label))
		line := fmt.Sprintf("  %s %s", status, truncate(item.path, nameWidth))
		if item.cached {
			line += lipgloss.NewStyle().Faint(true).Render(" (cached)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *suiteModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *suiteModel) applyEvent(ev driver.SuiteEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if !item.status.Done() && ev.Status.Done() {
		m.finished++
		if !ev.Status.OK() {
			m.failed++
		}
	}
	item.status = ev.Status
	item.cached = ev.Cached
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func styleStatus(status driver.CaseStatus) lipgloss.Style {
	switch {
	case status.OK():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case status.Done():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case status == driver.CaseRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// the tail counts toward width
	return runewidth.Truncate(value, width, "...")
}
