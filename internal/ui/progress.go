// Package ui renders batch progress in the terminal with Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rnorm/internal/driver"
)

// stageInfo: label while a file is inside the stage and the share of the
// file's progress reached on entering it.
var stageInfo = map[driver.Stage]struct {
	label  string
	weight float64
}{
	driver.StageLoad:      {"loading", 0},
	driver.StageDecode:    {"decoding", 0.2},
	driver.StageNormalize: {"normalizing", 0.5},
	driver.StageEncode:    {"encoding", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusQueued: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.StatusDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusCached: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		driver.StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

const statusWidth = 12

type fileItem struct {
	path   string
	status driver.Status
	stage  driver.Stage
}

// finished reports whether the file left the pipeline.
func (it fileItem) finished() bool {
	switch it.status {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	return false
}

// label is what the status column shows.
func (it fileItem) label() string {
	if it.status == driver.StatusWorking {
		return stageInfo[it.stage].label
	}
	return string(it.status)
}

func (it fileItem) style() lipgloss.Style {
	if s, ok := statusStyles[it.status]; ok {
		return s
	}
	return workingStyle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel returns a model that shows one line per file plus a
// progress bar. files must use the same paths the driver reports.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: driver.StatusQueued, stage: driver.StageLoad}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder

	head := m.spinner.View() + " " + m.title
	if m.done {
		head = "done: " + m.title
	}
	b.WriteString(titleStyle.Render(head))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, it := range m.items {
		status := it.style().Render(fmt.Sprintf("%*s", statusWidth, it.label()))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(it.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%s\n", m.counts())
	return b.String()
}

// counts renders "2/4 finished, 1 failed".
func (m *progressModel) counts() string {
	finished, failed := 0, 0
	for _, it := range m.items {
		if it.finished() {
			finished++
		}
		if it.status == driver.StatusError {
			failed++
		}
	}
	s := fmt.Sprintf("%d/%d finished", finished, len(m.items))
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	return s
}

// next waits for the following driver event; a closed channel ends the UI.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the file the event names. Events for unknown files
// and batch-level events are ignored.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok || ev.Status == "" {
		return nil
	}
	m.items[i].status = ev.Status
	m.items[i].stage = ev.Stage
	return m.bar.SetPercent(m.percent())
}

// percent is the mean per-file progress; finished files count as 1.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		if it.finished() {
			sum++
			continue
		}
		sum += stageInfo[it.stage].weight
	}
	return sum / float64(len(m.items))
}

// truncate shortens value to width display cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
