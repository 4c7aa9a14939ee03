package tui

import (
	"fmt"
	"strings"

	"YT_genre_collector/internal/core/usecases"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type progressMsg struct{ progress usecases.Progress }
type collectDoneMsg struct {
	summary usecases.Summary
	err     error
}

type ProgressModel struct {
	parent  *AppModel
	genre   string
	spinner spinner.Model
	latest  usecases.Progress
	updates chan tea.Msg
}

func NewProgressModel(parent *AppModel, genre string) *ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusMessageStyle

	return &ProgressModel{
		parent:  parent,
		genre:   genre,
		spinner: sp,
		updates: make(chan tea.Msg, 64),
	}
}

// Init kicks off the collection in a background goroutine. Progress
// snapshots stream through the updates channel; the final summary (or
// error) always arrives as the last message.
func (m *ProgressModel) Init() tea.Cmd {
	m.parent.logger.Info(fmt.Sprintf("ProgressModel: starting collection for genre %q", m.genre))

	go func() {
		summary, err := m.parent.collectorUseCase.Collect(m.parent.appContext, m.genre, func(p usecases.Progress) {
			select {
			case m.updates <- progressMsg{progress: p}:
			default:
				// UI is behind; dropping a snapshot is fine.
			}
		})
		m.updates <- collectDoneMsg{summary: summary, err: err}
	}()

	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func waitForUpdate(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.latest = msg.progress
		return m, waitForUpdate(m.updates)

	case collectDoneMsg:
		return m, m.parent.send(showDoneMsg{summary: msg.summary, err: msg.err})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("Collecting: %s", m.genre)))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	switch m.latest.Stage {
	case "", usecases.StageResolve:
		b.WriteString(" Resolving category...")
	case usecases.StageSearch:
		b.WriteString(" Searching top videos...")
	case usecases.StageCaptions:
		b.WriteString(" Downloading captions...")
	default:
		b.WriteString(" Fetching video details...")
	}
	b.WriteString("\n\n")

	if m.latest.Found > 0 {
		line := fmt.Sprintf("%d videos found  |  %d written  |  %d skipped",
			m.latest.Found, m.latest.Written, m.latest.Skipped)
		b.WriteString(listItemStyle.Render(line))
		b.WriteString("\n\n")
	}

	b.WriteString(welcomePromptStyle.Render("(Ctrl+C to cancel)"))
	return docStyle.Render(b.String())
}
