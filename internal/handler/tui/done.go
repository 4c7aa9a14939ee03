package tui

import (
	"fmt"
	"strings"
	"time"

	"YT_genre_collector/internal/core/usecases"

	tea "github.com/charmbracelet/bubbletea"
)

type DoneModel struct {
	parent  *AppModel
	summary usecases.Summary
	err     error
}

func NewDoneModel(parent *AppModel, summary usecases.Summary, err error) *DoneModel {
	return &DoneModel{
		parent:  parent,
		summary: summary,
		err:     err,
	}
}

func (m *DoneModel) Init() tea.Cmd {
	return nil
}

func (m *DoneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			// Run another genre
			return m, m.parent.send(showGenreMsg{})
		case tea.KeyEsc:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *DoneModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(listHeaderStyle.Render("Collection failed"))
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(welcomePromptStyle.Render("Enter to try another genre, Esc to quit."))
		return docStyle.Render(b.String())
	}

	b.WriteString(listHeaderStyle.Render("Collection complete"))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Genre:            %s (category %s)", m.summary.Genre, m.summary.CategoryID),
		fmt.Sprintf("Videos found:     %d", m.summary.VideosFound),
		fmt.Sprintf("Rows written:     %d", m.summary.RowsWritten),
		fmt.Sprintf("Skipped:          %d", m.summary.Skipped),
		fmt.Sprintf("With captions:    %d", m.summary.CaptionsFound),
		fmt.Sprintf("Elapsed:          %s", m.summary.Elapsed.Round(time.Second)),
	}
	for _, line := range lines {
		b.WriteString(listItemStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusMessageStyle.Render("Saved to: "))
	b.WriteString(urlStyle.Render(m.summary.OutputPath))
	b.WriteString("\n\n")
	b.WriteString(welcomePromptStyle.Render("Enter to collect another genre, Esc to quit."))

	return docStyle.Render(b.String())
}
