package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type GenreModel struct {
	parent *AppModel
	input  textinput.Model
	err    error
}

func NewGenreModel(parent *AppModel) *GenreModel {
	input := textinput.New()
	input.Placeholder = "sports, music, gaming..."
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	return &GenreModel{
		parent: parent,
		input:  input,
	}
}

func (m *GenreModel) Init() tea.Cmd {
	m.err = nil
	return textinput.Blink
}

func (m *GenreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			genre := strings.TrimSpace(m.input.Value())
			if genre == "" {
				m.err = fmt.Errorf("genre cannot be empty")
				return m, nil
			}
			m.err = nil
			return m, m.parent.send(showProgressMsg{genre: genre})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *GenreModel) View() string {
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Collect top videos by genre"))
	b.WriteString("\n\n")
	b.WriteString("Type a genre and press Enter:\n")
	b.WriteString(listItemStyle.Render(m.input.View()))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(welcomePromptStyle.Render("Enter to start, Esc to quit."))
	return docStyle.Render(b.String())
}
