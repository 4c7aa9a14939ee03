package tui

import (
	"context"
	"fmt"

	"YT_genre_collector/infrastructure/auth"
	"YT_genre_collector/infrastructure/logger"
	"YT_genre_collector/infrastructure/token_manager"
	"YT_genre_collector/internal/core/usecases"
	"YT_genre_collector/internal/handler/server"

	tea "github.com/charmbracelet/bubbletea"
)

type currentView int

const (
	viewWelcome currentView = iota
	viewLogin
	viewGenre
	viewProgress
	viewDone
)

type AppModel struct {
	// Injected dependencies. authService and callbackHandler are nil when
	// an API key is configured and no OAuth login is needed.
	authService      auth.AuthenticationService
	callbackHandler  server.CallbackHandler
	collectorUseCase usecases.CollectorUseCase
	tokenService     token_manager.TokenService
	logger           logger.Logger

	welcomeModel  *WelcomeModel
	loginModel    *LoginModel
	genreModel    *GenreModel
	progressModel *ProgressModel
	doneModel     *DoneModel

	currentView currentView
	needsLogin  bool
	err         error

	appContext context.Context
	cancelApp  context.CancelFunc

	width  int
	height int
}

func NewAppModel(
	authSvc auth.AuthenticationService,
	cbHandler server.CallbackHandler,
	collectorUC usecases.CollectorUseCase,
	tokenSvc token_manager.TokenService,
	log logger.Logger,
	needsLogin bool,
) *AppModel {
	appCtx, cancel := context.WithCancel(context.Background())

	m := &AppModel{
		authService:      authSvc,
		callbackHandler:  cbHandler,
		collectorUseCase: collectorUC,
		tokenService:     tokenSvc,
		logger:           log,
		needsLogin:       needsLogin,

		appContext: appCtx,
		cancelApp:  cancel,
	}

	m.welcomeModel = NewWelcomeModel(m)
	m.loginModel = NewLoginModel(m)
	m.genreModel = NewGenreModel(m)
	m.doneModel = NewDoneModel(m, usecases.Summary{}, nil)

	m.currentView = viewWelcome
	return m
}

func (m *AppModel) Init() tea.Cmd {
	// In API key mode the genre prompt is the entry point. In OAuth mode
	// a cached token also skips the login screens.
	return func() tea.Msg {
		if !m.needsLogin {
			m.logger.Info("API key configured, going straight to genre input")
			return showGenreMsg{}
		}
		if _, err := m.tokenService.LoadToken(); err == nil {
			m.logger.Info("Existing token found, going to genre input")
			return showGenreMsg{}
		}
		m.logger.Info("No valid token, showing Welcome")
		return showWelcomeMsg{}
	}
}

// Navigation messages used by the sub-models
type showWelcomeMsg struct{}
type showLoginMsg struct{}
type showGenreMsg struct{}
type showProgressMsg struct{ genre string }
type showDoneMsg struct {
	summary usecases.Summary
	err     error
}

func (m *AppModel) send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// Global keys (Ctrl+C always quits; Esc quits outside text input)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.logger.Info("Ctrl+C pressed, shutting down.")
			m.cancelApp()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	// Navigation messages
	switch msg := msg.(type) {
	case showWelcomeMsg:
		m.currentView = viewWelcome
		m.err = nil
		cmd = m.welcomeModel.Init()

	case showLoginMsg:
		m.currentView = viewLogin
		m.err = nil
		cmd = m.loginModel.Init()

	case showGenreMsg:
		m.currentView = viewGenre
		m.err = nil
		gm := NewGenreModel(m)
		m.genreModel = gm
		cmd = gm.Init()

	case showProgressMsg:
		m.currentView = viewProgress
		m.err = nil
		pm := NewProgressModel(m, msg.genre)
		m.progressModel = pm
		cmd = pm.Init()

	case showDoneMsg:
		m.currentView = viewDone
		dm := NewDoneModel(m, msg.summary, msg.err)
		m.doneModel = dm
		cmd = dm.Init()
	}

	cmds = append(cmds, cmd)

	// Delegate to the sub-model owning the current view
	var currentViewCmd tea.Cmd
	switch m.currentView {
	case viewWelcome:
		if m.welcomeModel != nil {
			updated, cmd := m.welcomeModel.Update(msg)
			if casted, ok := updated.(*WelcomeModel); ok {
				m.welcomeModel = casted
			}
			currentViewCmd = cmd
		}

	case viewLogin:
		if m.loginModel != nil {
			updated, cmd := m.loginModel.Update(msg)
			if casted, ok := updated.(*LoginModel); ok {
				m.loginModel = casted
			}
			currentViewCmd = cmd
		}

	case viewGenre:
		if m.genreModel != nil {
			updated, cmd := m.genreModel.Update(msg)
			if casted, ok := updated.(*GenreModel); ok {
				m.genreModel = casted
			}
			currentViewCmd = cmd
		}

	case viewProgress:
		if m.progressModel != nil {
			updated, cmd := m.progressModel.Update(msg)
			if casted, ok := updated.(*ProgressModel); ok {
				m.progressModel = casted
			}
			currentViewCmd = cmd
		}

	case viewDone:
		if m.doneModel != nil {
			updated, cmd := m.doneModel.Update(msg)
			if casted, ok := updated.(*DoneModel); ok {
				m.doneModel = casted
			}
			currentViewCmd = cmd
		}
	}

	cmds = append(cmds, currentViewCmd)
	return m, tea.Batch(cmds...)
}

func (m *AppModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("An error occurred: %v\n\n(Ctrl+C to quit)", m.err)
	}

	switch m.currentView {
	case viewWelcome:
		return m.welcomeModel.View()
	case viewLogin:
		return m.loginModel.View()
	case viewGenre:
		return m.genreModel.View()
	case viewProgress:
		return m.progressModel.View()
	case viewDone:
		return m.doneModel.View()
	default:
		return "Unknown view…"
	}
}
