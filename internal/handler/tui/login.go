package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"YT_genre_collector/infrastructure/auth"
	"YT_genre_collector/infrastructure/logger"
	"YT_genre_collector/internal/handler/server"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
)

type authURLGeneratedMsg struct{ url string }
type authSuccessMsg struct {
	token *oauth2.Token
	code  string
}
type authErrorMsg struct{ err error }

type loginState int

const (
	loginIdle loginState = iota
	loginAuthURLGenerated
	loginWaitingForCallback
	loginExchangingToken
	loginSuccess
	loginError
)

type LoginModel struct {
	parent           *AppModel
	state            loginState
	authURL          string
	errorMsg         string
	statusMsg        string
	csrfState        string
	httpServerCtx    context.Context
	httpServerCancel context.CancelFunc
}

func NewLoginModel(parent *AppModel) *LoginModel {
	return &LoginModel{
		parent:    parent,
		state:     loginIdle,
		statusMsg: "Press Enter to sign in with Google...",
	}
}

func (m *LoginModel) Init() tea.Cmd {
	// Reset state every time the screen is shown
	m.state = loginIdle
	m.errorMsg = ""
	m.statusMsg = "Press Enter to sign in with Google..."
	m.csrfState = fmt.Sprintf("st%d", time.Now().UnixNano())
	return nil
}

// Generates the consent URL (runs off the UI loop)
func generateAuthURLCmd(authService auth.AuthenticationService, state string) tea.Cmd {
	return func() tea.Msg {
		url := authService.GenerateAuthURL(state)
		return authURLGeneratedMsg{url: url}
	}
}

// Waits for the Google callback in the background
func waitForCallbackCmd(
	ctx context.Context,
	callbackHandler server.CallbackHandler,
	expectedState string,
	addr string,
	callbackPath string,
	logger logger.Logger,
) tea.Cmd {
	return func() tea.Msg {
		resultChan := make(chan server.OAuthCallbackResult, 1)

		srvCtx, srvCancel := context.WithCancel(ctx)
		defer srvCancel()

		logger.Info(fmt.Sprintf("Starting callback server at %s, expected state: %s", addr, expectedState))
		_ = callbackHandler.ListenAndServe(srvCtx, expectedState, addr, callbackPath, resultChan)

		logger.Info("Waiting for OAuth callback result...")
		select {
		case res := <-resultChan:
			if res.Error != nil {
				return authErrorMsg{err: fmt.Errorf("callback error: %w", res.Error)}
			}
			if res.Code != "" {
				return authSuccessMsg{code: res.Code}
			}
			return authErrorMsg{err: fmt.Errorf("no code or error in callback")}
		case <-ctx.Done():
			logger.Info("Callback canceled by parent context.")
			return authErrorMsg{err: fmt.Errorf("login canceled: %w", ctx.Err())}
		}
	}
}

// Exchanges the received code for a token
func exchangeCodeCmd(authService auth.AuthenticationService, code string, appCtx context.Context) tea.Cmd {
	return func() tea.Msg {
		token, err := authService.ExchangeCodeForToken(appCtx, code)
		if err != nil {
			return authErrorMsg{err: fmt.Errorf("token exchange failed: %w", err)}
		}
		return authSuccessMsg{token: token, code: ""}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if (m.state == loginIdle || m.state == loginError) && msg.Type == tea.KeyEnter {
			m.state = loginAuthURLGenerated
			m.statusMsg = "Generating authentication URL..."
			m.errorMsg = ""
			return m, generateAuthURLCmd(m.parent.authService, m.csrfState)
		}

	case authURLGeneratedMsg:
		m.authURL = msg.url
		m.statusMsg = "Open this link in your browser to authenticate:\n"
		// Try to open the browser automatically
		go func() {
			if err := browser.OpenURL(m.authURL); err != nil {
				m.parent.logger.Error("Could not open the browser", err)
			}
		}()

		m.state = loginWaitingForCallback

		serverCtx, serverCancel := context.WithCancel(m.parent.appContext)
		m.httpServerCtx = serverCtx
		m.httpServerCancel = serverCancel

		return m, waitForCallbackCmd(
			m.httpServerCtx,
			m.parent.callbackHandler,
			m.csrfState,
			":8080",
			"/",
			m.parent.logger,
		)

	case authSuccessMsg:
		if m.httpServerCancel != nil {
			m.httpServerCancel()
			m.httpServerCancel = nil
			m.parent.logger.Info("Callback server finished.")
		}

		// msg.code != "" → phase 1 (got the code, exchange it)
		if msg.code != "" {
			m.state = loginExchangingToken
			m.statusMsg = "Code received! Exchanging for a token..."
			return m, exchangeCodeCmd(m.parent.authService, msg.code, m.parent.appContext)
		}

		// msg.code == "" and token != nil → phase 2 (login complete)
		if msg.token != nil {
			m.state = loginSuccess
			m.statusMsg = "Login successful! Moving on..."
			m.errorMsg = ""
			return m, tea.Sequence(
				tea.Tick(time.Millisecond*500, func(t time.Time) tea.Msg { return nil }),
				m.parent.send(showGenreMsg{}),
			)
		}

	case authErrorMsg:
		if m.httpServerCancel != nil {
			m.httpServerCancel()
			m.httpServerCancel = nil
			m.parent.logger.Info("Callback server stopped after error.")
		}
		m.state = loginError
		m.errorMsg = fmt.Sprintf("Login failed: %v", msg.err)
		m.statusMsg = "Press Enter to try again."
		m.parent.logger.Error("authErrorMsg received", msg.err)
	}

	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := welcomeTitleStyle.Render("Google Authentication")
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.errorMsg != "" {
		b.WriteString(errorMessageStyle.Render(m.errorMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusMsg)
	b.WriteString("\n")

	if m.state == loginWaitingForCallback && m.authURL != "" {
		b.WriteString(urlStyle.Render(m.authURL))
		b.WriteString("\n\n")
		b.WriteString(welcomePromptStyle.Render("Waiting for browser authentication..."))
	}

	b.WriteString("\n\n")
	b.WriteString(welcomePromptStyle.Render("(Ctrl+C to quit)"))
	return docStyle.Render(b.String())
}
