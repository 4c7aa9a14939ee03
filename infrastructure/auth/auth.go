package auth

import (
	"YT_genre_collector/infrastructure/token_manager"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type authenticationServiceImpl struct {
	clientSecretFilePath string
	defaultRedirectURL   string
	oauthConfig          *oauth2.Config
	tokenService         token_manager.TokenService
}

type AuthenticationService interface {
	GetAuthenticatedClient(ctx context.Context) (*http.Client, *oauth2.Token, error)
	GenerateAuthURL(state string) string
	RevokeToken(tokenToRevoke string) error
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
}

func NewAuthenticationService(scopes []string, clientSecretFilePath, redirectURL string, tokenService token_manager.TokenService) (AuthenticationService, error) {
	config, err := loadConfig(scopes, clientSecretFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not load client configuration: %w", err)
	}

	config.RedirectURL = redirectURL

	return &authenticationServiceImpl{
		clientSecretFilePath: clientSecretFilePath,
		defaultRedirectURL:   redirectURL,
		tokenService:         tokenService,
		oauthConfig:          config,
	}, nil
}

func loadConfig(scopes []string, clientSecretFilePath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(clientSecretFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read client secret file (%s): %w", clientSecretFilePath, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("could not parse client configuration from JSON file: %w", err)
	}

	return config, nil
}

func (a *authenticationServiceImpl) GetAuthenticatedClient(ctx context.Context) (*http.Client, *oauth2.Token, error) {
	token, err := a.tokenService.LoadToken()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load token: %w", err)
	}

	tokenSource := a.oauthConfig.TokenSource(ctx, token)
	refreshedToken, err := tokenSource.Token()
	if err != nil {
		_ = a.tokenService.DeleteLocalToken()
		return nil, nil, fmt.Errorf("could not refresh token: %w", err)
	}

	if refreshedToken.AccessToken != token.AccessToken || (refreshedToken.RefreshToken != "" && refreshedToken.RefreshToken != token.RefreshToken) {
		if errSave := a.tokenService.SaveToken(refreshedToken); errSave != nil {
			return nil, nil, fmt.Errorf("could not save refreshed token: %w", errSave)
		}
	}

	return oauth2.NewClient(ctx, tokenSource), refreshedToken, nil
}

func (a *authenticationServiceImpl) GenerateAuthURL(state string) string {
	return a.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (a *authenticationServiceImpl) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("could not exchange authorization code for a token: %w", err)
	}

	if err = a.tokenService.SaveToken(token); err != nil {
		return nil, fmt.Errorf("could not save token: %w", err)
	}

	return token, nil
}

func (a *authenticationServiceImpl) RevokeToken(tokenToRevoke string) error {
	if tokenToRevoke == "" {
		return nil
	}

	revokeURL := "https://oauth2.googleapis.com/revoke"

	data := url.Values{}
	data.Set("token", tokenToRevoke)

	resp, err := http.PostForm(revokeURL, data)
	if err != nil {
		return fmt.Errorf("failed to send token revocation request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to revoke token, status: %s", resp.Status)
	}

	return nil
}
