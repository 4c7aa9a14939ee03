// main.go
package main

import (
	"YT_genre_collector/infrastructure/auth"
	"YT_genre_collector/infrastructure/captions"
	"YT_genre_collector/infrastructure/exporter"
	"YT_genre_collector/infrastructure/logger"
	"YT_genre_collector/infrastructure/provider"
	"YT_genre_collector/infrastructure/token_manager"
	"YT_genre_collector/internal/config"
	"YT_genre_collector/internal/core/usecases"
	"YT_genre_collector/internal/handler/server"
	"YT_genre_collector/internal/handler/tui"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/api/youtube/v3" // For scopes
)

const (
	configFilePath = "./collector.yml"
	callbackURL    = "http://localhost:8080"
)

func main() {
	cfg, err := config.Load(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	appLogger, err := logger.NewFileLogger(cfg.LogDir, "genre_collector")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	// Initialize Services
	tokenService := token_manager.NewTokenService(cfg.TokenFile)

	// With an API key configured the OAuth flow is never needed.
	needsLogin := cfg.APIKey == ""

	var authService auth.AuthenticationService
	var callbackHandler server.CallbackHandler
	if needsLogin {
		authService, err = auth.NewAuthenticationService(
			[]string{youtube.YoutubeReadonlyScope},
			cfg.ClientSecretFile,
			callbackURL,
			tokenService,
		)
		if err != nil {
			appLogger.Error("Failed to initialize auth service", err)
			fmt.Fprintf(os.Stderr, "No API key set and OAuth is unavailable: %v\n", err)
			fmt.Fprintln(os.Stderr, "Set YOUTUBE_API_KEY (or provide a client secret file) and try again.")
			os.Exit(1)
		}
		callbackHandler = server.NewCallbackHandler(appLogger)
	}

	youtubeProvider := provider.NewYoutubeProvider(cfg.APIKey, tokenService, appLogger, cfg.RequestsPerSecond, cfg.Region)
	captionClient := captions.NewTimedtextClient(cfg.CaptionLanguage, cfg.CaptionRPS, appLogger)
	csvExporter := exporter.NewCSVExporter(cfg.OutputDir, appLogger)
	collectorUseCase := usecases.NewCollectorUseCase(youtubeProvider, captionClient, csvExporter, appLogger, cfg.MaxResults)

	// A genre on the command line runs without the TUI.
	if len(os.Args) > 1 {
		genre := strings.TrimSpace(strings.Join(os.Args[1:], " "))
		if err := runHeadless(collectorUseCase, genre); err != nil {
			appLogger.Error("Headless run failed", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			appLogger.Close()
			os.Exit(1)
		}
		appLogger.Info("Application finished.")
		return
	}

	// Create the initial TUI model
	initialModel := tui.NewAppModel(authService, callbackHandler, collectorUseCase, tokenService, appLogger, needsLogin)

	// Start Bubble Tea program
	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Error("Error running TUI program", err)
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Application finished.")
}

func runHeadless(collectorUseCase usecases.CollectorUseCase, genre string) error {
	fmt.Printf("Collecting top videos for genre %q...\n", genre)

	summary, err := collectorUseCase.Collect(context.Background(), genre, func(p usecases.Progress) {
		if p.Found == 0 || p.Processed == 0 {
			return
		}
		fmt.Printf("\rProcessed %d/%d (written %d, skipped %d)", p.Processed, p.Found, p.Written, p.Skipped)
	})
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d rows written (%d skipped, %d with captions) in %s\n",
		summary.RowsWritten, summary.Skipped, summary.CaptionsFound, summary.Elapsed.Round(10*time.Millisecond))
	fmt.Printf("Saved to: %s\n", summary.OutputPath)
	return nil
}
