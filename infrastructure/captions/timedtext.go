package captions

import (
	"YT_genre_collector/internal/core/ports"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.youtube.com/api/timedtext"

// timedtextClient downloads caption text from YouTube's timedtext
// endpoint. The Data API only allows caption downloads for videos the
// caller owns, so arbitrary public videos go through this endpoint
// instead.
type timedtextClient struct {
	httpClient *http.Client
	baseURL    string
	language   string
	limiter    *rate.Limiter
	log        ports.LoggerPort
}

func NewTimedtextClient(language string, requestsPerSecond float64, logger ports.LoggerPort) ports.CaptionPort {
	if language == "" {
		language = "en"
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.5
	}

	return &timedtextClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		language:   language,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:        logger,
	}
}

type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	Segs []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchCaptionText returns the full caption text of a video, preferring
// a manually created track in the configured language and falling back
// to the auto-generated one.
func (tc *timedtextClient) FetchCaptionText(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("video ID cannot be empty")
	}

	kinds := []string{"", "asr"}
	var lastErr error
	for _, kind := range kinds {
		text, err := tc.fetchTrack(ctx, videoID, tc.language, kind)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("no caption track for video %s: %w", videoID, lastErr)
	}
	return "", fmt.Errorf("no caption text for video %s", videoID)
}

func (tc *timedtextClient) fetchTrack(ctx context.Context, videoID, lang, kind string) (string, error) {
	if err := tc.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")
	if kind != "" {
		params.Set("kind", kind)
	}

	requestURL := fmt.Sprintf("%s?%s", tc.baseURL, params.Encode())
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("build timedtext request: %w", err)
	}

	response, err := tc.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("timedtext request failed: %w", err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("captions not found for video %s in language %s", videoID, lang)
	case http.StatusForbidden:
		return "", fmt.Errorf("access denied: video region restricted or captions disabled")
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("rate limited by YouTube")
	default:
		return "", fmt.Errorf("timedtext API returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read timedtext response: %w", err)
	}

	text, err := parseTimedtext(body)
	if err != nil {
		return "", fmt.Errorf("parse timedtext response: %w", err)
	}

	return text, nil
}

// parseTimedtext flattens the timedtext event list into a single string,
// one space between events.
func parseTimedtext(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	parts := make([]string, 0, len(resp.Events))
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		cleaned := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, " "), nil
}
