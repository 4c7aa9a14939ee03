package provider

import (
	"YT_genre_collector/infrastructure/token_manager"
	"YT_genre_collector/internal/core/domain"
	"YT_genre_collector/internal/core/ports"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sosodev/duration"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const searchPageSize = 50

type youtubeProvider struct {
	apiKey       string
	tokenService token_manager.TokenService
	log          ports.LoggerPort
	service      *youtube.Service
	limiter      *rate.Limiter
	region       string
	extraOptions []option.ClientOption
	mu           sync.Mutex
}

// NewYoutubeProvider builds a Data API adapter. With a non-empty apiKey the
// provider authenticates with it; otherwise it falls back to the cached
// OAuth token managed by tokenService. requestsPerSecond paces every call
// to stay clear of quota bursts. extraOptions is used by tests to point the
// client at a fake endpoint.
func NewYoutubeProvider(
	apiKey string,
	tokenService token_manager.TokenService,
	logger ports.LoggerPort,
	requestsPerSecond float64,
	region string,
	extraOptions ...option.ClientOption,
) ports.YoutubePort {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	if region == "" {
		region = "US"
	}

	return &youtubeProvider{
		apiKey:       apiKey,
		tokenService: tokenService,
		log:          logger,
		service:      nil,
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		region:       region,
		extraOptions: extraOptions,
		mu:           sync.Mutex{},
	}
}

func (s *youtubeProvider) getYoutubeService(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return nil
	}

	var opts []option.ClientOption
	if s.apiKey != "" {
		opts = append(opts, option.WithAPIKey(s.apiKey))
	} else {
		if s.tokenService == nil {
			return fmt.Errorf("no API key configured and no token service available")
		}

		token, err := s.tokenService.LoadToken()
		if err != nil {
			s.log.Error("error while load token", err)
			return fmt.Errorf("error while load token: %w", err)
		}

		s.log.Info("Load token completed")
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	}
	opts = append(opts, s.extraOptions...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube service", err)
		return fmt.Errorf("error while create youtube service: %w", err)
	}

	s.service = service
	s.log.Info("Create youtube service completed")

	return nil
}

func (s *youtubeProvider) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func (s *youtubeProvider) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.service == nil {
		if err := s.getYoutubeService(ctx); err != nil {
			return nil, fmt.Errorf("error while create youtube provider: %w", err)
		}
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	call := s.service.VideoCategories.List([]string{"snippet"}).RegionCode(s.region).Context(ctx)
	response, err := call.Do()
	if err != nil {
		s.log.Error("error while call youtube service", err)
		return nil, fmt.Errorf("error in call youtube api: %w", err)
	}

	categories := make([]domain.Category, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		categories = append(categories, domain.Category{
			ID:    item.Id,
			Title: item.Snippet.Title,
		})
	}

	return categories, nil
}

// SearchTopVideos pages through search results ordered by view count and
// returns up to maxResults unique video IDs, in rank order.
func (s *youtubeProvider) SearchTopVideos(ctx context.Context, query, categoryID string, maxResults int64) ([]string, error) {
	if s.service == nil {
		if err := s.getYoutubeService(ctx); err != nil {
			return nil, fmt.Errorf("error while create youtube provider: %w", err)
		}
	}

	videoIDs := make([]string, 0, maxResults)
	seen := make(map[string]bool, maxResults)
	pageToken := ""

	for int64(len(videoIDs)) < maxResults {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}

		pageSize := maxResults - int64(len(videoIDs))
		if pageSize > searchPageSize {
			pageSize = searchPageSize
		}

		call := s.service.Search.List([]string{"id"}).
			Q(query).
			Type("video").
			Order("viewCount").
			MaxResults(pageSize).
			Context(ctx)
		if categoryID != "" {
			call = call.VideoCategoryId(categoryID)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			s.log.Error("error while call youtube service", err)
			return nil, fmt.Errorf("error in call youtube api: %w", err)
		}

		if len(response.Items) == 0 {
			s.log.Warning("No more videos available for this search")
			break
		}

		for _, item := range response.Items {
			if item.Id == nil || item.Id.VideoId == "" || seen[item.Id.VideoId] {
				continue
			}
			seen[item.Id.VideoId] = true
			videoIDs = append(videoIDs, item.Id.VideoId)
			if int64(len(videoIDs)) >= maxResults {
				break
			}
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return videoIDs, nil
}

// GetVideoDetails looks up one batch of IDs and returns a result per
// requested ID, in the order the IDs were given. IDs the API did not echo
// back come out as skips; individual missing fields stay empty.
func (s *youtubeProvider) GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.FetchResult, error) {
	if s.service == nil {
		if err := s.getYoutubeService(ctx); err != nil {
			return nil, fmt.Errorf("error while create youtube provider: %w", err)
		}
	}

	if len(videoIDs) == 0 {
		return nil, nil
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	call := s.service.Videos.List([]string{"snippet", "contentDetails", "statistics", "topicDetails", "recordingDetails"}).
		Id(videoIDs...).
		Context(ctx)
	response, err := call.Do()
	if err != nil {
		s.log.Error("error while call youtube service", err)
		return nil, fmt.Errorf("error in call youtube api: %w", err)
	}

	byID := make(map[string]*youtube.Video, len(response.Items))
	for _, item := range response.Items {
		byID[item.Id] = item
	}

	results := make([]domain.FetchResult, 0, len(videoIDs))
	for _, videoID := range videoIDs {
		item, ok := byID[videoID]
		if !ok {
			results = append(results, domain.Skip(videoID, "video not returned by details lookup"))
			continue
		}
		results = append(results, domain.Fetched(s.buildRecord(item)))
	}

	return results, nil
}

func (s *youtubeProvider) buildRecord(item *youtube.Video) domain.VideoRecord {
	record := domain.VideoRecord{
		ID:  item.Id,
		URL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
	}

	if item.Snippet != nil {
		record.Title = item.Snippet.Title
		record.Description = item.Snippet.Description
		record.ChannelTitle = item.Snippet.ChannelTitle
		record.Tags = item.Snippet.Tags
		record.CategoryID = item.Snippet.CategoryId

		if item.Snippet.PublishedAt != "" {
			parsePublish, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			if err != nil {
				s.log.Warning(fmt.Sprintf("Unparseable publish timestamp for video %s: %q", item.Id, item.Snippet.PublishedAt))
			} else {
				record.PublishedAt = parsePublish
			}
		}
	}

	if item.ContentDetails != nil {
		record.CaptionsAvailable = item.ContentDetails.Caption == "true"

		if item.ContentDetails.Duration != "" {
			parseDuration, err := duration.Parse(item.ContentDetails.Duration)
			if err != nil {
				s.log.Warning(fmt.Sprintf("Unparseable duration for video %s: %q", item.Id, item.ContentDetails.Duration))
			} else {
				record.Duration = parseDuration.ToTimeDuration()
			}
		}
	}

	if item.Statistics != nil {
		record.ViewCount = item.Statistics.ViewCount
		record.CommentCount = item.Statistics.CommentCount
	}

	if item.TopicDetails != nil {
		record.TopicDetails = item.TopicDetails.TopicCategories
	}

	if item.RecordingDetails != nil {
		record.RecordingLocation = item.RecordingDetails.LocationDescription
		if record.RecordingLocation == "" && item.RecordingDetails.Location != nil {
			record.RecordingLocation = fmt.Sprintf("%f,%f",
				item.RecordingDetails.Location.Latitude,
				item.RecordingDetails.Location.Longitude)
		}
	}

	return record
}
