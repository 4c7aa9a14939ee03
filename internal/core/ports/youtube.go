package ports

import (
	"YT_genre_collector/internal/core/domain"
	"context"
)

type YoutubePort interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SearchTopVideos(ctx context.Context, query, categoryID string, maxResults int64) ([]string, error)
	GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.FetchResult, error)
}
