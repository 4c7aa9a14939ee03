package ports

import "context"

type CaptionPort interface {
	FetchCaptionText(ctx context.Context, videoID string) (string, error)
}
