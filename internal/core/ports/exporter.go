package ports

import "YT_genre_collector/internal/core/domain"

type ExporterPort interface {
	Open(genre string) (string, error)
	Write(record domain.VideoRecord) error
	Close() error
}
