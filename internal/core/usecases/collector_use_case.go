package usecases

import (
	"YT_genre_collector/internal/core/domain"
	"YT_genre_collector/internal/core/ports"
	"context"
	"time"
)

const detailsBatchSize = 50

type collectorUseCase struct {
	service    ports.YoutubePort
	captions   ports.CaptionPort
	exporter   ports.ExporterPort
	log        ports.LoggerPort
	maxResults int64
}

// Stage identifies which step of the pipeline a progress update refers to.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageSearch   Stage = "search"
	StageDetails  Stage = "details"
	StageCaptions Stage = "captions"
	StageDone     Stage = "done"
)

// Progress is a snapshot of the run, delivered after every processed video.
type Progress struct {
	Stage     Stage
	Found     int
	Processed int
	Written   int
	Skipped   int
}

// Summary describes a finished run.
type Summary struct {
	Genre         string
	CategoryID    string
	OutputPath    string
	VideosFound   int
	RowsWritten   int
	Skipped       int
	CaptionsFound int
	Elapsed       time.Duration
}

type CollectorUseCase interface {
	ResolveCategory(ctx context.Context, genre string) (domain.Category, error)
	Collect(ctx context.Context, genre string, progress func(Progress)) (Summary, error)
}

func NewCollectorUseCase(
	service ports.YoutubePort,
	captions ports.CaptionPort,
	exporter ports.ExporterPort,
	logger ports.LoggerPort,
	maxResults int64,
) CollectorUseCase {
	if maxResults <= 0 {
		maxResults = 500
	}

	return &collectorUseCase{
		service:    service,
		captions:   captions,
		exporter:   exporter,
		log:        logger,
		maxResults: maxResults,
	}
}
