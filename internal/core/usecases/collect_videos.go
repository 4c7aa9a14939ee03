package usecases

import (
	"context"
	"fmt"
	"time"
)

// Collect runs the full pipeline for one genre: resolve the category,
// collect the ranked video IDs, fetch details in batches, attach caption
// text where a track exists, and append one CSV row per record in ranked
// order. Per-video failures are logged and skipped; provider failures on
// the category or search calls abort the run.
func (uc *collectorUseCase) Collect(ctx context.Context, genre string, progress func(Progress)) (Summary, error) {
	uc.log.Info("Init Collect")
	start := time.Now()

	if progress == nil {
		progress = func(Progress) {}
	}

	progress(Progress{Stage: StageResolve})
	category, err := uc.ResolveCategory(ctx, genre)
	if err != nil {
		return Summary{}, err
	}

	progress(Progress{Stage: StageSearch})
	videoIDs, err := uc.service.SearchTopVideos(ctx, genre, category.ID, uc.maxResults)
	if err != nil {
		uc.log.Error("Failed to search top videos", err)
		return Summary{}, fmt.Errorf("error while searching top videos: %w", err)
	}
	uc.log.Info(fmt.Sprintf("Search returned %d video IDs for genre %q", len(videoIDs), genre))

	summary := Summary{
		Genre:       genre,
		CategoryID:  category.ID,
		VideosFound: len(videoIDs),
	}

	outputPath, err := uc.exporter.Open(genre)
	if err != nil {
		uc.log.Error("Failed to open output file", err)
		return Summary{}, fmt.Errorf("error while opening output file: %w", err)
	}
	defer uc.exporter.Close()
	summary.OutputPath = outputPath

	report := func(stage Stage) {
		progress(Progress{
			Stage:     stage,
			Found:     summary.VideosFound,
			Processed: summary.RowsWritten + summary.Skipped,
			Written:   summary.RowsWritten,
			Skipped:   summary.Skipped,
		})
	}

	for offset := 0; offset < len(videoIDs); offset += detailsBatchSize {
		end := offset + detailsBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[offset:end]

		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("collection canceled: %w", err)
		}

		results, err := uc.service.GetVideoDetails(ctx, batch)
		if err != nil {
			// The batch produced nothing; every video in it is skipped.
			uc.log.Error(fmt.Sprintf("Details lookup failed for batch of %d videos", len(batch)), err)
			summary.Skipped += len(batch)
			report(StageDetails)
			continue
		}

		for _, result := range results {
			if err := ctx.Err(); err != nil {
				return summary, fmt.Errorf("collection canceled: %w", err)
			}

			if result.Skipped {
				uc.log.Warning(fmt.Sprintf("Skipping video %s: %s", result.VideoID, result.Reason))
				summary.Skipped++
				report(StageDetails)
				continue
			}

			record := result.Record
			if record.CaptionsAvailable {
				report(StageCaptions)
				text, err := uc.captions.FetchCaptionText(ctx, record.ID)
				if err != nil || text == "" {
					// Caption track exists but could not be downloaded:
					// downgrade the record and keep going.
					uc.log.Warning(fmt.Sprintf("Caption download failed for video %s, writing row without captions", record.ID))
					record.CaptionsAvailable = false
					record.CaptionText = ""
				} else {
					record.CaptionText = text
					summary.CaptionsFound++
				}
			}

			if err := uc.exporter.Write(record); err != nil {
				uc.log.Error("Failed to write CSV row", err)
				return summary, fmt.Errorf("error while writing CSV row: %w", err)
			}
			summary.RowsWritten++
			report(StageDetails)
		}
	}

	summary.Elapsed = time.Since(start)
	report(StageDone)
	uc.log.Info(fmt.Sprintf(
		"Collect completed: %d rows written, %d skipped, %d with captions, output %s",
		summary.RowsWritten, summary.Skipped, summary.CaptionsFound, summary.OutputPath,
	))

	return summary, nil
}
