package domain

import (
	"strconv"
	"strings"
	"time"
)

// VideoRecord holds every attribute exported for a single ranked video.
// It is built once from the API responses and not modified after the
// caption stage resolves.
type VideoRecord struct {
	ID                string
	URL               string
	Title             string
	Description       string
	ChannelTitle      string
	Tags              []string
	CategoryID        string
	TopicDetails      []string
	PublishedAt       time.Time
	Duration          time.Duration
	ViewCount         uint64
	CommentCount      uint64
	CaptionsAvailable bool
	CaptionText       string
	RecordingLocation string
}

// CSVHeader returns the column names, in the order rows are written.
func CSVHeader() []string {
	return []string{
		"Video URL",
		"Title",
		"Description",
		"Channel Title",
		"Keyword Tags",
		"YouTube Video Category",
		"Topic Details",
		"Video Published at",
		"Video Duration",
		"View Count",
		"Comment Count",
		"Captions Available",
		"Caption Text",
		"Recording Location",
	}
}

// CSVRow serializes the record into one row matching CSVHeader.
func (v VideoRecord) CSVRow() []string {
	published := ""
	if !v.PublishedAt.IsZero() {
		published = v.PublishedAt.Format(time.RFC3339)
	}

	return []string{
		v.URL,
		v.Title,
		v.Description,
		v.ChannelTitle,
		strings.Join(v.Tags, ","),
		v.CategoryID,
		strings.Join(v.TopicDetails, ","),
		published,
		v.Duration.String(),
		strconv.FormatUint(v.ViewCount, 10),
		strconv.FormatUint(v.CommentCount, 10),
		strconv.FormatBool(v.CaptionsAvailable),
		v.CaptionText,
		v.RecordingLocation,
	}
}

// FetchResult carries the outcome of one video lookup through the
// pipeline: either a populated record or a skip with its reason. Skips
// are accounted for, never written as rows.
type FetchResult struct {
	VideoID string
	Record  VideoRecord
	Skipped bool
	Reason  string
}

// Fetched wraps a populated record in a successful result.
func Fetched(record VideoRecord) FetchResult {
	return FetchResult{VideoID: record.ID, Record: record}
}

// Skip reports a video that produced no record.
func Skip(videoID, reason string) FetchResult {
	return FetchResult{VideoID: videoID, Skipped: true, Reason: reason}
}

// Category is one entry of the platform category list.
type Category struct {
	ID    string
	Title string
}
