package exporter

import (
	"YT_genre_collector/internal/core/domain"
	"YT_genre_collector/internal/core/ports"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type csvExporter struct {
	outputDir string
	log       ports.LoggerPort
	file      *os.File
	writer    *csv.Writer
}

// NewCSVExporter writes one timestamped CSV file per run under outputDir.
func NewCSVExporter(outputDir string, logger ports.LoggerPort) ports.ExporterPort {
	if outputDir == "" {
		outputDir = "output"
	}

	return &csvExporter{
		outputDir: outputDir,
		log:       logger,
	}
}

// Open creates the output file for a genre and writes the header row.
// The file name carries the sanitized genre and a timestamp so repeated
// runs never clobber each other.
func (e *csvExporter) Open(genre string) (string, error) {
	if e.file != nil {
		return "", fmt.Errorf("exporter already open")
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("error while creating output directory %s: %w", e.outputDir, err)
	}

	fileName := fmt.Sprintf("youtube_%s_%s.csv", sanitizeGenre(genre), time.Now().Format("20060102_150405"))
	path := filepath.Join(e.outputDir, fileName)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error while creating output file %s: %w", path, err)
	}

	e.file = file
	e.writer = csv.NewWriter(file)

	if err := e.writer.Write(domain.CSVHeader()); err != nil {
		file.Close()
		e.file = nil
		e.writer = nil
		return "", fmt.Errorf("error while writing CSV header: %w", err)
	}

	e.log.Info(fmt.Sprintf("Output file created: %s", path))
	return path, nil
}

// Write appends one record row and flushes it, so a crash mid-run loses
// at most the row being written.
func (e *csvExporter) Write(record domain.VideoRecord) error {
	if e.writer == nil {
		return fmt.Errorf("exporter is not open")
	}

	if err := e.writer.Write(record.CSVRow()); err != nil {
		return fmt.Errorf("error while writing CSV row: %w", err)
	}

	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		return fmt.Errorf("error while flushing CSV row: %w", err)
	}

	return nil
}

func (e *csvExporter) Close() error {
	if e.file == nil {
		return nil
	}

	e.writer.Flush()
	flushErr := e.writer.Error()

	closeErr := e.file.Close()
	e.file = nil
	e.writer = nil

	if flushErr != nil {
		return fmt.Errorf("error while flushing output file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error while closing output file: %w", closeErr)
	}

	return nil
}

// sanitizeGenre keeps only characters that are safe in a file name,
// mirroring how output files were always named.
func sanitizeGenre(genre string) string {
	var b strings.Builder
	for _, r := range genre {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
