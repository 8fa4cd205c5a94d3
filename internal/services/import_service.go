package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/models"
)

// ImportService loads whiteboards from batch CSV files and resets progress.
type ImportService struct {
	whiteboardRepo interfaces.LabelingRepository
	log            *zap.Logger
}

func NewImportService(whiteboardRepo interfaces.LabelingRepository, log *zap.Logger) *ImportService {
	return &ImportService{
		whiteboardRepo: whiteboardRepo,
		log:            log,
	}
}

// ParseWhiteboardsCSV reads rows of a CSV whose header names an id and an
// image_url column, in any order. Rows without an id are skipped.
func ParseWhiteboardsCSV(r io.Reader) ([]models.Whiteboard, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.ErrInvalidImportFile
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidImportFile, err)
	}

	idColumn, urlColumn := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "id":
			idColumn = i
		case "image_url":
			urlColumn = i
		}
	}
	if idColumn < 0 || urlColumn < 0 {
		return nil, errs.ErrInvalidImportFile
	}

	whiteboards := []models.Whiteboard{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidImportFile, err)
		}
		if idColumn >= len(record) || urlColumn >= len(record) {
			continue
		}
		id := strings.TrimSpace(record[idColumn])
		if id == "" {
			continue
		}
		whiteboards = append(whiteboards, models.Whiteboard{
			ID:       id,
			ImageURL: strings.TrimSpace(record[urlColumn]),
			Chunks:   []models.Chunk{},
		})
	}
	return whiteboards, nil
}

func (is *ImportService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	whiteboards, err := ParseWhiteboardsCSV(r)
	if err != nil {
		return 0, err
	}
	imported, err := is.whiteboardRepo.ImportWhiteboards(ctx, whiteboards)
	if err != nil {
		return 0, err
	}
	is.log.Info("whiteboards imported",
		zap.Int("rows", len(whiteboards)),
		zap.Int("imported", imported))
	return imported, nil
}

// Reset marks every whiteboard incomplete and clears its last contractor.
func (is *ImportService) Reset(ctx context.Context) error {
	if err := is.whiteboardRepo.ResetWhiteboards(ctx); err != nil {
		return err
	}
	is.log.Info("whiteboards reset")
	return nil
}
