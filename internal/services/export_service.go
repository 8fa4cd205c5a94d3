package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/models"
)

const ExportFileName = "export.csv"

type ExportService struct {
	exportRepo  interfaces.LabelingRepository
	fileManager *FileManagerService
	log         *zap.Logger
	now         func() time.Time
}

// NewExportService builds the export service. fileManager may be nil, in
// which case archiving is disabled.
func NewExportService(exportRepo interfaces.LabelingRepository, fileManager *FileManagerService, log *zap.Logger) *ExportService {
	return &ExportService{
		exportRepo:  exportRepo,
		fileManager: fileManager,
		log:         log,
		now:         now,
	}
}

// ExportCSV renders every chunk as CSV with a header row. Only a failed
// read yields an error; an empty store renders the header alone.
func (es *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := es.exportRepo.ListExportRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrExport, err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrExport, err)
	}
	return buf.Bytes(), nil
}

func WriteCSV(w io.Writer, rows []models.ExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.ExportHeader()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ArchiveCSV uploads a fresh export to object storage and returns its URL.
func (es *ExportService) ArchiveCSV(ctx context.Context) (string, error) {
	if es.fileManager == nil {
		return "", errs.ErrArchiveDisabled
	}
	content, err := es.ExportCSV(ctx)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("export-%s.csv", es.now().Format("20060102T150405.000Z"))
	url, err := es.fileManager.UploadExport(ctx, fileName, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		es.log.Error("archiving export failed", zap.String("file", fileName), zap.Error(err))
		return "", fmt.Errorf("%w: %v", errs.ErrUnableToUploadFile, err)
	}
	es.log.Info("export archived", zap.String("url", url), zap.Int("bytes", len(content)))
	return url, nil
}
