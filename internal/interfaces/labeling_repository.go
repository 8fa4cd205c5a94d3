package interfaces

import (
	"context"
	"time"

	"whiteboardLabeler/internal/models"
)

// LabelingRepository is the persistence adapter. Both the flat-file and the
// relational store implement it; every method is one atomic read or
// read-modify-write against the backing store.
type LabelingRepository interface {
	ListWhiteboards(ctx context.Context) ([]models.WhiteboardSummary, error)
	FindWhiteboard(ctx context.Context, id string) (*models.Whiteboard, error)
	// InsertChunk appends chunk to its whiteboard and, in the same write,
	// bumps the counters of chunk.Contractor when that contractor exists.
	InsertChunk(ctx context.Context, chunk *models.Chunk) (*models.Chunk, error)
	DeleteChunk(ctx context.Context, whiteboardID, chunkID string) error
	UpdateWhiteboardCompletion(ctx context.Context, id string, complete bool, contractor string) error

	// FindContractor returns nil, nil when no contractor has that name.
	FindContractor(ctx context.Context, name string) (*models.Contractor, error)
	CreateContractorIfAbsent(ctx context.Context, name string, now time.Time) (*models.Contractor, bool, error)

	ListExportRows(ctx context.Context) ([]models.ExportRow, error)
	ImportWhiteboards(ctx context.Context, whiteboards []models.Whiteboard) (int, error)
	ResetWhiteboards(ctx context.Context) error

	Close() error
}
