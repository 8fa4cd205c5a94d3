package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

// Repository keeps the whole dataset in one JSON document and rewrites the
// document on every mutation. The mutex serializes read-modify-write cycles
// inside this process only; two processes sharing the file still race and
// the last writer wins.
type Repository struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// document mirrors models.Dataset with pointers so a missing collection can
// be told apart from an empty one.
type document struct {
	Whiteboards *[]models.Whiteboard `json:"whiteboards"`
	Contractors *[]models.Contractor `json:"contractors"`
}

// Open prepares the file at path, creating it with empty collections when it
// does not exist or is empty.
func Open(path string, log *zap.Logger) (*Repository, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Repository{path: path, log: log}

	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist), err == nil && info.Size() == 0:
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: creating data directory: %v", errs.ErrStorageUnavailable, err)
			}
		}
		if err := r.saveAll(models.NewDataset()); err != nil {
			return nil, err
		}
		log.Info("initialized empty json store", zap.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	default:
		if _, err := r.loadAll(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Repository) Close() error {
	return nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) loadAll() (*models.Dataset, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}

	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCorruptState, err)
	}
	if doc.Whiteboards == nil || doc.Contractors == nil {
		return nil, fmt.Errorf("%w: document must contain whiteboards and contractors", errs.ErrCorruptState)
	}

	dataset := &models.Dataset{Whiteboards: *doc.Whiteboards, Contractors: *doc.Contractors}
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return dataset, nil
}

// saveAll writes to a temp file and renames it over the target, so readers
// never observe a partial document and a failed write keeps the old one.
func (r *Repository) saveAll(dataset *models.Dataset) error {
	content, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding dataset: %v", errs.ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	return nil
}

// read runs fn against a freshly loaded dataset.
func (r *Repository) read(ctx context.Context, fn func(*models.Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, err := r.loadAll()
	if err != nil {
		return err
	}
	return fn(dataset)
}

// mutate loads, applies fn and writes back only when fn succeeds.
func (r *Repository) mutate(ctx context.Context, fn func(*models.Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dataset, err := r.loadAll()
	if err != nil {
		return err
	}
	if err := fn(dataset); err != nil {
		return err
	}
	return r.saveAll(dataset)
}

func (r *Repository) ListWhiteboards(ctx context.Context) ([]models.WhiteboardSummary, error) {
	var summaries []models.WhiteboardSummary
	err := r.read(ctx, func(dataset *models.Dataset) error {
		summaries = dataset.Summaries()
		return nil
	})
	return summaries, err
}

func (r *Repository) FindWhiteboard(ctx context.Context, id string) (*models.Whiteboard, error) {
	var found models.Whiteboard
	err := r.read(ctx, func(dataset *models.Dataset) error {
		whiteboard, ok := dataset.FindWhiteboard(id)
		if !ok {
			return errs.ErrWhiteboardNotFound
		}
		found = whiteboard.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *Repository) InsertChunk(ctx context.Context, chunk *models.Chunk) (*models.Chunk, error) {
	err := r.mutate(ctx, func(dataset *models.Dataset) error {
		return dataset.AppendChunk(*chunk)
	})
	if err != nil {
		return nil, err
	}
	created := *chunk
	return &created, nil
}

func (r *Repository) DeleteChunk(ctx context.Context, whiteboardID, chunkID string) error {
	return r.mutate(ctx, func(dataset *models.Dataset) error {
		return dataset.RemoveChunk(whiteboardID, chunkID)
	})
}

func (r *Repository) UpdateWhiteboardCompletion(ctx context.Context, id string, complete bool, contractor string) error {
	return r.mutate(ctx, func(dataset *models.Dataset) error {
		return dataset.SetComplete(id, complete, contractor)
	})
}

func (r *Repository) FindContractor(ctx context.Context, name string) (*models.Contractor, error) {
	var found *models.Contractor
	err := r.read(ctx, func(dataset *models.Dataset) error {
		if contractor, ok := dataset.FindContractor(name); ok {
			copied := *contractor
			found = &copied
		}
		return nil
	})
	return found, err
}

func (r *Repository) CreateContractorIfAbsent(ctx context.Context, name string, now time.Time) (*models.Contractor, bool, error) {
	var (
		contractor models.Contractor
		created    bool
	)
	// Only rewrite the file when a contractor was actually added.
	err := r.read(ctx, func(dataset *models.Dataset) error {
		contractor, created = dataset.EnsureContractor(name, now)
		if !created {
			return nil
		}
		return r.saveAll(dataset)
	})
	if err != nil {
		return nil, false, err
	}
	return &contractor, created, nil
}

func (r *Repository) ListExportRows(ctx context.Context) ([]models.ExportRow, error) {
	var rows []models.ExportRow
	err := r.read(ctx, func(dataset *models.Dataset) error {
		rows = dataset.ExportRows()
		return nil
	})
	return rows, err
}

func (r *Repository) ImportWhiteboards(ctx context.Context, whiteboards []models.Whiteboard) (int, error) {
	var imported int
	err := r.mutate(ctx, func(dataset *models.Dataset) error {
		imported = dataset.Import(whiteboards)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (r *Repository) ResetWhiteboards(ctx context.Context) error {
	return r.mutate(ctx, func(dataset *models.Dataset) error {
		dataset.Reset()
		return nil
	})
}
