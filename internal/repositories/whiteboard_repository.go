package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

// WhiteboardRepository is the relational persistence adapter. Each
// operation runs as one gorm transaction.
type WhiteboardRepository struct {
	db *gorm.DB
}

func NewWhiteboardRepository(db *gorm.DB) *WhiteboardRepository {
	return &WhiteboardRepository{
		db: db,
	}
}

func (wr *WhiteboardRepository) Close() error {
	sqlDB, err := wr.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
}

// lockForUpdate adds FOR UPDATE where the dialect supports row locks.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (wr *WhiteboardRepository) ListWhiteboards(ctx context.Context) ([]models.WhiteboardSummary, error) {
	summaries := []models.WhiteboardSummary{}
	result := wr.db.WithContext(ctx).
		Table("whiteboards").
		Select("whiteboards.id, whiteboards.image_url, whiteboards.complete, whiteboards.contractor, COUNT(chunks.id) AS chunk_count").
		Joins("LEFT JOIN chunks ON chunks.whiteboard_id = whiteboards.id").
		Group("whiteboards.id, whiteboards.image_url, whiteboards.complete, whiteboards.contractor, whiteboards.position").
		Order("whiteboards.position ASC, whiteboards.id ASC").
		Scan(&summaries)
	if err := result.Error; err != nil {
		return nil, storageError(err)
	}
	return summaries, nil
}

func (wr *WhiteboardRepository) FindWhiteboard(ctx context.Context, id string) (*models.Whiteboard, error) {
	var whiteboard models.Whiteboard
	result := wr.db.WithContext(ctx).
		Preload("Chunks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&whiteboard)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWhiteboardNotFound
		}
		return nil, storageError(err)
	}
	if whiteboard.Chunks == nil {
		whiteboard.Chunks = []models.Chunk{}
	}
	return &whiteboard, nil
}

// InsertChunk appends the chunk after the current last position. The
// contractor counters are bumped in the same transaction; a contractor that
// does not exist is skipped.
func (wr *WhiteboardRepository) InsertChunk(ctx context.Context, chunk *models.Chunk) (*models.Chunk, error) {
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var whiteboard models.Whiteboard
		if err := lockForUpdate(tx).Where("id = ?", chunk.WhiteboardID).First(&whiteboard).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrWhiteboardNotFound
			}
			return err
		}

		var maxPosition int
		if err := tx.Model(&models.Chunk{}).
			Where("whiteboard_id = ?", chunk.WhiteboardID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		chunk.Position = maxPosition + 1

		result := tx.Create(chunk)
		if err := result.Error; err != nil {
			return err
		}
		if result.RowsAffected <= 0 {
			return errs.ErrStorageUnavailable
		}

		if chunk.Contractor == "" {
			return nil
		}
		if err := tx.Model(&models.Whiteboard{}).
			Where("id = ?", chunk.WhiteboardID).
			Update("contractor", chunk.Contractor).Error; err != nil {
			return err
		}
		return tx.Model(&models.Contractor{}).
			Where("name = ?", chunk.Contractor).
			Updates(map[string]interface{}{
				"processed":      gorm.Expr("processed + ?", 1),
				"last_processed": chunk.CreatedAt,
			}).Error
	})
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, err
		}
		return nil, storageError(err)
	}
	return chunk, nil
}

func (wr *WhiteboardRepository) DeleteChunk(ctx context.Context, whiteboardID, chunkID string) error {
	result := wr.db.WithContext(ctx).
		Where("id = ? AND whiteboard_id = ?", chunkID, whiteboardID).
		Delete(&models.Chunk{})
	if err := result.Error; err != nil {
		return storageError(err)
	}
	if result.RowsAffected == 0 {
		return errs.ErrWhiteboardOrChunkNotFound
	}
	return nil
}

func (wr *WhiteboardRepository) UpdateWhiteboardCompletion(ctx context.Context, id string, complete bool, contractor string) error {
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Whiteboard{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.ErrWhiteboardNotFound
		}

		updates := map[string]interface{}{"complete": complete}
		if contractor != "" {
			updates["contractor"] = contractor
		}
		return tx.Model(&models.Whiteboard{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil && !errs.IsNotFound(err) {
		return storageError(err)
	}
	return err
}

func (wr *WhiteboardRepository) ListExportRows(ctx context.Context) ([]models.ExportRow, error) {
	var chunks []models.Chunk
	result := wr.db.WithContext(ctx).
		Select("chunks.*").
		Joins("JOIN whiteboards ON whiteboards.id = chunks.whiteboard_id").
		Order("whiteboards.position ASC, whiteboards.id ASC, chunks.position ASC").
		Find(&chunks)
	if err := result.Error; err != nil {
		return nil, storageError(err)
	}

	rows := make([]models.ExportRow, 0, len(chunks))
	for _, chunk := range chunks {
		rows = append(rows, models.NewExportRow(chunk.WhiteboardID, chunk))
	}
	return rows, nil
}

// ImportWhiteboards inserts whiteboards whose id is new, after the current
// last position, and returns how many were inserted.
func (wr *WhiteboardRepository) ImportWhiteboards(ctx context.Context, whiteboards []models.Whiteboard) (int, error) {
	imported := 0
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&models.Whiteboard{}).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		for _, whiteboard := range whiteboards {
			record := models.Whiteboard{
				ID:       whiteboard.ID,
				ImageURL: whiteboard.ImageURL,
				Position: maxPosition + imported + 1,
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
			if err := result.Error; err != nil {
				return err
			}
			imported += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, storageError(err)
	}
	return imported, nil
}

func (wr *WhiteboardRepository) ResetWhiteboards(ctx context.Context) error {
	result := wr.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&models.Whiteboard{}).
		Updates(map[string]interface{}{"complete": false, "contractor": ""})
	return storageError(result.Error)
}
