package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"whiteboardLabeler/internal/models"
)

func (wr *WhiteboardRepository) FindContractor(ctx context.Context, name string) (*models.Contractor, error) {
	var contractor models.Contractor
	result := wr.db.WithContext(ctx).Where("name = ?", name).First(&contractor)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &contractor, nil
}

// CreateContractorIfAbsent inserts the contractor unless the name is taken.
// The conflict clause keeps two concurrent logins from creating duplicates.
func (wr *WhiteboardRepository) CreateContractorIfAbsent(ctx context.Context, name string, now time.Time) (*models.Contractor, bool, error) {
	var (
		contractor models.Contractor
		created    bool
	)
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contractor = models.Contractor{Name: name, Processed: 0, LastProcessed: now}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&contractor)
		if err := result.Error; err != nil {
			return err
		}
		if result.RowsAffected > 0 {
			created = true
			return nil
		}
		return tx.Where("name = ?", name).First(&contractor).Error
	})
	if err != nil {
		return nil, false, storageError(err)
	}
	return &contractor, created, nil
}
