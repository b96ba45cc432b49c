package sqlite

import (
	"context"
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zap-network/zapfoil/internal/core/domain"
)

type foilRepository struct {
	db *gorm.DB
}

// NewFoilRepository opens (and if needed creates) the sqlite database at the
// given path and returns a domain.FoilRepository backed by it.
func NewFoilRepository(dbPath string) (domain.FoilRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.Foil{}); err != nil {
		return nil, err
	}
	return &foilRepository{db}, nil
}

func (r *foilRepository) InsertBatch(ctx context.Context, foils []*domain.Foil) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, foil := range foils {
			if err := tx.Create(foil).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *foilRepository) GetAll(ctx context.Context) ([]*domain.Foil, error) {
	var foils []*domain.Foil
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&foils).Error; err != nil {
		return nil, err
	}
	return foils, nil
}

func (r *foilRepository) GetByBatch(ctx context.Context, batch int) ([]*domain.Foil, error) {
	var foils []*domain.Foil
	if err := r.db.WithContext(ctx).
		Where("batch = ?", batch).
		Order("id").
		Find(&foils).Error; err != nil {
		return nil, err
	}
	return foils, nil
}

func (r *foilRepository) GetByBatchRange(
	ctx context.Context, startBatch, endBatch int,
) ([]*domain.Foil, error) {
	var foils []*domain.Foil
	if err := r.db.WithContext(ctx).
		Where("batch BETWEEN ? AND ?", startBatch, endBatch).
		Order("batch").Order("id").
		Find(&foils).Error; err != nil {
		return nil, err
	}
	return foils, nil
}

func (r *foilRepository) GetFromBatch(
	ctx context.Context, startBatch int,
) ([]*domain.Foil, error) {
	var foils []*domain.Foil
	if err := r.db.WithContext(ctx).
		Where("batch >= ?", startBatch).
		Order("batch").Order("id").
		Find(&foils).Error; err != nil {
		return nil, err
	}
	return foils, nil
}

func (r *foilRepository) GetByTxID(ctx context.Context, txid string) (*domain.Foil, error) {
	var foil domain.Foil
	err := r.db.WithContext(ctx).
		Where("funding_txid = ?", txid).
		First(&foil).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFoilNotFound
	}
	if err != nil {
		return nil, err
	}
	return &foil, nil
}

func (r *foilRepository) NextBatchNumber(ctx context.Context, first int) (int, error) {
	batch := first
	for {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&domain.Foil{}).
			Where("batch = ?", batch).
			Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return batch, nil
		}
		batch++
	}
}

func (r *foilRepository) UpdateFoil(ctx context.Context, foil *domain.Foil) error {
	return r.db.WithContext(ctx).Save(foil).Error
}

func (r *foilRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Foil{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
