// Package adapters provides record store implementations for the vinyle feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
	"vinyle_backend/internal/feature/vinyle/usecase"
)

// updatableColumns lists every domain column overwritten by Update.
var updatableColumns = []string{
	"titre", "artiste", "chansons", "genres", "date_parution", "prix_achat", "possession", "updated_at",
}

// vinyleGorm is a GORM implementation of the VinyleRepository interface.
// It works on any SQL dialect GORM supports (PostgreSQL in production, SQLite locally and in tests).
type vinyleGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure vinyleGorm implements VinyleRepository.
var _ usecase.VinyleRepository = (*vinyleGorm)(nil)

// NewVinyleGorm creates a new instance of vinyleGorm.
func NewVinyleGorm(db *gorm.DB) *vinyleGorm {
	return &vinyleGorm{db: db}
}

// GetAll returns every record ordered by creation time.
func (r *vinyleGorm) GetAll(ctx context.Context) ([]entity.Vinyle, error) {
	return r.find(r.db.WithContext(ctx))
}

// GetByID returns the record with the given id.
func (r *vinyleGorm) GetByID(ctx context.Context, id string) (*entity.Vinyle, error) {
	var m VinyleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrVinyleNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// GetByArtiste returns the records whose artiste matches exactly.
func (r *vinyleGorm) GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error) {
	return r.find(r.db.WithContext(ctx).Where("artiste = ?", name))
}

// GetByTitre returns the records whose titre matches exactly.
func (r *vinyleGorm) GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error) {
	return r.find(r.db.WithContext(ctx).Where("titre = ?", title))
}

// Add inserts a new record under a freshly generated UUID.
func (r *vinyleGorm) Add(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	m := VinyleModelFromEntity(v)
	m.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to insert vinyle: %w", err)
	}
	return m.ToEntity(), nil
}

// Update overwrites the record matching v.ID in a single conditional UPDATE.
// No matching row means the record does not exist.
func (r *vinyleGorm) Update(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	m := VinyleModelFromEntity(v)
	m.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&VinyleModel{}).
		Where("id = ?", v.ID).
		Select(updatableColumns).
		Updates(m)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update vinyle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrVinyleNotFound
	}
	return r.GetByID(ctx, v.ID)
}

// Delete removes the record with the given id and returns it.
func (r *vinyleGorm) Delete(ctx context.Context, id string) (*entity.Vinyle, error) {
	var removed VinyleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&removed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrVinyleNotFound
			}
			return err
		}
		result := tx.Delete(&VinyleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		// Removed concurrently between the read and the delete
		if result.RowsAffected == 0 {
			return usecase.ErrVinyleNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed.ToEntity(), nil
}

func (r *vinyleGorm) find(q *gorm.DB) ([]entity.Vinyle, error) {
	var rows []VinyleModel
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Vinyle, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}
