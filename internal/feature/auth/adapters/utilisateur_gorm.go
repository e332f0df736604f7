// Package adapters provides the user store implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vinyle_backend/internal/feature/auth/domain/entity"
	"vinyle_backend/internal/feature/auth/usecase"
)

// utilisateurGorm is a GORM implementation of the UtilisateurRepository interface.
type utilisateurGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure utilisateurGorm implements UtilisateurRepository.
var _ usecase.UtilisateurRepository = (*utilisateurGorm)(nil)

// NewUtilisateurGorm creates a new instance of utilisateurGorm.
func NewUtilisateurGorm(db *gorm.DB) *utilisateurGorm {
	return &utilisateurGorm{db: db}
}

// Create adds a user. The connection must be opened with TranslateError so
// that unique violations surface as gorm.ErrDuplicatedKey.
func (r *utilisateurGorm) Create(ctx context.Context, u *entity.Utilisateur) error {
	if u == nil {
		return errors.New("utilisateur is nil")
	}
	if err := r.db.WithContext(ctx).Create(UtilisateurModelFromEntity(u)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrUtilisateurAlreadyExists
		}
		return err
	}
	return nil
}

// FindByCourriel returns the user with the given email.
func (r *utilisateurGorm) FindByCourriel(ctx context.Context, courriel string) (*entity.Utilisateur, error) {
	var m UtilisateurModel
	if err := r.db.WithContext(ctx).Where("courriel = ?", courriel).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUtilisateurNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}
