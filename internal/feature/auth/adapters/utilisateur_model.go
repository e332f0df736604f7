package adapters

import (
	"time"

	"vinyle_backend/internal/feature/auth/domain/entity"
)

// UtilisateurModel is the GORM model for the utilisateurs table.
type UtilisateurModel struct {
	ID         uint      `gorm:"primaryKey"`
	Courriel   string    `gorm:"uniqueIndex;size:255;not null"`
	MotDePasse string    `gorm:"size:255;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM.
func (UtilisateurModel) TableName() string {
	return "utilisateurs"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UtilisateurModel) ToEntity() *entity.Utilisateur {
	return &entity.Utilisateur{
		Courriel:   m.Courriel,
		MotDePasse: m.MotDePasse,
		CreatedAt:  m.CreatedAt,
	}
}

// UtilisateurModelFromEntity converts a domain entity to a GORM model.
func UtilisateurModelFromEntity(u *entity.Utilisateur) *UtilisateurModel {
	return &UtilisateurModel{
		Courriel:   u.Courriel,
		MotDePasse: u.MotDePasse,
		CreatedAt:  u.CreatedAt,
	}
}
