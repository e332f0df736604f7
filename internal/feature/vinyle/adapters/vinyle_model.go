package adapters

import (
	"time"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
)

// SongModel is the JSON shape of a song inside the chansons column.
type SongModel struct {
	Nom   string   `json:"nom"`
	Duree *float64 `json:"duree,omitempty"`
}

// VinyleModel is the GORM model for the vinyles table.
// Songs and genres are embedded as JSON columns so the row keeps the document shape.
type VinyleModel struct {
	ID           string      `gorm:"primaryKey;size:36"`
	Titre        string      `gorm:"size:255;not null;index"`
	Artiste      string      `gorm:"size:255;not null;index"`
	Chansons     []SongModel `gorm:"serializer:json;type:text;not null"`
	Genres       []string    `gorm:"serializer:json;type:text;not null"`
	DateParution time.Time   `gorm:"not null"`
	PrixAchat    *float64
	Possession   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (VinyleModel) TableName() string {
	return "vinyles"
}

// ToEntity converts the GORM model to a domain entity.
func (m *VinyleModel) ToEntity() *entity.Vinyle {
	chansons := make([]entity.Song, 0, len(m.Chansons))
	for _, s := range m.Chansons {
		chansons = append(chansons, entity.Song{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(m.Genres))
	genres = append(genres, m.Genres...)

	return &entity.Vinyle{
		ID:           m.ID,
		Titre:        m.Titre,
		Artiste:      m.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: m.DateParution,
		PrixAchat:    m.PrixAchat,
		Possession:   m.Possession,
	}
}

// VinyleModelFromEntity converts a domain entity to a GORM model.
func VinyleModelFromEntity(v *entity.Vinyle) *VinyleModel {
	chansons := make([]SongModel, 0, len(v.Chansons))
	for _, s := range v.Chansons {
		chansons = append(chansons, SongModel{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(v.Genres))
	genres = append(genres, v.Genres...)

	return &VinyleModel{
		ID:           v.ID,
		Titre:        v.Titre,
		Artiste:      v.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: v.DateParution,
		PrixAchat:    v.PrixAchat,
		Possession:   v.Possession,
	}
}
