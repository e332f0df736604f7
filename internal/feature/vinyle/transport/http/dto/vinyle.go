// Package dto defines data transfer objects for the vinyle HTTP API.
package dto

import (
	"vinyle_backend/internal/feature/vinyle/domain/entity"
)

// Song is the JSON representation of a track.
type Song struct {
	Nom   string   `json:"nom" validate:"required"`
	Duree *float64 `json:"duree,omitempty" validate:"omitempty,gte=0"`
}

// Vinyle is the JSON representation of a record, used both for request
// payloads and responses. Pointers distinguish absent fields from zero values.
type Vinyle struct {
	ID           string   `json:"id,omitempty"`
	Titre        string   `json:"titre" validate:"required"`
	Artiste      string   `json:"artiste" validate:"required"`
	Chansons     []Song   `json:"chansons" validate:"required,dive"`
	Genres       []string `json:"genres" validate:"required,dive,required"`
	DateParution *Date    `json:"date_parution" validate:"required"`
	PrixAchat    *float64 `json:"prix_achat,omitempty" validate:"omitempty,gte=0"`
	Possession   *bool    `json:"possession" validate:"required"`
}

// VinyleRequest is the body of POST and PUT requests.
type VinyleRequest struct {
	Vinyle *Vinyle `json:"vinyle"`
}

// VinyleResponse wraps a single record.
type VinyleResponse struct {
	Vinyle Vinyle `json:"vinyle"`
}

// VinyleListResponse wraps the records matching an artiste or titre lookup.
type VinyleListResponse struct {
	Vinyles []Vinyle `json:"vinyles"`
}

// AllVinylesResponse is the body of the list-all endpoint. The key name is
// part of the public contract consumed by the client application.
type AllVinylesResponse struct {
	Auteurs []Vinyle `json:"auteurs"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ToEntity converts a validated payload to a domain entity.
// It must only be called after validation, which guarantees the pointers are set.
func (v *Vinyle) ToEntity() entity.Vinyle {
	chansons := make([]entity.Song, 0, len(v.Chansons))
	for _, s := range v.Chansons {
		chansons = append(chansons, entity.Song{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(v.Genres))
	genres = append(genres, v.Genres...)

	return entity.Vinyle{
		ID:           v.ID,
		Titre:        v.Titre,
		Artiste:      v.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: v.DateParution.Time,
		PrixAchat:    v.PrixAchat,
		Possession:   *v.Possession,
	}
}

// FromEntity converts a domain entity to its JSON representation.
func FromEntity(e *entity.Vinyle) Vinyle {
	chansons := make([]Song, 0, len(e.Chansons))
	for _, s := range e.Chansons {
		chansons = append(chansons, Song{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(e.Genres))
	genres = append(genres, e.Genres...)
	date := Date{Time: e.DateParution}
	possession := e.Possession

	return Vinyle{
		ID:           e.ID,
		Titre:        e.Titre,
		Artiste:      e.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: &date,
		PrixAchat:    e.PrixAchat,
		Possession:   &possession,
	}
}

// FromEntities converts a list of entities, never returning nil.
func FromEntities(es []entity.Vinyle) []Vinyle {
	out := make([]Vinyle, 0, len(es))
	for i := range es {
		out = append(out, FromEntity(&es[i]))
	}
	return out
}
