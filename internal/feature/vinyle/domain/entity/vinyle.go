// Package entity defines the domain models for the vinyle feature.
package entity

import "time"

// Song is a track embedded in a Vinyle. It has no lifecycle of its own.
type Song struct {
	Nom   string   // Track name
	Duree *float64 // Duration in seconds, nil when unknown
}

// Vinyle represents a record of the personal collection.
type Vinyle struct {
	ID           string    // Assigned by the store on creation, immutable afterwards
	Titre        string    // Album title
	Artiste      string    // Artist name
	Chansons     []Song    // Ordered track list, never nil
	Genres       []string  // Genres, never nil
	DateParution time.Time // Release date
	PrixAchat    *float64  // Purchase price, nil when unknown
	Possession   bool      // Whether the owner currently holds the physical record
}

// Normalize replaces nil collections with empty ones so that persisted
// records never carry a null track list or genre list.
func (v *Vinyle) Normalize() {
	if v.Chansons == nil {
		v.Chansons = []Song{}
	}
	if v.Genres == nil {
		v.Genres = []string{}
	}
}
