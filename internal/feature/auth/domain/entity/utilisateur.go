// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Utilisateur is a user allowed to request a token.
type Utilisateur struct {
	// Courriel is the email address identifying the user. It is unique.
	Courriel string

	// MotDePasse is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	MotDePasse string

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}
