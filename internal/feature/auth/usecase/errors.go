// Package usecase implements the token issuance logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUtilisateurNotFound is returned when no user has the given email.
	ErrUtilisateurNotFound = errors.New("Utilisateur non trouvé")

	// ErrUtilisateurAlreadyExists is returned when creating a user with an email already in use.
	ErrUtilisateurAlreadyExists = errors.New("Utilisateur déjà existant")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("Courriel ou mot de passe invalide")
)
