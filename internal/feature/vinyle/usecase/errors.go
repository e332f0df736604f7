// Package usecase implements the business logic for the vinyle feature.
package usecase

import "errors"

// ErrVinyleNotFound is returned when no record matches the requested id.
// Its message is exposed to clients as is.
var ErrVinyleNotFound = errors.New("Vinyle non trouvé")
