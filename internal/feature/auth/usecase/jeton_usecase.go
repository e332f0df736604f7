package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vinyle_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters for a new password.
	minPasswordLength = 8

	// dummyHash is compared against when the user does not exist so that an
	// unknown email costs as much time as a wrong password.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UtilisateurRepository abstracts the persistence of users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UtilisateurRepository interface {
	// Create persists a new user. It returns ErrUtilisateurAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *entity.Utilisateur) error

	// FindByCourriel returns the user with the given email or ErrUtilisateurNotFound.
	FindByCourriel(ctx context.Context, courriel string) (*entity.Utilisateur, error)
}

// TokenGenerator signs tokens for an authenticated subject.
type TokenGenerator interface {
	GenerateToken(subject string) (string, error)
}

// JetonUsecase issues tokens to users presenting valid credentials.
type JetonUsecase struct {
	users     UtilisateurRepository
	generator TokenGenerator
	hashCost  int
}

// NewJetonUsecase creates a new JetonUsecase.
func NewJetonUsecase(users UtilisateurRepository, generator TokenGenerator) *JetonUsecase {
	return &JetonUsecase{users: users, generator: generator, hashCost: bcrypt.DefaultCost}
}

// GenerateToken checks the credentials and returns a signed token whose
// subject is the user's email. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (u *JetonUsecase) GenerateToken(ctx context.Context, courriel, motDePasse string) (string, error) {
	courriel = normalizeCourriel(courriel)

	user, err := u.users.FindByCourriel(ctx, courriel)
	if err != nil && !errors.Is(err, ErrUtilisateurNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.MotDePasse
	}
	// Always compare to keep the timing independent of the user's existence
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(motDePasse))
	if user == nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.generator.GenerateToken(user.Courriel)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Register creates a user with a bcrypt-hashed password.
// The HTTP API exposes no registration route; the seed command uses this.
func (u *JetonUsecase) Register(ctx context.Context, courriel, motDePasse string) error {
	courriel = normalizeCourriel(courriel)
	if courriel == "" {
		return errors.New("courriel is required")
	}
	if len(motDePasse) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(motDePasse), u.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.Create(ctx, &entity.Utilisateur{
		Courriel:   courriel,
		MotDePasse: string(hashed),
		CreatedAt:  time.Now(),
	})
}

func normalizeCourriel(courriel string) string {
	return strings.ToLower(strings.TrimSpace(courriel))
}
