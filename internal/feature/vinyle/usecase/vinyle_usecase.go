package usecase

import (
	"context"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
)

// VinyleRepository abstracts the record store holding vinyles.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type VinyleRepository interface {
	// GetAll returns every record, in store order.
	GetAll(ctx context.Context) ([]entity.Vinyle, error)

	// GetByID returns the record with the given id or ErrVinyleNotFound.
	GetByID(ctx context.Context, id string) (*entity.Vinyle, error)

	// GetByArtiste returns the records whose artiste equals name exactly.
	GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error)

	// GetByTitre returns the records whose titre equals title exactly.
	GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error)

	// Add persists a new record. The store assigns the id.
	Add(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error)

	// Update overwrites the record matching v.ID or returns ErrVinyleNotFound.
	Update(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error)

	// Delete removes the record with the given id and returns it,
	// or returns ErrVinyleNotFound.
	Delete(ctx context.Context, id string) (*entity.Vinyle, error)
}

// VinyleUsecase provides business logic for the vinyle collection.
type VinyleUsecase struct {
	repo VinyleRepository
}

// NewVinyleUsecase creates a new VinyleUsecase with the given repository.
func NewVinyleUsecase(repo VinyleRepository) *VinyleUsecase {
	return &VinyleUsecase{repo: repo}
}

// GetAll returns the whole collection.
func (u *VinyleUsecase) GetAll(ctx context.Context) ([]entity.Vinyle, error) {
	return u.repo.GetAll(ctx)
}

// GetByID returns a single record.
func (u *VinyleUsecase) GetByID(ctx context.Context, id string) (*entity.Vinyle, error) {
	if id == "" {
		return nil, ErrVinyleNotFound
	}
	return u.repo.GetByID(ctx, id)
}

// GetByArtiste returns the records of one artist.
func (u *VinyleUsecase) GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error) {
	return u.repo.GetByArtiste(ctx, name)
}

// GetByTitre returns the records with the given title.
func (u *VinyleUsecase) GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error) {
	return u.repo.GetByTitre(ctx, title)
}

// Add stores a new record. Any id supplied by the client is discarded.
func (u *VinyleUsecase) Add(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
	v.ID = ""
	v.Normalize()
	return u.repo.Add(ctx, &v)
}

// Update overwrites an existing record. A record without id cannot exist
// in the store, so it is reported as not found without a round trip.
func (u *VinyleUsecase) Update(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
	if v.ID == "" {
		return nil, ErrVinyleNotFound
	}
	v.Normalize()
	return u.repo.Update(ctx, &v)
}

// Delete removes a record and returns what was removed.
func (u *VinyleUsecase) Delete(ctx context.Context, id string) (*entity.Vinyle, error) {
	if id == "" {
		return nil, ErrVinyleNotFound
	}
	return u.repo.Delete(ctx, id)
}
