package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
	"vinyle_backend/internal/feature/vinyle/usecase"
)

// VinyleCollection is the name of the MongoDB collection holding vinyles.
const VinyleCollection = "vinyles"

type songDocument struct {
	Nom   string   `bson:"nom"`
	Duree *float64 `bson:"duree,omitempty"`
}

// vinyleDocument is the BSON shape of a vinyle. Songs are embedded.
type vinyleDocument struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	Titre        string         `bson:"titre"`
	Artiste      string         `bson:"artiste"`
	Chansons     []songDocument `bson:"chansons"`
	Genres       []string       `bson:"genres"`
	DateParution time.Time      `bson:"date_parution"`
	PrixAchat    *float64       `bson:"prix_achat,omitempty"`
	Possession   bool           `bson:"possession"`
}

func (d *vinyleDocument) toEntity() *entity.Vinyle {
	chansons := make([]entity.Song, 0, len(d.Chansons))
	for _, s := range d.Chansons {
		chansons = append(chansons, entity.Song{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(d.Genres))
	genres = append(genres, d.Genres...)

	return &entity.Vinyle{
		ID:           d.ID.Hex(),
		Titre:        d.Titre,
		Artiste:      d.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: d.DateParution.UTC(),
		PrixAchat:    d.PrixAchat,
		Possession:   d.Possession,
	}
}

func vinyleDocumentFromEntity(id bson.ObjectID, v *entity.Vinyle) *vinyleDocument {
	chansons := make([]songDocument, 0, len(v.Chansons))
	for _, s := range v.Chansons {
		chansons = append(chansons, songDocument{Nom: s.Nom, Duree: s.Duree})
	}
	genres := make([]string, 0, len(v.Genres))
	genres = append(genres, v.Genres...)

	return &vinyleDocument{
		ID:           id,
		Titre:        v.Titre,
		Artiste:      v.Artiste,
		Chansons:     chansons,
		Genres:       genres,
		DateParution: v.DateParution,
		PrixAchat:    v.PrixAchat,
		Possession:   v.Possession,
	}
}

// vinyleMongo is a MongoDB implementation of the VinyleRepository interface.
// Update and Delete use single find-and-modify commands, so the existence
// check and the mutation cannot be interleaved with another request.
type vinyleMongo struct {
	coll *mongo.Collection
}

var _ usecase.VinyleRepository = (*vinyleMongo)(nil)

// NewVinyleMongo creates a repository over the vinyles collection of db.
func NewVinyleMongo(db *mongo.Database) *vinyleMongo {
	return &vinyleMongo{coll: db.Collection(VinyleCollection)}
}

// EnsureIndexes creates the lookup indexes used by GetByArtiste and GetByTitre.
func (r *vinyleMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "artiste", Value: 1}}},
		{Keys: bson.D{{Key: "titre", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create vinyle indexes: %w", err)
	}
	return nil
}

// GetAll returns every document in natural order.
func (r *vinyleMongo) GetAll(ctx context.Context) ([]entity.Vinyle, error) {
	return r.find(ctx, bson.D{})
}

// GetByID returns the document with the given ObjectID hex string.
func (r *vinyleMongo) GetByID(ctx context.Context, id string) (*entity.Vinyle, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc vinyleDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return doc.toEntity(), nil
}

// GetByArtiste returns the documents whose artiste matches exactly.
func (r *vinyleMongo) GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error) {
	return r.find(ctx, bson.D{{Key: "artiste", Value: name}})
}

// GetByTitre returns the documents whose titre matches exactly.
func (r *vinyleMongo) GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error) {
	return r.find(ctx, bson.D{{Key: "titre", Value: title}})
}

// Add inserts a new document under a fresh ObjectID.
func (r *vinyleMongo) Add(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	doc := vinyleDocumentFromEntity(bson.NewObjectID(), v)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert vinyle: %w", err)
	}
	return doc.toEntity(), nil
}

// Update replaces the document matching v.ID and returns the new version.
func (r *vinyleMongo) Update(ctx context.Context, v *entity.Vinyle) (*entity.Vinyle, error) {
	oid, err := parseObjectID(v.ID)
	if err != nil {
		return nil, err
	}
	doc := vinyleDocumentFromEntity(oid, v)

	var updated vinyleDocument
	err = r.coll.FindOneAndReplace(ctx,
		bson.D{{Key: "_id", Value: oid}},
		doc,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return updated.toEntity(), nil
}

// Delete removes the document matching id and returns it.
func (r *vinyleMongo) Delete(ctx context.Context, id string) (*entity.Vinyle, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var removed vinyleDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&removed); err != nil {
		return nil, translateMongoError(err)
	}
	return removed.toEntity(), nil
}

func (r *vinyleMongo) find(ctx context.Context, filter bson.D) ([]entity.Vinyle, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query vinyles: %w", err)
	}
	var docs []vinyleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode vinyles: %w", err)
	}
	out := make([]entity.Vinyle, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

// parseObjectID maps ids that cannot exist in the collection to ErrVinyleNotFound.
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, usecase.ErrVinyleNotFound
	}
	return oid, nil
}

func translateMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return usecase.ErrVinyleNotFound
	}
	return err
}
