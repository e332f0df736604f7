package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vinyle_backend/internal/feature/auth/domain/entity"
	"vinyle_backend/internal/feature/auth/usecase"
)

// UtilisateurCollection is the name of the MongoDB collection holding users.
const UtilisateurCollection = "utilisateurs"

type utilisateurDocument struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Courriel   string        `bson:"courriel"`
	MotDePasse string        `bson:"motDePasse"`
	CreatedAt  time.Time     `bson:"createdAt"`
}

func (d *utilisateurDocument) toEntity() *entity.Utilisateur {
	return &entity.Utilisateur{
		Courriel:   d.Courriel,
		MotDePasse: d.MotDePasse,
		CreatedAt:  d.CreatedAt,
	}
}

func utilisateurDocumentFromEntity(id bson.ObjectID, u *entity.Utilisateur) *utilisateurDocument {
	return &utilisateurDocument{
		ID:         id,
		Courriel:   u.Courriel,
		MotDePasse: u.MotDePasse,
		CreatedAt:  u.CreatedAt,
	}
}

// utilisateurMongo is a MongoDB implementation of the UtilisateurRepository interface.
type utilisateurMongo struct {
	coll *mongo.Collection
}

var _ usecase.UtilisateurRepository = (*utilisateurMongo)(nil)

// NewUtilisateurMongo creates a repository over the utilisateurs collection of db.
func NewUtilisateurMongo(db *mongo.Database) *utilisateurMongo {
	return &utilisateurMongo{coll: db.Collection(UtilisateurCollection)}
}

// EnsureIndexes creates the unique index on courriel.
func (r *utilisateurMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "courriel", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create utilisateur index: %w", err)
	}
	return nil
}

// Create inserts a user, mapping duplicate key errors to ErrUtilisateurAlreadyExists.
func (r *utilisateurMongo) Create(ctx context.Context, u *entity.Utilisateur) error {
	if u == nil {
		return errors.New("utilisateur is nil")
	}
	if _, err := r.coll.InsertOne(ctx, utilisateurDocumentFromEntity(bson.NewObjectID(), u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUtilisateurAlreadyExists
		}
		return err
	}
	return nil
}

// FindByCourriel returns the user with the given email.
func (r *utilisateurMongo) FindByCourriel(ctx context.Context, courriel string) (*entity.Utilisateur, error) {
	var doc utilisateurDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "courriel", Value: courriel}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUtilisateurNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
