package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

const (
	kindCollection = "kind_collection"
	petCollection  = "pet_collection"
)

type Config struct {
	AppName string
	URI     string
	DBName  string
}

// Store agrupa las dos colecciones. Mongo no tiene FKs: la integridad
// pet.kind_id -> kind._id la chequea el adapter.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre el cliente; no hace ping (ver Ping).
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, db: client.Database(cfg.DBName)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop borra ambas colecciones (tests / seed --reset).
func (s *Store) Drop(ctx context.Context) error {
	if err := s.petColl().Drop(ctx); err != nil {
		return err
	}
	return s.kindColl().Drop(ctx)
}

func (s *Store) Kinds() kinds.Repository { return &kindRepo{s: s} }
func (s *Store) Pets() pets.Repository   { return &petRepo{s: s} }

func (s *Store) kindColl() *mongo.Collection { return s.db.Collection(kindCollection) }
func (s *Store) petColl() *mongo.Collection  { return s.db.Collection(petCollection) }

// objectID: un id que no es hex de 24 chars no existe.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
