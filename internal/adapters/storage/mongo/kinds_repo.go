package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pets-catalog/internal/domain/kinds"
)

type kindDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Food  string             `bson:"food"`
	Sound string             `bson:"sound"`
}

func (d kindDoc) toKind() kinds.Kind {
	return kinds.Kind{
		ID:    d.ID.Hex(),
		Name:  d.Name,
		Food:  d.Food,
		Sound: d.Sound,
	}
}

type kindRepo struct {
	s *Store
}

var byName = options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

func (r *kindRepo) List(ctx context.Context) ([]kinds.Kind, error) {
	cur, err := r.s.kindColl().Find(ctx, bson.M{}, byName)
	if err != nil {
		return nil, err
	}

	var docs []kindDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]kinds.Kind, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toKind())
	}
	return out, nil
}

func (r *kindRepo) GetByID(ctx context.Context, id string) (kinds.Kind, error) {
	oid, ok := objectID(id)
	if !ok {
		return kinds.Kind{}, kinds.ErrNotFound
	}

	var d kindDoc
	if err := r.s.kindColl().FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return kinds.Kind{}, kinds.ErrNotFound
		}
		return kinds.Kind{}, err
	}
	return d.toKind(), nil
}

func (r *kindRepo) Create(ctx context.Context, k kinds.Kind) (kinds.Kind, error) {
	d := kindDoc{ID: primitive.NewObjectID(), Name: k.Name, Food: k.Food, Sound: k.Sound}
	if _, err := r.s.kindColl().InsertOne(ctx, d); err != nil {
		return kinds.Kind{}, err
	}
	return d.toKind(), nil
}

func (r *kindRepo) Update(ctx context.Context, k kinds.Kind) error {
	oid, ok := objectID(k.ID)
	if !ok {
		return kinds.ErrNotFound
	}

	res, err := r.s.kindColl().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": k.Name, "food": k.Food, "sound": k.Sound}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return kinds.ErrNotFound
	}
	return nil
}

// Delete emula ON DELETE RESTRICT. Sin transacción: un pet insertado entre
// el count y el delete queda huérfano.
func (r *kindRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return kinds.ErrNotFound
	}

	n, err := r.s.petColl().CountDocuments(ctx, bson.M{"kind_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n > 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return kinds.ErrInUse
	}

	res, err := r.s.kindColl().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return kinds.ErrNotFound
	}
	return nil
}
