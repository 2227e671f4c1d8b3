package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pets-catalog/internal/domain/pets"
)

type petDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Age    int                `bson:"age"`
	Owner  string             `bson:"owner"`
	KindID primitive.ObjectID `bson:"kind_id"`
}

func (d petDoc) toPet() pets.Pet {
	return pets.Pet{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Age:    d.Age,
		Owner:  d.Owner,
		KindID: d.KindID.Hex(),
	}
}

type petRepo struct {
	s *Store
}

// List hace el "JOIN" en dos queries: pets ordenados + kinds por $in.
func (r *petRepo) List(ctx context.Context) ([]pets.View, error) {
	cur, err := r.s.petColl().Find(ctx, bson.M{}, byName)
	if err != nil {
		return nil, err
	}

	var docs []petDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []pets.View{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.KindID)
	}

	kcur, err := r.s.kindColl().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var kdocs []kindDoc
	if err := kcur.All(ctx, &kdocs); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]kindDoc, len(kdocs))
	for _, k := range kdocs {
		byID[k.ID] = k
	}

	out := make([]pets.View, 0, len(docs))
	for _, d := range docs {
		k, ok := byID[d.KindID]
		if !ok {
			continue
		}
		out = append(out, pets.View{
			Pet:      d.toPet(),
			KindName: k.Name,
			Food:     k.Food,
			Sound:    k.Sound,
		})
	}
	return out, nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	oid, ok := objectID(id)
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}

	var d petDoc
	if err := r.s.petColl().FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return d.toPet(), nil
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	kindID, err := r.kindRef(ctx, p.KindID)
	if err != nil {
		return pets.Pet{}, err
	}

	d := petDoc{ID: primitive.NewObjectID(), Name: p.Name, Age: p.Age, Owner: p.Owner, KindID: kindID}
	if _, err := r.s.petColl().InsertOne(ctx, d); err != nil {
		return pets.Pet{}, err
	}
	return d.toPet(), nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return pets.ErrNotFound
	}
	if _, err := r.GetByID(ctx, p.ID); err != nil {
		return err
	}
	kindID, err := r.kindRef(ctx, p.KindID)
	if err != nil {
		return err
	}

	res, err := r.s.petColl().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": p.Name, "age": p.Age, "owner": p.Owner, "kind_id": kindID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return pets.ErrNotFound
	}

	res, err := r.s.petColl().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// kindRef valida la "FK" kind_id.
func (r *petRepo) kindRef(ctx context.Context, kindID string) (primitive.ObjectID, error) {
	oid, ok := objectID(kindID)
	if !ok {
		return primitive.NilObjectID, pets.ErrUnknownKind
	}

	n, err := r.s.kindColl().CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if n == 0 {
		return primitive.NilObjectID, pets.ErrUnknownKind
	}
	return oid, nil
}
