package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/observability"
)

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d categoryDoc) toDomain() category.Category {
	return category.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type CategoriesRepo struct {
	coll *mongo.Collection
	observer
}

func NewCategoriesRepo(db *mongo.Database, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{
		coll:     db.Collection(categoriesCollection),
		observer: observer{prom: prom},
	}
}

func (r *CategoriesRepo) Create(ctx context.Context, c category.Category) (category.Category, error) {
	ts := now()
	doc := categoryDoc{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err := r.observe("categories.create", func() error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return category.Category{}, category.ErrNameDuplicate
		}
		return category.Category{}, err
	}
	return doc.toDomain(), nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (category.Category, error) {
	oid, ok := objectID(id)
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	return r.findOne(ctx, "categories.get_by_id", bson.M{"_id": oid}, options.FindOne())
}

func (r *CategoriesRepo) GetByName(ctx context.Context, name string) (category.Category, error) {
	return r.findOne(ctx, "categories.get_by_name", bson.M{"name": name}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	var docs []categoryDoc
	err := r.observe("categories.list", func() error {
		cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	out := make([]category.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, id string, p category.Patch) (category.Category, error) {
	oid, ok := objectID(id)
	if !ok {
		return category.Category{}, category.ErrNotFound
	}

	set := bson.M{"updatedAt": now()}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.IsActive != nil {
		set["isActive"] = *p.IsActive
	}

	var doc categoryDoc
	err := r.observe("categories.update", func() error {
		return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	})
	if err != nil {
		switch {
		case isNoDocuments(err):
			return category.Category{}, category.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return category.Category{}, category.ErrNameDuplicate
		}
		return category.Category{}, err
	}
	return doc.toDomain(), nil
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) (category.Category, error) {
	oid, ok := objectID(id)
	if !ok {
		return category.Category{}, category.ErrNotFound
	}

	var doc categoryDoc
	err := r.observe("categories.delete", func() error {
		return r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return doc.toDomain(), nil
}

func (r *CategoriesRepo) findOne(ctx context.Context, op string, filter bson.M, opts *options.FindOneOptions) (category.Category, error) {
	var doc categoryDoc
	err := r.observe(op, func() error {
		return r.coll.FindOne(ctx, filter, opts).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return doc.toDomain(), nil
}
