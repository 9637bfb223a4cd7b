package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/observability"
)

type newsDoc struct {
	ID              primitive.ObjectID `bson:"_id"`
	Title           string             `bson:"title"`
	Slug            string             `bson:"slug"`
	Summary         string             `bson:"summary"`
	Content         string             `bson:"content"`
	Highlights      []string           `bson:"highlights"`
	Author          primitive.ObjectID `bson:"author"`
	Category        primitive.ObjectID `bson:"category"`
	MainImage       string             `bson:"mainImage,omitempty"`
	Source          string             `bson:"source,omitempty"`
	Variant         string             `bson:"variant"`
	Status          string             `bson:"status"`
	PublicationDate *time.Time         `bson:"publicationDate"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d newsDoc) toDomain() news.News {
	highlights := d.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return news.News{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Slug:            d.Slug,
		Summary:         d.Summary,
		Content:         d.Content,
		Highlights:      highlights,
		AuthorID:        d.Author.Hex(),
		CategoryID:      d.Category.Hex(),
		MainImage:       d.MainImage,
		Source:          d.Source,
		Variant:         news.Variant(d.Variant),
		Status:          news.Status(d.Status),
		PublicationDate: d.PublicationDate,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type NewsRepo struct {
	coll *mongo.Collection
	observer
}

func NewNewsRepo(db *mongo.Database, prom *observability.Prom) *NewsRepo {
	return &NewsRepo{
		coll:     db.Collection(newsCollection),
		observer: observer{prom: prom},
	}
}

func (r *NewsRepo) Create(ctx context.Context, n news.News) (news.News, error) {
	author, ok := objectID(n.AuthorID)
	if !ok {
		return news.News{}, news.ErrNotFound
	}
	cat, ok := objectID(n.CategoryID)
	if !ok {
		return news.News{}, news.ErrUnknownCategory
	}

	ts := now()
	doc := newsDoc{
		ID:              primitive.NewObjectID(),
		Title:           n.Title,
		Slug:            n.Slug,
		Summary:         n.Summary,
		Content:         n.Content,
		Highlights:      n.Highlights,
		Author:          author,
		Category:        cat,
		MainImage:       n.MainImage,
		Source:          n.Source,
		Variant:         string(n.Variant),
		Status:          string(n.Status),
		PublicationDate: n.PublicationDate,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}

	err := r.observe("news.create", func() error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return news.News{}, news.ErrSlugDuplicate
		}
		return news.News{}, err
	}
	return doc.toDomain(), nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id string) (news.News, error) {
	oid, ok := objectID(id)
	if !ok {
		return news.News{}, news.ErrNotFound
	}

	var doc newsDoc
	err := r.observe("news.get_by_id", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return news.News{}, news.ErrNotFound
		}
		return news.News{}, err
	}
	return doc.toDomain(), nil
}

func (r *NewsRepo) GetBySlug(ctx context.Context, slug string) (news.News, error) {
	var doc newsDoc
	err := r.observe("news.get_by_slug", func() error {
		return r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return news.News{}, news.ErrNotFound
		}
		return news.News{}, err
	}
	return doc.toDomain(), nil
}

func (r *NewsRepo) List(ctx context.Context, f news.ListFilter) ([]news.News, error) {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = string(*f.Status)
	}
	if f.AuthorID != nil {
		author, ok := objectID(*f.AuthorID)
		if !ok {
			return []news.News{}, nil
		}
		filter["author"] = author
	}
	return r.find(ctx, "news.list", filter)
}

func (r *NewsRepo) ListByCategory(ctx context.Context, categoryID string) ([]news.News, error) {
	cat, ok := objectID(categoryID)
	if !ok {
		return []news.News{}, nil
	}
	return r.find(ctx, "news.list_by_category", bson.M{"category": cat})
}

func (r *NewsRepo) Update(ctx context.Context, id string, p news.Patch) (news.News, error) {
	oid, ok := objectID(id)
	if !ok {
		return news.News{}, news.ErrNotFound
	}

	set := bson.M{"updatedAt": now()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.Summary != nil {
		set["summary"] = *p.Summary
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Highlights != nil {
		set["highlights"] = *p.Highlights
	}
	if p.CategoryID != nil {
		cat, ok := objectID(*p.CategoryID)
		if !ok {
			return news.News{}, news.ErrUnknownCategory
		}
		set["category"] = cat
	}
	if p.MainImage != nil {
		set["mainImage"] = *p.MainImage
	}
	if p.Source != nil {
		set["source"] = *p.Source
	}
	if p.Variant != nil {
		set["variant"] = string(*p.Variant)
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.PublicationDate != nil {
		set["publicationDate"] = *p.PublicationDate
	}

	var doc newsDoc
	err := r.observe("news.update", func() error {
		return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	})
	if err != nil {
		switch {
		case isNoDocuments(err):
			return news.News{}, news.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return news.News{}, news.ErrSlugDuplicate
		}
		return news.News{}, err
	}
	return doc.toDomain(), nil
}

func (r *NewsRepo) Delete(ctx context.Context, id string) (news.News, error) {
	oid, ok := objectID(id)
	if !ok {
		return news.News{}, news.ErrNotFound
	}

	var doc newsDoc
	err := r.observe("news.delete", func() error {
		return r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return news.News{}, news.ErrNotFound
		}
		return news.News{}, err
	}
	return doc.toDomain(), nil
}

func (r *NewsRepo) find(ctx context.Context, op string, filter bson.M) ([]news.News, error) {
	var docs []newsDoc
	err := r.observe(op, func() error {
		cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	out := make([]news.News, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
