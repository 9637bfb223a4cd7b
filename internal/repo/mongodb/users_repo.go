package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/observability"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	Role      string             `bson:"role"`
	Name      string             `bson:"name"`
	LastName  string             `bson:"lastName"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDoc) toDomain() user.User {
	return user.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         user.Role(d.Role),
		Name:         d.Name,
		LastName:     d.LastName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type UsersRepo struct {
	coll *mongo.Collection
	observer
}

func NewUsersRepo(db *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		coll:     db.Collection(usersCollection),
		observer: observer{prom: prom},
	}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	oid := primitive.NewObjectID()
	if u.ID != "" {
		parsed, ok := objectID(u.ID)
		if !ok {
			return user.User{}, user.ErrNotFound
		}
		oid = parsed
	}

	ts := now()
	doc := userDoc{
		ID:        oid,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		Name:      u.Name,
		LastName:  u.LastName,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	err := r.observe("users.create", func() error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailDuplicate
		}
		return user.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.findOne(ctx, "users.get_by_id", bson.M{"_id": oid}, options.FindOne())
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, "users.get_by_email", bson.M{"email": email}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *UsersRepo) FindByRole(ctx context.Context, role user.Role) (user.User, error) {
	return r.findOne(ctx, "users.find_by_role", bson.M{"role": string(role)}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// List leaves the password field out of the projection.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var docs []userDoc
	err := r.observe("users.list", func() error {
		cur, err := r.coll.Find(ctx, bson.M{}, options.Find().
			SetProjection(bson.M{"password": 0}).
			SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UsersRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	set := bson.M{"updatedAt": now()}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["password"] = *p.PasswordHash
	}
	if p.Role != nil {
		set["role"] = string(*p.Role)
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.LastName != nil {
		set["lastName"] = *p.LastName
	}

	var doc userDoc
	err := r.observe("users.update", func() error {
		return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	})
	if err != nil {
		switch {
		case isNoDocuments(err):
			return user.User{}, user.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return user.User{}, user.ErrEmailDuplicate
		}
		return user.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	var doc userDoc
	err := r.observe("users.delete", func() error {
		return r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) findOne(ctx context.Context, op string, filter bson.M, opts *options.FindOneOptions) (user.User, error) {
	var doc userDoc
	err := r.observe(op, func() error {
		return r.coll.FindOne(ctx, filter, opts).Decode(&doc)
	})
	if err != nil {
		if isNoDocuments(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return doc.toDomain(), nil
}
