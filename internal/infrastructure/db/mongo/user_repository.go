package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

const defaultUsersCollection = "users"

// UserRepository implements ports.UserRepository on a MongoDB collection.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository binds the repository to collection, or "users" when empty.
func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	if collection == "" {
		collection = defaultUsersCollection
	}
	return &UserRepository{col: db.Collection(collection)}
}

// mongoUser is the stored document. Fields written by other producers are
// kept in Extra so they survive a read.
type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Password  any                `bson:"password"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
	Extra     bson.M             `bson:",inline"`
}

func (r *UserRepository) Find(ctx context.Context) ([]*domain.UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.UserRecord, 0, len(docs))
	for i := range docs {
		out = append(out, toRecord(&docs[i]))
	}
	return out, nil
}

func (r *UserRepository) Insert(ctx context.Context, rec *domain.UserRecord) (*domain.UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDocument(rec, time.Now().UTC())
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return toRecord(doc), nil
}

func (r *UserRepository) InsertMany(ctx context.Context, recs []*domain.UserRecord) ([]*domain.UserRecord, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]*mongoUser, len(recs))
	batch := make([]any, len(recs))
	for i, rec := range recs {
		docs[i] = toDocument(rec, now)
		batch[i] = docs[i]
	}

	res, err := r.col.InsertMany(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}

	out := make([]*domain.UserRecord, len(docs))
	for i, doc := range docs {
		if i < len(res.InsertedIDs) {
			doc.ID, _ = res.InsertedIDs[i].(primitive.ObjectID)
		}
		out[i] = toRecord(doc)
	}
	return out, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id string, patch ports.UserPatch) (*domain.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       patch.Name,
		"password":   patch.Password.Value(),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoUser
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return toRecord(&doc), nil
}

func (r *UserRepository) RemoveByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("remove user: %w", err)
	}
	return toRecord(&doc), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the lookup index on name. It is not unique.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}

func toDocument(rec *domain.UserRecord, now time.Time) *mongoUser {
	return &mongoUser{
		Name:      rec.Name,
		Password:  rec.Password.Value(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toRecord(doc *mongoUser) *domain.UserRecord {
	rec := &domain.UserRecord{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Password:  domain.PasswordFromValue(doc.Password),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if len(doc.Extra) > 0 {
		rec.Extra = make(map[string]any, len(doc.Extra))
		for k, v := range doc.Extra {
			rec.Extra[k] = v
		}
	}
	return rec
}
