package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

func TestToRecord_KeepsPasswordShapeAndExtras(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := &mongoUser{
		ID:       oid,
		Name:     "Rahul",
		Password: int32(123),
		Extra:    bson.M{"__v": int32(0)},
	}

	rec := toRecord(doc)

	assert.Equal(t, oid.Hex(), rec.ID)
	assert.Equal(t, domain.PasswordInteger, rec.Password.Kind())
	assert.Equal(t, int64(123), rec.Password.Value())
	assert.Equal(t, int32(0), rec.Extra["__v"])
}

func TestToDocument_StoresRawPassword(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	doc := toDocument(&domain.UserRecord{Name: "Al", Password: domain.TextPassword("1234")}, now)

	assert.True(t, doc.ID.IsZero())
	assert.Equal(t, "1234", doc.Password)
	assert.Equal(t, now, doc.CreatedAt)
}

func TestUserRepository_InvalidIDIsNotFound(t *testing.T) {
	repo := &UserRepository{}

	_, err := repo.UpdateByID(context.Background(), "not-an-object-id", ports.UserPatch{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.RemoveByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// TestUserRepository_Integration runs against a real server when MONGO_TEST_URI is set.
func TestUserRepository_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, db, err := Connect(ctx, Config{URI: uri, Database: "users_service_test_" + primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = Disconnect(client, 5*time.Second)
	})

	repo := NewUserRepository(db, "")
	require.NoError(t, repo.EnsureIndexes(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	seeded, err := repo.InsertMany(ctx, []*domain.UserRecord{
		{Name: "Shreyansh", Password: domain.TextPassword("1234")},
		{Name: "Rahul", Password: domain.IntegerPassword(123)},
	})
	require.NoError(t, err)
	require.Len(t, seeded, 2)

	_, err = db.Collection(defaultUsersCollection).UpdateOne(ctx,
		bson.M{"_id": mustObjectID(t, seeded[0].ID)},
		bson.M{"$set": bson.M{"__v": 0}})
	require.NoError(t, err)

	all, err := repo.Find(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Shreyansh", all[0].Name)
	assert.Contains(t, all[0].Extra, "__v")
	assert.Equal(t, int64(123), all[1].Password.Value())

	updated, err := repo.UpdateByID(ctx, seeded[1].ID, ports.UserPatch{Name: "Rahul K", Password: domain.NumberPassword(9.5)})
	require.NoError(t, err)
	assert.Equal(t, seeded[1].ID, updated.ID)
	assert.Equal(t, 9.5, updated.Password.Value())

	removed, err := repo.RemoveByID(ctx, seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahul K", removed.Name)

	_, err = repo.RemoveByID(ctx, seeded[1].ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return oid
}
