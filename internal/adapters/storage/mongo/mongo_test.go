package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"pets-catalog/internal/adapters/storage/storagetest"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

func TestMongo_Contract(t *testing.T) {
	uri := os.Getenv("PETS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PETS_TEST_MONGO_URI not set")
	}

	storagetest.Run(t, func(t *testing.T) (kinds.Repository, pets.Repository) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// una base por subtest para que no se pisen
		s, err := Connect(ctx, Config{AppName: "pets-catalog-test", URI: uri, DBName: "pets_test_" + uuid.NewString()[:8]})
		require.NoError(t, err)
		require.NoError(t, s.Ping(ctx))

		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = s.db.Drop(ctx)
			_ = s.Close(ctx)
		})
		return s.Kinds(), s.Pets()
	}, "5f0000000000000000000000")
}

func TestObjectID(t *testing.T) {
	_, ok := objectID("not-an-id")
	require.False(t, ok)

	oid, ok := objectID("5f0000000000000000000001")
	require.True(t, ok)
	require.Equal(t, "5f0000000000000000000001", oid.Hex())
}
