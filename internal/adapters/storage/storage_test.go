package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/platform/logger"
)

func TestBackendFor(t *testing.T) {
	for dsn, want := range map[string]Backend{
		"":                            BackendMemory,
		"memory":                      BackendMemory,
		"sqlite:pets.db":              BackendSQL,
		"postgres://u@localhost/pets": BackendSQL,
		"mysql://u@tcp(h)/pets":       BackendSQL,
		"mongodb://localhost:27017":   BackendMongo,
		"mongodb+srv://cluster/x":     BackendMongo,
	} {
		got, err := BackendFor(dsn)
		require.NoError(t, err, dsn)
		assert.Equal(t, want, got, dsn)
	}

	_, err := BackendFor("redis://localhost")
	require.Error(t, err)
}

func TestOpen_SQLiteMigrateAndSeed(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Config{
		DSN:            "sqlite:" + filepath.Join(t.TempDir(), "pets.db"),
		ConnectTimeout: time.Second,
		Migrate:        true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })

	assert.Equal(t, BackendSQL, st.Backend)
	require.NotNil(t, st.SQL)

	ks, ps := kinds.NewService(st.Kinds), pets.NewService(st.Pets)
	require.NoError(t, Seed(ctx, ks, ps))

	kl, err := ks.List(ctx)
	require.NoError(t, err)
	require.Len(t, kl, 4)
	assert.Equal(t, []string{"cat", "dog", "fish", "hamster"}, []string{kl[0].Name, kl[1].Name, kl[2].Name, kl[3].Name})

	pl, err := ps.List(ctx)
	require.NoError(t, err)
	require.Len(t, pl, 4)
	assert.Equal(t, "casey", pl[0].Name)
	assert.Equal(t, "cat", pl[0].KindName)
	assert.Equal(t, "meow", pl[0].Sound)
}

func TestOpen_Memory(t *testing.T) {
	st, err := Open(context.Background(), Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, st.Backend)
	assert.Nil(t, st.SQL)
	require.NoError(t, st.Close(context.Background()))
}

func TestStores_Reset(t *testing.T) {
	ctx := context.Background()

	for name, dsn := range map[string]string{
		"memory": "",
		"sqlite": "sqlite:" + filepath.Join(t.TempDir(), "pets.db"),
	} {
		t.Run(name, func(t *testing.T) {
			st, err := Open(ctx, Config{DSN: dsn, ConnectTimeout: time.Second, Migrate: true}, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close(ctx) })

			ks, ps := kinds.NewService(st.Kinds), pets.NewService(st.Pets)
			require.NoError(t, Seed(ctx, ks, ps))
			require.NoError(t, st.Reset(ctx))

			kl, err := ks.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, kl)

			// después del reset se puede volver a sembrar
			require.NoError(t, Seed(ctx, ks, ps))
		})
	}
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := retry(context.Background(), time.Second, logger.Nop(), func(context.Context) error {
		calls++
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestOpen_SQLiteDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		DSN:            "sqlite:" + filepath.Join(t.TempDir(), "pets.db"),
		ConnectTimeout: time.Second,
		Migrate:        true,
	}

	st, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, kinds.NewService(st.Kinds), pets.NewService(st.Pets)))
	require.NoError(t, st.Close(ctx))

	st, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })

	kl, err := kinds.NewService(st.Kinds).List(ctx)
	require.NoError(t, err)
	assert.Len(t, kl, 4)

	pl, err := pets.NewService(st.Pets).List(ctx)
	require.NoError(t, err)
	require.Len(t, pl, 4)
	assert.Equal(t, "casey", pl[0].Name)
	assert.Equal(t, "cat", pl[0].KindName)
}
