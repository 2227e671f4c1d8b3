package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pets-catalog/internal/adapters/storage/memory"
	"pets-catalog/internal/adapters/storage/storagetest"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
)

func TestMemory_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (kinds.Repository, pets.Repository) {
		s := memory.NewStore()
		return s.Kinds(), s.Pets()
	}, "00000000-0000-0000-0000-000000000000")
}

func TestMemory_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	k, err := s.Kinds().Create(ctx, kinds.Kind{Name: "fish"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Pets().Create(ctx, pets.Pet{Name: "nemo", KindID: k.ID})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	views, err := s.Pets().List(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 50)
}
