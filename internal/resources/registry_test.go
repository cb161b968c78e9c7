package resources

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LoadsOnce(t *testing.T) {
	r := NewRegistry(nil)
	var calls atomic.Int32
	r.Register(KindTagger, func(context.Context) (any, error) {
		calls.Add(1)
		return "tagger", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.Get(context.Background(), KindTagger)
			assert.NoError(t, err)
			assert.Equal(t, "tagger", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_MemoizesFailure(t *testing.T) {
	r := NewRegistry(nil)
	var calls int
	r.Register(KindEmbedder, func(context.Context) (any, error) {
		calls++
		return nil, errors.New("no api key")
	})

	for i := 0; i < 3; i++ {
		_, err := r.Get(context.Background(), KindEmbedder)
		var ue *UnavailableError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, KindEmbedder, ue.Kind)
		assert.EqualError(t, ue.Cause, "no api key")
	}
	assert.Equal(t, 1, calls)

	r.Reset(KindEmbedder)
	_, err := r.Get(context.Background(), KindEmbedder)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRegistry_Unregistered(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Get(context.Background(), KindVectorizer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no loader registered")
}

func TestRegistry_SetAndGeneric(t *testing.T) {
	r := NewRegistry(nil)
	r.Set(KindTagger, 42)

	n, err := Get[int](context.Background(), r, KindTagger)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Get[string](context.Background(), r, KindTagger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has type int")
}
