package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type value struct {
	n int
}

func TestConcurrentMissesShareOneBuild(t *testing.T) {
	cache := NewCache[value]()
	var builds atomic.Int32
	release := make(chan struct{})

	build := func(ctx context.Context) (*value, error) {
		builds.Add(1)
		<-release
		return &value{n: 1}, nil
	}

	var wg sync.WaitGroup
	results := make([]*value, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.GetOrBuild(context.Background(), build)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, 1, v.n)
	}
}

func TestHitDoesNotRebuild(t *testing.T) {
	cache := NewCache[value]()
	var builds int
	build := func(ctx context.Context) (*value, error) {
		builds++
		return &value{n: builds}, nil
	}

	first, err := cache.GetOrBuild(context.Background(), build)
	require.NoError(t, err)
	second, err := cache.GetOrBuild(context.Background(), build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestNilAndErrorsAreNotCached(t *testing.T) {
	cache := NewCache[value]()

	v, err := cache.GetOrBuild(context.Background(), func(ctx context.Context) (*value, error) {
		return nil, nil
	})
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = cache.GetOrBuild(context.Background(), func(ctx context.Context) (*value, error) {
		return nil, errors.New("remote down")
	})
	assert.Error(t, err)

	_, ok := cache.Peek()
	assert.False(t, ok)
}

func TestEvictForcesRebuild(t *testing.T) {
	cache := NewCache[value]()
	n := 0
	build := func(ctx context.Context) (*value, error) {
		n++
		return &value{n: n}, nil
	}

	_, err := cache.GetOrBuild(context.Background(), build)
	require.NoError(t, err)
	cache.Evict()
	v, err := cache.GetOrBuild(context.Background(), build)
	require.NoError(t, err)

	assert.Equal(t, 2, v.n)
}

func TestBuildStartedBeforeEvictIsNotStored(t *testing.T) {
	cache := NewCache[value]()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan *value)
	go func() {
		v, _ := cache.GetOrBuild(context.Background(), func(ctx context.Context) (*value, error) {
			close(started)
			<-release
			return &value{n: 1}, nil
		})
		done <- v
	}()

	<-started
	cache.Evict()
	close(release)

	stale := <-done
	require.NotNil(t, stale)
	assert.Equal(t, 1, stale.n)

	_, ok := cache.Peek()
	assert.False(t, ok)
}

func TestPublishAfterEvictIsRefused(t *testing.T) {
	cache := NewCache[value]()
	generation := cache.currentGeneration()

	cache.Evict()

	assert.False(t, cache.publish(&value{n: 1}, generation))
	_, ok := cache.Peek()
	assert.False(t, ok)

	assert.True(t, cache.publish(&value{n: 2}, cache.currentGeneration()))
	v, ok := cache.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, v.n)
}
