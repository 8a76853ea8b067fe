//go:build integration

package qr_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/qr"
	"asistencia/pkg/testutil/containers"
)

func TestRedisUsageStore_MarkUsed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	store := qr.NewRedisUsageStore(rc.Client)
	ctx := context.Background()

	used, err := store.MarkUsed(ctx, "abc123", time.Minute)
	require.NoError(t, err)
	assert.False(t, used)

	used, err = store.MarkUsed(ctx, "abc123", time.Minute)
	require.NoError(t, err)
	assert.True(t, used)

	used, err = store.MarkUsed(ctx, "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, used)
}

// Concurrent consumers of one token must resolve to a single winner.
func TestRedisUsageStore_SingleWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)
	store := qr.NewRedisUsageStore(rc.Client)
	ctx := context.Background()

	const goroutines = 32
	var wg sync.WaitGroup
	var winners atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			used, err := store.MarkUsed(ctx, "contested", time.Minute)
			if err == nil && !used {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
