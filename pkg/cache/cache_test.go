package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoadMemoizes(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)

	calls := 0
	load := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	got, err := GetOrLoad(context.Background(), c, "key", []string{"tag"}, load)
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	got, err = GetOrLoad(context.Background(), c, "key", []string{"tag"}, load)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)

	calls := 0
	load := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, assert.AnError
		}
		return 42, nil
	}

	_, err := GetOrLoad(context.Background(), c, "key", nil, load)
	require.Error(t, err)

	got, err := GetOrLoad(context.Background(), c, "key", nil, load)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}

func TestEntriesExpire(t *testing.T) {
	c := New(NewMemoryStore(), 20*time.Millisecond)

	calls := 0
	load := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	_, err := GetOrLoad(context.Background(), c, "key", nil, load)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = GetOrLoad(context.Background(), c, "key", nil, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired entry should be reloaded")
}

func TestInvalidateDropsAllEntriesWithTag(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)

	loads := map[string]int{}
	loader := func(key string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			loads[key]++
			return key, nil
		}
	}

	_, err := GetOrLoad(context.Background(), c, "list", []string{"user-1"}, loader("list"))
	require.NoError(t, err)
	_, err = GetOrLoad(context.Background(), c, "detail", []string{"recipe-9", "user-1"}, loader("detail"))
	require.NoError(t, err)
	_, err = GetOrLoad(context.Background(), c, "other", []string{"user-2"}, loader("other"))
	require.NoError(t, err)

	c.Invalidate("user-1")

	_, _ = GetOrLoad(context.Background(), c, "list", []string{"user-1"}, loader("list"))
	_, _ = GetOrLoad(context.Background(), c, "detail", []string{"recipe-9", "user-1"}, loader("detail"))
	_, _ = GetOrLoad(context.Background(), c, "other", []string{"user-2"}, loader("other"))

	assert.Equal(t, 2, loads["list"])
	assert.Equal(t, 2, loads["detail"])
	assert.Equal(t, 1, loads["other"], "entries with unrelated tags survive")
}

func TestInvalidateByAnyTag(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)

	calls := 0
	load := func(ctx context.Context) (string, error) {
		calls++
		return "detail", nil
	}

	_, err := GetOrLoad(context.Background(), c, "detail", []string{"recipe-9", "user-1"}, load)
	require.NoError(t, err)

	c.Invalidate("recipe-9")

	_, err = GetOrLoad(context.Background(), c, "detail", []string{"recipe-9", "user-1"}, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNoopStoreNeverMemoizes(t *testing.T) {
	c := New(NewNoopStore(), time.Minute)

	calls := 0
	load := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		_, err := GetOrLoad(context.Background(), c, "key", []string{"tag"}, load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
