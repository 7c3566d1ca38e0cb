package settle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPendingQueue(t *testing.T) {
	q := newPendingQueue([]string{"a", "b", "c"})
	require.Equal(t, 3, q.len())

	for i, want := range []string{"a", "b", "c"} {
		it, ok := q.pop()
		require.True(t, ok)
		require.Equal(t, want, it.value)
		require.Equal(t, i, it.index)
		require.Equal(t, 2-i, q.len())
	}

	_, ok := q.pop()
	require.False(t, ok)
	require.Zero(t, q.len())

	// popped slots no longer reference their values
	for _, it := range q.items {
		require.Empty(t, it.value)
	}
}

func TestBoundedScheduler_CompletesEveryItemOnce(t *testing.T) {
	cfg, err := newConfig()
	require.NoError(t, err)

	op := Func(func(_ context.Context, s string) (int, error) { return len(s), nil })
	items := []string{"", "a", "bb", "ccc", "dddd"}

	for workers := 1; workers <= len(items); workers++ {
		s := newBoundedScheduler(items, op, newBatch("test", cfg))
		res := s.run(context.Background(), workers)

		require.Equal(t, len(items), s.completed(), "workers=%d", workers)
		require.Zero(t, s.pending.len())
		for i, o := range res {
			require.Equal(t, Ok(i), o, "workers=%d", workers)
		}
	}
}
