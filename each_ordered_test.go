package settle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type report struct {
	value int
	err   error
}

func collect(reports *[]report) Feedback[int] {
	return func(v int, err error) { *reports = append(*reports, report{v, err}) }
}

func TestEachOrdered_LaterItemFinishesFirst(t *testing.T) {
	// 20 finishes before 10; 10 is still reported first
	first := make(chan struct{})
	op := Func(func(_ context.Context, v int) (int, error) {
		if v == 10 {
			<-first
			return v, nil
		}
		close(first)
		return v, nil
	})

	var reports []report
	res, err := EachOrdered(context.Background(), []int{10, 20}, op, collect(&reports))
	require.NoError(t, err)
	require.Equal(t, []report{{10, nil}, {20, nil}}, reports)
	require.Equal(t, []Outcome[int]{Ok(10), Ok(20)}, res)
}

func TestEachOrdered_DecreasingLatency(t *testing.T) {
	const n = 8
	var started atomic.Int32
	var finished sync.Map

	op := Func(func(_ context.Context, i int) (int, error) {
		started.Add(1)
		time.Sleep(time.Duration(n-i) * 5 * time.Millisecond)
		finished.Store(i, time.Now())
		return i * i, nil
	})

	var reports []report
	_, err := EachOrdered(context.Background(), seq(n), op, collect(&reports))
	require.NoError(t, err)
	require.Equal(t, int32(n), started.Load())

	require.Len(t, reports, n)
	for i, r := range reports {
		require.Equal(t, i*i, r.value)
		require.NoError(t, r.err)
	}

	// the last item finished well before the first one
	last, _ := finished.Load(n - 1)
	firstDone, _ := finished.Load(0)
	require.True(t, last.(time.Time).Before(firstDone.(time.Time)))
}

func TestEachOrdered_AllItemsStartAtOnce(t *testing.T) {
	const n = 20
	var in atomic.Int32
	all := make(chan struct{})

	op := Func(func(_ context.Context, i int) (int, error) {
		if in.Add(1) == n {
			close(all)
		}
		select {
		case <-all:
			return i, nil
		case <-time.After(2 * time.Second):
			return 0, errors.New("items were not started together")
		}
	})

	res, err := EachOrdered(context.Background(), seq(n), op, nil)
	require.NoError(t, err)
	require.Empty(t, Errors(res))
}

func TestEachOrdered_ReportsAreJustInTime(t *testing.T) {
	// item 0 is reported while item 1 is still running
	release := make(chan struct{})
	op := Func(func(_ context.Context, i int) (int, error) {
		if i == 1 {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
				return 0, errors.New("item 0 was not reported before item 1 finished")
			}
		}
		return i, nil
	})

	var reports []report
	fb := func(v int, err error) {
		reports = append(reports, report{v, err})
		if v == 0 {
			close(release)
		}
	}

	res, err := EachOrdered(context.Background(), []int{0, 1}, op, fb)
	require.NoError(t, err)
	require.Empty(t, Errors(res))
	require.Equal(t, []report{{0, nil}, {1, nil}}, reports)
}

func TestEachOrdered_ErrorsReachFeedback(t *testing.T) {
	boom := errors.New("boom")
	op := Func(func(_ context.Context, i int) (int, error) {
		switch i {
		case 1:
			return 0, boom
		case 3:
			panic(fmt.Sprintf("bad item %d", i))
		}
		return i, nil
	})

	var reports []report
	res, err := EachOrdered(context.Background(), seq(5), op, collect(&reports))
	require.NoError(t, err)
	require.Len(t, reports, 5)

	for i, r := range reports {
		switch i {
		case 1:
			require.ErrorIs(t, r.err, boom)
		case 3:
			require.ErrorIs(t, r.err, ErrTaskPanicked)
		default:
			require.NoError(t, r.err)
			require.Equal(t, i, r.value)
		}
	}
	require.Len(t, Errors(res), 2)
}

func TestEachOrdered_NilOp(t *testing.T) {
	var reports []report
	res, err := EachOrdered[int, int](context.Background(), seq(3), nil, collect(&reports))
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for _, r := range reports {
		require.ErrorIs(t, r.err, ErrNotInvocable)
	}
	require.Len(t, Errors(res), 3)
}

func TestEachOrdered_NilFeedbackAndEmpty(t *testing.T) {
	res, err := EachOrdered(context.Background(), seq(3), Func(identity), nil)
	require.NoError(t, err)
	require.Equal(t, []Outcome[int]{Ok(0), Ok(1), Ok(2)}, res)

	var calls int
	res, err = EachOrdered(context.Background(), nil, Func(identity), func(int, error) { calls++ })
	require.NoError(t, err)
	require.Empty(t, res)
	require.Zero(t, calls)
}

func TestEachOrdered_InvalidOption(t *testing.T) {
	var calls atomic.Int32
	op := Func(func(_ context.Context, i int) (int, error) { calls.Add(1); return i, nil })

	res, err := EachOrdered(context.Background(), seq(3), op, nil, WithRateLimit(-1, 1))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Nil(t, res)
	require.Zero(t, calls.Load())
}

func TestEachOrdered_ErrorTagging(t *testing.T) {
	op := Func(func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, errors.New("e2")
		}
		return i, nil
	})

	var reports []report
	_, err := EachOrdered(context.Background(), seq(3), op, collect(&reports), WithErrorTagging())
	require.NoError(t, err)

	idx, ok := ExtractTaskIndex(reports[2].err)
	require.True(t, ok)
	require.Equal(t, 2, idx)
}
