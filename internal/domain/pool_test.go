package domain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// regexp2 keeps a shared clock goroutine alive for a while after timed matches.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("github.com/dlclark/regexp2.runClock"))
}

func collectOutcomes[T, R any](ch <-chan Outcome[T, R]) []Outcome[T, R] {
	var outcomes []Outcome[T, R]
	for outcome := range ch {
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func TestSubmit_ReturnsValue(t *testing.T) {
	future := Submit(context.Background(), time.Second, func(context.Context) (int, error) {
		return 42, nil
	})

	value, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	select {
	case <-future.Done():
	default:
		t.Fatal("future not done after Wait")
	}
}

func TestSubmit_TimesOut(t *testing.T) {
	future := Submit(context.Background(), 20*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 1, ctx.Err()
	})

	value, err := future.Wait()
	require.ErrorIs(t, err, ErrTaskTimeout)
	assert.Zero(t, value)
}

func TestRunPool_ProcessesEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	var active, peak atomic.Int32

	outcomes := collectOutcomes(RunPool(context.Background(), items, PoolOptions{Workers: 3, Timeout: time.Second},
		func(_ context.Context, item int) (int, error) {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)
			active.Add(-1)

			return item * item, nil
		}))

	require.Len(t, outcomes, len(items))
	assert.LessOrEqual(t, peak.Load(), int32(3))

	sum := 0
	for _, outcome := range outcomes {
		require.NoError(t, outcome.Err)
		assert.Equal(t, outcome.Item*outcome.Item, outcome.Value)
		sum += outcome.Item
	}

	assert.Equal(t, 55, sum)
}

func TestRunPool_TimeoutAndErrorsAreReportedPerItem(t *testing.T) {
	boom := errors.New("boom")

	outcomes := collectOutcomes(RunPool(context.Background(), []string{"ok", "slow", "fail"},
		PoolOptions{Workers: 3, Timeout: 30 * time.Millisecond},
		func(ctx context.Context, item string) (string, error) {
			switch item {
			case "slow":
				<-ctx.Done()
				return "", ctx.Err()
			case "fail":
				return "", boom
			default:
				return item, nil
			}
		}))

	require.Len(t, outcomes, 3)

	byItem := map[string]Outcome[string, string]{}
	for _, outcome := range outcomes {
		byItem[outcome.Item] = outcome
	}

	assert.NoError(t, byItem["ok"].Err)
	assert.Equal(t, "ok", byItem["ok"].Value)
	assert.ErrorIs(t, byItem["slow"].Err, ErrTaskTimeout)
	assert.ErrorIs(t, byItem["fail"].Err, boom)
}

func TestRunPool_CancelledContextStartsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var started atomic.Int32

	outcomes := collectOutcomes(RunPool(ctx, []int{1, 2, 3}, PoolOptions{Workers: 1},
		func(context.Context, int) (int, error) {
			started.Add(1)
			return 0, nil
		}))

	assert.Empty(t, outcomes)
	assert.Zero(t, started.Load())
}

func TestRunPool_NoItems(t *testing.T) {
	outcomes := collectOutcomes(RunPool(context.Background(), []int(nil), PoolOptions{},
		func(context.Context, int) (int, error) { return 0, nil }))

	assert.Empty(t, outcomes)
}
