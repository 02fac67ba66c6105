package workflow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mentorhub/core/roster"
)

var batchMsgs = Messages{
	Success: "Successfully assigned all batches!",
	Partial: "Successfully assigned %d batch(es)! Failed to assign: %s",
	Failure: "Failed to assign any batches. Please try again.",
}

func TestRunner_Batch(t *testing.T) {
	errBackend := errors.New("HTTP 500")

	tests := []struct {
		name          string
		classes       []string
		failIDs       map[int]bool
		wantOutcome   Outcome
		wantSucceeded int
		wantFailed    []string
		wantMsg       string
	}{
		{
			name:          "all assigned",
			classes:       []string{"A", "B", "C"},
			wantOutcome:   Success,
			wantSucceeded: 3,
			wantMsg:       "Successfully assigned all batches!",
		},
		{
			name:          "one unknown class",
			classes:       []string{"A", "X", "C"},
			wantOutcome:   Partial,
			wantSucceeded: 2,
			wantFailed:    []string{"X"},
			wantMsg:       "Successfully assigned 2 batch(es)! Failed to assign: X",
		},
		{
			name:          "backend rejects one",
			classes:       []string{"A", "B", "C"},
			failIDs:       map[int]bool{2: true},
			wantOutcome:   Partial,
			wantSucceeded: 2,
			wantFailed:    []string{"B"},
			wantMsg:       "Successfully assigned 2 batch(es)! Failed to assign: B",
		},
		{
			name:        "all fail",
			classes:     []string{"Y", "Z"},
			wantOutcome: Failure,
			wantFailed:  []string{"Y", "Z"},
			wantMsg:     "Failed to assign any batches. Please try again.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls, refreshes int
			assign := func(ctx context.Context, label string) error {
				id, ok := roster.ClassID(label)
				if !ok {
					return ErrUnknownKey
				}
				calls++
				if tt.failIDs[id] {
					return errBackend
				}
				return nil
			}
			refresh := func(context.Context) error {
				refreshes++
				return nil
			}

			res := NewRunner(nil).Batch(context.Background(), Items(tt.classes, assign), refresh)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantSucceeded, res.Succeeded)
			assert.Equal(t, tt.wantFailed, res.Failed)
			assert.Equal(t, 1, refreshes, "refresh runs exactly once")
			assert.Equal(t, tt.wantMsg, res.Message(batchMsgs))
		})
	}
}

func TestRunner_Reconcile(t *testing.T) {
	var refreshes int
	refresh := func(context.Context) error { refreshes++; return errors.New("offline") }

	res := NewRunner(nil).Reconcile(context.Background(), "approve", func(context.Context) error {
		return errors.New("HTTP 409")
	}, refresh)
	assert.Equal(t, Failure, res.Outcome)
	assert.EqualError(t, res.Err, "HTTP 409")
	assert.Error(t, res.RefreshErr)
	assert.Equal(t, 1, refreshes, "refresh runs even on total failure")

	res = NewRunner(nil).Reconcile(context.Background(), "approve", func(context.Context) error { return nil }, nil)
	assert.True(t, res.OK())
}

func TestRunner_BatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var refreshed bool
	items := []Item{
		{Name: "A", Do: func(context.Context) error { cancel(); return nil }},
		{Name: "B", Do: func(context.Context) error { t.Error("B must not run"); return nil }},
	}
	res := NewRunner(nil).Batch(ctx, items, func(ctx context.Context) error {
		refreshed = ctx.Err() == nil
		return nil
	})
	assert.Equal(t, Partial, res.Outcome)
	assert.Equal(t, []string{"B"}, res.Failed)
	assert.True(t, refreshed)
}

func TestGeneration(t *testing.T) {
	var gen Generation
	ctx1, tok1, release1 := gen.Next(context.Background())
	ctx2, tok2, release2 := gen.Next(context.Background())
	defer release2()

	assert.Error(t, ctx1.Err(), "superseded load is cancelled")
	assert.NoError(t, ctx2.Err())
	assert.False(t, gen.Current(tok1))
	assert.True(t, gen.Current(tok2))

	var applied []Token
	assert.False(t, gen.Apply(tok1, func() { applied = append(applied, tok1) }))
	assert.True(t, gen.Apply(tok2, func() { applied = append(applied, tok2) }))
	assert.Equal(t, []Token{tok2}, applied)

	release1()
	assert.NoError(t, ctx2.Err(), "releasing a stale load leaves the current one alone")
}

func TestFanOut(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6}
	var inFlight, maxInFlight int32
	out, err := FanOut(context.Background(), 2, in, func(ctx context.Context, n int) (int, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return n * n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36}, out)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FanOut(ctx, 2, in, func(ctx context.Context, n int) (int, error) { return n, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
