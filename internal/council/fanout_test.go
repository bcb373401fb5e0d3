package council

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

func TestCouncil_DistinctModels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models []string
		want   []string
	}{
		{
			name:   "no duplicates",
			models: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "duplicates collapse keeping first position",
			models: []string{"a", "b", "a", "c", "b"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "empty",
			models: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, distinctModels(tt.models))
		})
	}
}

func TestCouncil_QueryModels_OneEntryPerDistinctModel(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{
		ChatCompletionFunc: func(ctx context.Context, model string, messages []openrouter.Message) (string, error) {
			if model == "bad" {
				return "", errors.New("boom")
			}
			return "content for " + model, nil
		},
	}

	c := newCouncilForTest(t, client)

	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: "q"}}
	results := c.queryModels(context.Background(), []string{"good", "bad", "good"}, messages)

	require.Len(t, results, 2)
	require.NoError(t, results["good"].Err)
	require.Equal(t, "content for good", results["good"].Content)
	require.Error(t, results["bad"].Err)
	require.Empty(t, results["bad"].Content)
}

func TestCouncil_QueryModels_TimeoutRecordedAsFailure(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{
		ChatCompletionFunc: func(ctx context.Context, model string, messages []openrouter.Message) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}

	c, err := New(&Config{
		Logger:         newTestLogger(),
		Client:         client,
		InvokeTimeout:  10 * time.Millisecond,
		MaxConcurrency: 2,
	})
	require.NoError(t, err)

	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: "q"}}
	results := c.queryModels(context.Background(), []string{"a"}, messages)

	require.Len(t, results, 1)
	require.ErrorIs(t, results["a"].Err, context.DeadlineExceeded)
}

func TestCouncil_QueryModels_RespectsMaxConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight int32
	var maxSeen int32

	start := make(chan struct{})
	release := make(chan struct{})

	client := &mockChatClient{
		ChatCompletionFunc: func(ctx context.Context, model string, messages []openrouter.Message) (string, error) {
			<-start
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxSeen)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxSeen, prev, cur) {
					break
				}
			}
			<-release
			atomic.AddInt32(&inFlight, -1)
			return "ok", nil
		},
	}

	c, err := New(&Config{
		Logger:         newTestLogger(),
		Client:         client,
		InvokeTimeout:  time.Second,
		MaxConcurrency: 2,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: "q"}}
		_ = c.queryModels(context.Background(), []string{"m1", "m2", "m3", "m4"}, messages)
	}()

	close(start)
	time.Sleep(20 * time.Millisecond)
	require.LessOrEqual(t, atomic.LoadInt32(&maxSeen), int32(2))

	close(release)
	wg.Wait()
}

func TestCouncil_QueryModels_WaitsForAll(t *testing.T) {
	t.Parallel()

	var slowFinished atomic.Bool
	client := &mockChatClient{
		ChatCompletionFunc: func(ctx context.Context, model string, messages []openrouter.Message) (string, error) {
			if model == "slow" {
				time.Sleep(50 * time.Millisecond)
				slowFinished.Store(true)
				return "slow content", nil
			}
			return "fast content", nil
		},
	}

	c := newCouncilForTest(t, client)

	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: "q"}}
	results := c.queryModels(context.Background(), []string{"fast", "slow"}, messages)

	// The barrier joins on every member, never just the first.
	require.True(t, slowFinished.Load())
	require.Len(t, results, 2)
	require.Equal(t, "slow content", results["slow"].Content)
}
