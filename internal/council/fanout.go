package council

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Realcryptoplato/llm-council/internal/metrics"
	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

// queryResult carries the outcome of a single model invocation. Failures
// are values here, not propagated errors: one slow or broken model must
// never abort the others.
type queryResult struct {
	Content string
	Err     error
}

// distinctModels collapses duplicate model ids, preserving first-seen order.
func distinctModels(models []string) []string {
	distinct := make([]string, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		distinct = append(distinct, m)
	}
	return distinct
}

// invoke performs exactly one chat completion against one model, bounded by
// the configured per-invocation timeout. No retries.
func (c *Council) invoke(ctx context.Context, model string, messages []openrouter.Message) queryResult {
	metrics.InvocationsInflight.Inc()
	start := time.Now()
	defer func() {
		metrics.InvocationsInflight.Dec()
		metrics.ModelInvocationDurations.WithLabelValues(model).Observe(time.Since(start).Seconds())
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, c.cfg.InvokeTimeout)
	defer cancel()

	content, err := c.cfg.Client.ChatCompletion(timeoutCtx, model, messages)
	if err != nil {
		metrics.ModelInvocationsTotal.WithLabelValues(model, "failure").Inc()
		if c.log != nil && !errors.Is(err, context.Canceled) {
			c.log.Warn("council: model invocation failed", "model", model, "error", err)
		}
		return queryResult{Err: err}
	}

	metrics.ModelInvocationsTotal.WithLabelValues(model, "success").Inc()
	return queryResult{Content: content}
}

// queryModels sends the same messages to every distinct model concurrently
// and waits for all of them to finish. The returned map holds exactly one
// entry per distinct model, failed invocations included.
func (c *Council) queryModels(ctx context.Context, models []string, messages []openrouter.Message) map[string]queryResult {
	distinct := distinctModels(models)

	results := make(map[string]queryResult, len(distinct))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.cfg.MaxConcurrency)
	for _, model := range distinct {
		wg.Add(1)
		sem <- struct{}{}
		go func(model string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := c.invoke(ctx, model, messages)

			mu.Lock()
			results[model] = result
			mu.Unlock()
		}(model)
	}
	wg.Wait()
	close(sem)

	return results
}
