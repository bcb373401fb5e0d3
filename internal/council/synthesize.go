package council

import (
	"context"

	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

// Sentinel answers used when the chairman cannot produce a synthesis. The
// run still completes; callers can detect degradation by comparing against
// these values.
const (
	AnswerChairmanFailed = "Error: Chairman failed."
	AnswerSynthesisEmpty = "Error: Unable to synthesize."
)

// synthesize runs stage 3: the chairman distills the question, all stage 1
// responses, and all stage 2 rankings into the final answer. The chairman
// is a single invocation, not a fan-out. Failure degrades to a sentinel
// answer instead of failing the run.
func (c *Council) synthesize(ctx context.Context, question string, stage1 []Stage1Response, stage2 []Stage2Ranking, chairman string) string {
	prompt := buildChairmanPrompt(question, stage1, stage2)
	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: prompt}}

	result := c.invoke(ctx, chairman, messages)
	if result.Err != nil {
		if c.log != nil {
			c.log.Warn("council: chairman synthesis failed", "chairman", chairman, "error", result.Err)
		}
		return AnswerChairmanFailed
	}
	if result.Content == "" {
		return AnswerSynthesisEmpty
	}
	return result.Content
}
