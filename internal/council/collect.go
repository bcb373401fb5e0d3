package council

import (
	"context"

	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

// collectResponses runs stage 1: every council member answers the question
// independently. Members that fail are dropped from the result; the slice
// preserves the order of the member list.
func (c *Council) collectResponses(ctx context.Context, question string, members []string) []Stage1Response {
	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: question}}
	results := c.queryModels(ctx, members, messages)

	responses := make([]Stage1Response, 0, len(results))
	for _, model := range distinctModels(members) {
		res, ok := results[model]
		if !ok || res.Err != nil {
			continue
		}
		responses = append(responses, Stage1Response{Model: model, Response: res.Content})
	}
	return responses
}
