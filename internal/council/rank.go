package council

import (
	"context"

	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

// collectRankings runs stage 2: the full council ranks the anonymized
// stage 1 responses. Every member is asked, including members whose own
// stage 1 invocation failed; they can still judge their peers. The label
// map translating "A", "B", ... back to model ids is returned for the
// caller's audit trail and never appears in any prompt.
func (c *Council) collectRankings(ctx context.Context, question string, stage1 []Stage1Response, members []string) ([]Stage2Ranking, map[string]string) {
	labelToModel := make(map[string]string, len(stage1))
	for i, r := range stage1 {
		labelToModel[responseLabel(i)] = r.Model
	}

	prompt := buildRankingPrompt(question, stage1)
	messages := []openrouter.Message{{Role: openrouter.RoleUser, Content: prompt}}
	results := c.queryModels(ctx, members, messages)

	rankings := make([]Stage2Ranking, 0, len(results))
	for _, model := range distinctModels(members) {
		res, ok := results[model]
		if !ok || res.Err != nil {
			continue
		}
		rankings = append(rankings, Stage2Ranking{Model: model, Ranking: res.Content})
	}
	return rankings, labelToModel
}
