package council

import (
	"fmt"
	"strings"
)

// buildRankingPrompt asks one council member to evaluate the anonymized
// stage 1 responses. Responses appear under their labels only; model names
// must never reach this prompt.
func buildRankingPrompt(question string, stage1 []Stage1Response) string {
	blocks := make([]string, 0, len(stage1))
	for i, r := range stage1 {
		blocks = append(blocks, fmt.Sprintf("Response %s:\n%s", responseLabel(i), r.Response))
	}
	responsesText := strings.Join(blocks, "\n\n")

	return fmt.Sprintf(`You are evaluating different responses to the following question:

Question: %s

Here are the responses from different models (anonymized):

%s

Your task:
1. First, evaluate each response individually.
2. Then provide a final ranking.

IMPORTANT: End with "FINAL RANKING:" followed by a numbered list from best to worst.
Example:
FINAL RANKING:
1. Response C
2. Response A
3. Response B

Now provide your evaluation and ranking:`, question, responsesText)
}

// buildChairmanPrompt assembles the synthesis prompt for the chairman. The
// chairman sees everything: model names, their responses, and their
// rankings.
func buildChairmanPrompt(question string, stage1 []Stage1Response, stage2 []Stage2Ranking) string {
	s1 := make([]string, 0, len(stage1))
	for _, r := range stage1 {
		s1 = append(s1, fmt.Sprintf("Model: %s\nResponse: %s", r.Model, r.Response))
	}
	s2 := make([]string, 0, len(stage2))
	for _, r := range stage2 {
		s2 = append(s2, fmt.Sprintf("Model: %s\nRanking: %s", r.Model, r.Ranking))
	}

	return fmt.Sprintf(`You are the Chairman of an LLM Council. Multiple AI models have provided responses and ranked each other.

Original Question: %s

STAGE 1 - Individual Responses:
%s

STAGE 2 - Peer Rankings:
%s

Synthesize all of this into a single, comprehensive, accurate answer that represents the council's collective wisdom:`, question, strings.Join(s1, "\n\n"), strings.Join(s2, "\n\n"))
}
