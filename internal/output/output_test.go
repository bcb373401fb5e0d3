package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Realcryptoplato/llm-council/internal/council"
)

func testReport() *Report {
	return &Report{
		Tier: "balanced",
		Result: &council.Result{
			Answer:        "Use consensus.",
			Chairman:      "google/gemini-3-pro-preview",
			CouncilModels: []string{"openai/gpt-5.2", "anthropic/claude-sonnet-4.5", "x-ai/grok-4.1-fast"},
			Stage1: []council.Stage1Response{
				{Model: "openai/gpt-5.2", Response: "first"},
			},
			LabelToModel: map[string]string{"A": "openai/gpt-5.2"},
		},
	}
}

func TestRenderText_Plain(t *testing.T) {
	renderer, err := NewRenderer(true)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderer.RenderText(&buf, testReport())

	rule := strings.Repeat("=", 60)
	expected := strings.Join([]string{
		rule,
		"COUNCIL'S ANSWER",
		rule,
		"Use consensus.",
		"",
		strings.Repeat("-", 60),
		"Deliberated by: gpt-5.2, claude-sonnet-4.5, grok-4.1-fast",
		"Synthesized by: gemini-3-pro-preview",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderText_Markdown(t *testing.T) {
	renderer, err := NewRenderer(false)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderer.RenderText(&buf, testReport())

	out := buf.String()
	assert.Contains(t, out, "COUNCIL'S ANSWER")
	assert.Contains(t, out, "Deliberated by: gpt-5.2, claude-sonnet-4.5, grok-4.1-fast")
	assert.Contains(t, out, "consensus")
}

func TestWriteJSON_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	// Result fields are flattened alongside the tier.
	assert.Equal(t, "balanced", decoded["tier"])
	assert.Equal(t, "Use consensus.", decoded["answer"])
	assert.Equal(t, "google/gemini-3-pro-preview", decoded["chairman"])
	assert.Contains(t, decoded, "stage1")
	assert.Contains(t, decoded, "label_to_model")
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "gpt-5.2", shortName("openai/gpt-5.2"))
	assert.Equal(t, "free", shortName("vendor/model/free"))
	assert.Equal(t, "bare-model", shortName("bare-model"))
	assert.Equal(t, "", shortName(""))
}
