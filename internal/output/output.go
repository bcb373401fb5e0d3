// Package output renders council results for the terminal, as styled text
// or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/Realcryptoplato/llm-council/internal/council"
)

const (
	ruleWidth = 60

	defaultWrapWidth = 80
	maxWrapWidth     = 120
)

// Report is the printable view of one council run.
type Report struct {
	Tier string `json:"tier"`
	*council.Result
}

// Renderer writes reports to the terminal. With markdown enabled the
// answer body is styled with glamour; plain mode prints it verbatim.
type Renderer struct {
	md *glamour.TermRenderer
}

func NewRenderer(plain bool) (*Renderer, error) {
	if plain {
		return &Renderer{}, nil
	}

	width := defaultWrapWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w - 4
		if width > maxWrapWidth {
			width = maxWrapWidth
		}
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{md: md}, nil
}

// RenderText prints the answer between banner rules, followed by the
// council roster.
func (r *Renderer) RenderText(w io.Writer, report *Report) {
	answer := report.Answer
	if r.md != nil {
		if rendered, err := r.md.Render(answer); err == nil {
			answer = strings.TrimRight(rendered, "\n")
		}
	}

	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "COUNCIL'S ANSWER")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, answer)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(w, "Deliberated by: %s\n", strings.Join(shortNames(report.CouncilModels), ", "))
	fmt.Fprintf(w, "Synthesized by: %s\n", shortName(report.Chairman))
}

// WriteJSON writes any value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// shortName strips the vendor prefix from a model id, so
// "openai/gpt-5.2" reads as "gpt-5.2".
func shortName(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		return model[i+1:]
	}
	return model
}

func shortNames(models []string) []string {
	names := make([]string, 0, len(models))
	for _, model := range models {
		names = append(names, shortName(model))
	}
	return names
}
