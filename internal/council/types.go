package council

// Stage1Response is one council member's answer to the original question.
type Stage1Response struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Stage2Ranking is one council member's free-form evaluation of the
// anonymized stage 1 responses. The ranking text is stored verbatim and
// never parsed.
type Stage2Ranking struct {
	Model   string `json:"model"`
	Ranking string `json:"ranking"`
}

// Result is the complete outcome of a council run. LabelToModel maps the
// anonymized labels used during ranking ("A", "B", ...) back to the model
// that wrote each response; it exists for auditing and display and is never
// shown to any model.
type Result struct {
	Answer        string            `json:"answer"`
	Chairman      string            `json:"chairman"`
	CouncilModels []string          `json:"council_models"`
	Stage1        []Stage1Response  `json:"stage1"`
	Stage2        []Stage2Ranking   `json:"stage2"`
	LabelToModel  map[string]string `json:"label_to_model"`
}
