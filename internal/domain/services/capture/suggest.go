package capture

import "context"

// Suggester produces AI-generated metadata for pasted text. Suggestions are
// advisory: a failure here never blocks a save.
type Suggester interface {
	// Suggest returns a proposed title, tags, and a short summary for the
	// given text
	Suggest(ctx context.Context, text string) (*Suggestion, error)
}

// Suggestion is the model-produced metadata for a piece of text.
type Suggestion struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}
