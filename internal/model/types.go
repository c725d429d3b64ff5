package model

// Mode is the game axis: verbal disclosure or physical action.
type Mode string

const (
	ModeTruth Mode = "truth"
	ModeDare  Mode = "dare"
)

// StyleExplicit is the permissive style variant. Requests using it get the
// adult system prompt, the permissive denylist and a forced hard intensity.
const StyleExplicit = "大尺度"

// GenerationRequest carries the validated parameters for one pipeline run.
// It is immutable once it passes validation.
type GenerationRequest struct {
	Mode        Mode   `json:"mode"`
	Style       string `json:"style"`
	Locale      string `json:"locale"`
	Count       int    `json:"count"`
	AudienceAge string `json:"audienceAge"`
	Intensity   string `json:"intensity"`
	Seed        int    `json:"seed"`
}

// IsExplicit reports whether the request uses the permissive style.
func (r *GenerationRequest) IsExplicit() bool {
	return r.Style == StyleExplicit
}

// Item is a single generated question or task. Items are created only by
// the response parser and never mutated afterwards.
type Item struct {
	ID   string `json:"id"`
	Type Mode   `json:"type"`
	Text string `json:"text"`
}

// PromptPair is the derived system/user instruction pair sent upstream.
// It is stateless and discarded after the call.
type PromptPair struct {
	System string
	User   string
}

// Meta describes how a GenerationResult was produced.
type Meta struct {
	Provider      string `json:"provider"`
	PromptID      string `json:"promptId"`
	LatencyMs     int64  `json:"latencyMs"`
	FilteredCount int    `json:"filteredCount"`
	Cached        bool   `json:"cached"`
	Seed          int    `json:"seed"`
}

// GenerationResult is the response payload for one pipeline run. A cached
// replay reuses Items and FilteredCount but refreshes LatencyMs and Cached.
type GenerationResult struct {
	Items []Item `json:"items"`
	Meta  Meta   `json:"meta"`
}
