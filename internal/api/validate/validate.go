// Package validate rejects structurally invalid generation requests before
// any network call is made.
package validate

import (
	"fmt"

	"github.com/partypulse/partygen/internal/model"
)

var (
	locales   = map[string]bool{"zh-CN": true, "en-US": true}
	audiences = map[string]bool{"kids": true, "teen": true, "adult": true}
	levels    = map[string]bool{"soft": true, "medium": true, "hard": true}
)

// Request checks every field of req against its allowed domain and returns
// a *model.ValidationError naming the first violated field. It has no side
// effects and performs no I/O.
func Request(req *model.GenerationRequest) error {
	if req.Mode != model.ModeTruth && req.Mode != model.ModeDare {
		return &model.ValidationError{
			Kind:    model.InvalidMode,
			Message: fmt.Sprintf("mode must be truth or dare, got %q", req.Mode),
		}
	}
	if req.Style == "" {
		return &model.ValidationError{
			Kind:    model.InvalidStyle,
			Message: "style is required",
		}
	}
	if req.Count < 1 || req.Count > 20 {
		return &model.ValidationError{
			Kind:    model.InvalidCount,
			Message: fmt.Sprintf("count must be between 1 and 20, got %d", req.Count),
		}
	}
	if !locales[req.Locale] {
		return &model.ValidationError{
			Kind:    model.InvalidLocale,
			Message: fmt.Sprintf("locale must be zh-CN or en-US, got %q", req.Locale),
		}
	}
	if !audiences[req.AudienceAge] {
		return &model.ValidationError{
			Kind:    model.InvalidAudience,
			Message: fmt.Sprintf("audienceAge must be kids, teen or adult, got %q", req.AudienceAge),
		}
	}
	if !levels[req.Intensity] {
		return &model.ValidationError{
			Kind:    model.InvalidIntensity,
			Message: fmt.Sprintf("intensity must be soft, medium or hard, got %q", req.Intensity),
		}
	}
	return nil
}
