package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/partypulse/partygen/internal/model"
)

// Models wrap their JSON output in markdown fences, stray braces and the
// occasional unescaped or full-width quote. Parse runs an ordered sequence
// of fallible strategies over the raw text and stops at the first one that
// yields items; only when every strategy fails does it return a *ParseError.
//
// Parsing never mutates its input and is idempotent: the same raw text
// always yields the same item set, modulo freshly assigned IDs.
func Parse(raw string) ([]model.Item, error) {
	cleaned := normalize(raw)

	for _, strategy := range []func(string) []parsedItem{
		decodeArray,
		extractFragments,
		extractSingle,
	} {
		if items := strategy(cleaned); len(items) > 0 {
			return assignIDs(items), nil
		}
	}

	return nil, &ParseError{
		Reason:  "no strategy produced items",
		Snippet: snippet(raw, 300),
	}
}

type parsedItem struct {
	Type model.Mode `json:"type"`
	Text string     `json:"text"`
}

// assignIDs gives every item of a batch an identifier unique within the
// response. A per-batch random prefix plus the item index guarantees
// uniqueness even when two batches are created in the same millisecond.
func assignIDs(items []parsedItem) []model.Item {
	batch := uuid.NewString()[:8]
	out := make([]model.Item, len(items))
	for i, it := range items {
		out[i] = model.Item{
			ID:   fmt.Sprintf("gen-%s-%d", batch, i),
			Type: it.Type,
			Text: it.Text,
		}
	}
	return out
}

var (
	fenceRx        = regexp.MustCompile("(?i)```json\\s*|```\\s*")
	braceWrapOpen  = regexp.MustCompile(`^\s*\{\s*\[`)
	braceWrapClose = regexp.MustCompile(`\]\s*\}\s*$`)
)

// normalize strips markdown code fences and a single enclosing {[ ... ]}
// wrapper, then collapses the text to the outermost [...] span when one
// exists.
func normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceRx.ReplaceAllString(s, "")
	s = braceWrapOpen.ReplaceAllString(s, "[")
	s = braceWrapClose.ReplaceAllString(s, "]")

	open := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if open >= 0 && end > open {
		s = s[open : end+1]
	}
	return strings.TrimSpace(s)
}

// decodeArray is the strict tier: structural JSON decoding. Accepted only
// when the result is a non-empty list of objects that each carry text.
func decodeArray(s string) []parsedItem {
	var items []parsedItem
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if it.Text == "" {
			return nil
		}
	}
	return items
}

// Quote class covers straight quotes plus the full-width left/right marks
// (U+201C, U+201D) some models emit in Chinese output.
var (
	fragmentSplitRx = regexp.MustCompile(`\},\s*\{`)
	typeRx          = regexp.MustCompile(`(?i)["“”]type["“”]\s*:\s*["“”]?(truth|dare)["“”]?`)
	textFieldRx     = regexp.MustCompile(`["“”]text["“”]\s*:\s*["“”]`)
	trailingJunkRx  = regexp.MustCompile(`["“”]\s*\}[\s\}\]]*$`)
)

// extractFragments is the field-level tier: split the text into object-like
// fragments on the comma-between-braces boundary, re-balance missing braces
// and recover {type, text} per fragment, tolerating unescaped quotes inside
// the text value.
func extractFragments(s string) []parsedItem {
	var items []parsedItem
	for _, frag := range fragmentSplitRx.Split(s, -1) {
		if !strings.HasPrefix(frag, "{") {
			frag = "{" + frag
		}
		if !strings.HasSuffix(frag, "}") {
			frag = frag + "}"
		}

		tm := typeRx.FindStringSubmatch(frag)
		if tm == nil {
			continue
		}

		text, ok := extractTextValue(frag)
		if !ok {
			continue
		}
		items = append(items, parsedItem{
			Type: model.Mode(strings.ToLower(tm[1])),
			Text: text,
		})
	}
	return items
}

// extractSingle is the last resort: one whole-text extraction of a single
// {type, text} pair, for a truncated or mangled lone object.
func extractSingle(s string) []parsedItem {
	tm := typeRx.FindStringSubmatch(s)
	if tm == nil {
		return nil
	}
	text, ok := extractTextValue(s)
	if !ok {
		return nil
	}
	return []parsedItem{{
		Type: model.Mode(strings.ToLower(tm[1])),
		Text: text,
	}}
}

// extractTextValue takes the longest plausible quoted span after the text
// label: everything from the opening quote up to the last quote before the
// closing brace clutter. Inner unescaped quotes survive intact.
func extractTextValue(s string) (string, bool) {
	loc := textFieldRx.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	value := s[loc[1]:]

	if trimmed := trailingJunkRx.ReplaceAllString(value, ""); trimmed != value {
		value = trimmed
	} else if last := lastQuoteIndex(value); last >= 0 {
		value = value[:last]
	} else {
		// Truncated value with no closing quote at all.
		value = strings.TrimRight(value, "}] \n\t")
	}

	value = unescape(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func lastQuoteIndex(s string) int {
	for _, q := range []string{`"`, "”", "“"} {
		if i := strings.LastIndex(s, q); i >= 0 {
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
