// Package ranking turns a job description and résumés into a model prompt,
// recovers the ranked candidate list from the model's reply, and selects the
// shortlist.
package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedOutput means the model reply held no parsable JSON array, even
// after slicing between the outermost brackets.
var ErrMalformedOutput = errors.New("model returned malformed output")

// ErrUpstream wraps transport, auth and quota failures of the hosted model.
var ErrUpstream = errors.New("ranking service unavailable")

// Candidate is one ranked record as returned by the model.
type Candidate struct {
	Candidate string   `json:"candidate"`
	Email     string   `json:"email"`
	Score     float64  `json:"score"`
	Reason    string   `json:"reason"`
	Warnings  []string `json:"warnings,omitempty"`
}

// RejectedRecord is a record dropped by the schema check.
type RejectedRecord struct {
	Index  int             `json:"index"`
	Reason string          `json:"reason"`
	Raw    json.RawMessage `json:"raw"`
}

// ExtractArray recovers the JSON array from a model reply. The whole text is
// parsed strictly first; if that fails, the span from the first '[' to the
// last ']' is parsed strictly. There is no further fallback: prose that
// itself contains brackets around the array defeats the slice.
func ExtractArray(text string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	// a bare `null` decodes without error but is not an array
	if err := json.Unmarshal([]byte(text), &records); err == nil && records != nil {
		return records, nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedOutput)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return records, nil
}

// Parse extracts the array and checks every record against the candidate
// schema. Valid records keep their order. candidate and email are required
// strings; a score, when present, must be numeric. A missing score counts as
// zero and a missing reason as empty, both noted in Warnings.
func Parse(text string) ([]Candidate, []RejectedRecord, error) {
	records, err := ExtractArray(text)
	if err != nil {
		return nil, nil, err
	}

	candidates := make([]Candidate, 0, len(records))
	var rejected []RejectedRecord
	for i, raw := range records {
		c, reason := decodeRecord(raw)
		if reason != "" {
			rejected = append(rejected, RejectedRecord{Index: i, Reason: reason, Raw: raw})
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, rejected, nil
}

func decodeRecord(raw json.RawMessage) (Candidate, string) {
	if !gjson.ParseBytes(raw).IsObject() {
		return Candidate{}, "record is not an object"
	}

	name := gjson.GetBytes(raw, "candidate")
	if name.Type != gjson.String || strings.TrimSpace(name.String()) == "" {
		return Candidate{}, "missing candidate name"
	}
	email := gjson.GetBytes(raw, "email")
	if email.Type != gjson.String || strings.TrimSpace(email.String()) == "" {
		return Candidate{}, "missing email"
	}

	c := Candidate{
		Candidate: name.String(),
		Email:     email.String(),
	}

	switch score := gjson.GetBytes(raw, "score"); {
	case !score.Exists() || score.Type == gjson.Null:
		c.Warnings = append(c.Warnings, "score missing, treated as 0")
	case score.Type == gjson.Number:
		c.Score = score.Float()
	default:
		return Candidate{}, "score is not a number"
	}

	if reason := gjson.GetBytes(raw, "reason"); reason.Type == gjson.String {
		c.Reason = reason.String()
	} else {
		c.Warnings = append(c.Warnings, "reason missing")
	}
	return c, ""
}
