// Package extract turns raw provider text into typed question/answer data.
// Providers are untrusted: anything that does not match the expected shape
// after fence stripping is rejected as a whole.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrEmpty = errors.New("empty payload")

// SchemaError reports a missing or blank required field.
type SchemaError struct {
	Index int // -1 for a single object
	Field string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("item %d: missing field %q", e.Index, e.Field)
}

type QuestionAnswer struct {
	Question string
	Answer   string
}

type Explanation struct {
	Title       string
	Explanation string
}

// StripCodeFence removes a markdown code fence (``` or ```json) around the payload.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// info string runs to the end of the first line, e.g. json / JSON / " json5"
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && !strings.ContainsAny(s[:idx], "[{") {
		s = s[idx+1:]
	} else {
		s = strings.TrimLeftFunc(s, unicode.IsLetter)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Questions parses a JSON array of {question, answer} objects.
func Questions(raw string) ([]QuestionAnswer, error) {
	payload := StripCodeFence(raw)
	if payload == "" {
		return nil, ErrEmpty
	}

	var items []struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode question array: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	out := make([]QuestionAnswer, len(items))
	for i, item := range items {
		if blank(item.Question) {
			return nil, &SchemaError{Index: i, Field: "question"}
		}
		if blank(item.Answer) {
			return nil, &SchemaError{Index: i, Field: "answer"}
		}
		out[i] = QuestionAnswer{
			Question: strings.TrimSpace(*item.Question),
			Answer:   strings.TrimSpace(*item.Answer),
		}
	}
	return out, nil
}

// ConceptExplanation parses a single {title, explanation} object.
func ConceptExplanation(raw string) (*Explanation, error) {
	payload := StripCodeFence(raw)
	if payload == "" {
		return nil, ErrEmpty
	}

	var obj struct {
		Title       *string `json:"title"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("decode explanation object: %w", err)
	}
	if blank(obj.Title) {
		return nil, &SchemaError{Index: -1, Field: "title"}
	}
	if blank(obj.Explanation) {
		return nil, &SchemaError{Index: -1, Field: "explanation"}
	}

	return &Explanation{
		Title:       strings.TrimSpace(*obj.Title),
		Explanation: strings.TrimSpace(*obj.Explanation),
	}, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
