package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fishlog-identify/internal/models"
)

var (
	ErrEmptyOutput = errors.New("classifier returned no text")
	ErrNotObject   = errors.New("classifier output is not a JSON object")
)

// Text returns the answer text carried by a response envelope. A flat
// output_text wins; otherwise every content block text is concatenated in
// order.
func Text(raw []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	if strings.TrimSpace(env.OutputText) != "" {
		return env.OutputText, nil
	}

	var b strings.Builder
	for _, item := range env.Output {
		for _, block := range item.Content {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyOutput
	}
	return b.String(), nil
}

// StripCodeFence removes a surrounding Markdown code fence, with or
// without a language tag.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseObject decodes fenced or bare text into a single JSON object.
func ParseObject(text string) (models.Record, error) {
	body := StripCodeFence(text)
	if body == "" {
		return nil, ErrEmptyOutput
	}

	var v interface{}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	rec, ok := models.AsRecord(v)
	if !ok {
		return nil, ErrNotObject
	}
	return rec, nil
}
