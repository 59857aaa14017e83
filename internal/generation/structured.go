package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONOnlySuffix is appended to every structured prompt.
const JSONOnlySuffix = "\n\nIMPORTANT: Respond ONLY with valid JSON. No markdown, no explanations, just pure JSON."

// ExtractJSON returns the JSON span of a model reply: from the first '{' or
// '[' (whichever comes first) to the last matching closing bracket. Text with
// no such span is returned trimmed, so the parse error names the real reply.
func ExtractJSON(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return strings.TrimSpace(text)
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return strings.TrimSpace(text[start:])
	}
	return text[start : end+1]
}

// GenerateJSON sends req with JSONOnlySuffix appended, extracts the JSON span
// of the reply and parses it into a generic value. Any parse failure wraps
// ErrInvalidResponse.
func GenerateJSON(ctx context.Context, gen ContentGenerator, req Request) (any, error) {
	req.Prompt += JSONOnlySuffix

	resp, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(ExtractJSON(resp.Text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse structured response: %v", ErrInvalidResponse, err)
	}
	return parsed, nil
}

// unwrapList returns v itself when it is an array, or v[key] when v is an
// object wrapping the array under key. A missing key yields an empty list.
func unwrapList(v any, key string) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		if inner, ok := t[key].([]any); ok {
			return inner
		}
	}
	return []any{}
}

// decode validates v against schema and re-encodes it into dest.
func decode(schema string, v any, dest any) error {
	if err := validate(schema, v); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
