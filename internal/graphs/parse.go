package graphs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Vision models wrap the array in a code fence often enough that the prompt's
// "no markdown" instruction cannot be trusted.
var (
	fencePrefixes = []string{"```json\n", "```json\r\n", "```\n"}
	fenceSuffixes = []string{"\n```", "\r\n```"}
)

// ParseGraphArray extracts the JSON array of graph descriptions from a model
// reply. A surrounding markdown code fence is stripped; anything beyond that
// (truncated JSON, prose, an object instead of an array) is a parse failure.
// No repair of near-valid JSON is attempted.
func ParseGraphArray(text string) ([]GraphDescription, error) {
	raw := strings.TrimSpace(text)
	for _, p := range fencePrefixes {
		if strings.HasPrefix(raw, p) {
			raw = raw[len(p):]
			break
		}
	}
	for _, s := range fenceSuffixes {
		if strings.HasSuffix(raw, s) {
			raw = raw[:len(raw)-len(s)]
			break
		}
	}
	raw = strings.TrimSpace(raw)

	if !strings.HasPrefix(raw, "[") {
		return nil, fmt.Errorf("response does not start with a JSON array")
	}

	var descriptions []GraphDescription
	if err := json.Unmarshal([]byte(raw), &descriptions); err != nil {
		return nil, fmt.Errorf("failed to decode graph array: %w", err)
	}
	if descriptions == nil {
		descriptions = []GraphDescription{}
	}
	return descriptions, nil
}
