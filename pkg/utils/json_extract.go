package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedBlock matches the first triple-back-tick block, with or without a
// language tag after the opening fence.
var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// ExtractJSON recovers a JSON object from LLM prose. It prefers the body
// of a fenced code block, slices from the first '{' to the last '}', and
// retries once with normalized digits, since models sometimes emit
// localized digits inside otherwise valid JSON. It never fails: anything
// unparseable degrades to an empty object.
func ExtractJSON(raw string) map[string]interface{} {
	body := strings.TrimSpace(raw)

	if m := fencedBlock.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start != -1 && end != -1 && end > start {
		body = body[start : end+1]
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(body), &obj); err == nil && obj != nil {
		return obj
	}

	if err := json.Unmarshal([]byte(NormalizeDigits(body)), &obj); err == nil && obj != nil {
		return obj
	}

	return map[string]interface{}{}
}

// StringField reads a field from an extracted object, tolerating numeric
// values the model may emit where a string was asked for.
func StringField(obj map[string]interface{}, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return ""
	}
}
