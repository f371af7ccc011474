package record

import (
	"encoding/json"
	"strings"
)

// NormalizeTags converts a stored tag value into a non-nil ordered list.
// Postgres hands back []string (nil for NULL), SQLite keeps a JSON text
// array. Anything unparseable yields an empty list.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		if v == nil {
			return []string{}
		}
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return decodeTags([]byte(v))
	case []byte:
		return decodeTags(v)
	case *string:
		if v == nil {
			return []string{}
		}
		return decodeTags([]byte(*v))
	default:
		return []string{}
	}
}

func decodeTags(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// EncodeTags is the inverse of NormalizeTags for stores that keep JSON text.
func EncodeTags(tags []string) string {
	data, err := json.Marshal(NormalizeTags(tags))
	if err != nil {
		return "[]"
	}
	return string(data)
}

// SplitTagList parses a comma separated tag filter. Entries are trimmed and
// empty entries dropped; order and duplicates are kept.
func SplitTagList(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
