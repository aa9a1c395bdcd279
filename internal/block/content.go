package block

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Content is the type-shaped payload of a block. Absent or mistyped keys read
// as zero values; accessors never panic.
type Content map[string]any

// String returns the value at key as a string.
func (c Content) String(key string) string {
	if c == nil {
		return ""
	}
	switch v := c[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Bool returns the value at key as a bool. Strings "true"/"1" count as true.
func (c Content) Bool(key string) bool {
	if c == nil {
		return false
	}
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

// Items returns the list stored at key. Non-object entries are skipped.
func (c Content) Items(key string) []Content {
	if c == nil {
		return nil
	}
	switch v := c[key].(type) {
	case []Content:
		out := make([]Content, 0, len(v))
		for _, item := range v {
			out = append(out, item.Clone())
		}
		return out
	case []map[string]any:
		out := make([]Content, 0, len(v))
		for _, item := range v {
			out = append(out, Content(item).Clone())
		}
		return out
	case []any:
		out := make([]Content, 0, len(v))
		for _, raw := range v {
			switch item := raw.(type) {
			case map[string]any:
				out = append(out, Content(item).Clone())
			case Content:
				out = append(out, item.Clone())
			}
		}
		return out
	default:
		return nil
	}
}

// Has reports whether key is present.
func (c Content) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c[key]
	return ok
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c Content) Clone() Content {
	if c == nil {
		return Content{}
	}
	out := make(Content, len(c))
	for key, value := range c {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Content:
		return v.Clone().plain()
	case map[string]any:
		return Content(v).Clone().plain()
	case []Content:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item.Clone().plain())
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, Content(item).Clone().plain())
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

// plain converts to the map type produced by encoding/json so that content
// built in Go compares equal to content decoded from storage.
func (c Content) plain() map[string]any {
	return map[string]any(c)
}

// Map returns a deep copy as a plain map, suitable for persistence.
func (c Content) Map() map[string]any {
	return c.Clone().plain()
}

func itemsToAny(items []Content) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone().plain())
	}
	return out
}
