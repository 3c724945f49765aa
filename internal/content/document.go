// Package content defines the generic document model shared by the
// classifier, mapper and merge engine, along with missing-key-tolerant
// accessors for reading loosely-typed security-content documents.
package content

import (
	"fmt"
	"strings"
)

// Document is a single parsed YAML or JSON artifact. Values are the
// generic decode types produced by yaml.v3 and encoding/json: string,
// int, float64, bool, []interface{}, map[string]interface{} or nil.
// Documents are never mutated by the pipeline; transforms copy.
type Document map[string]interface{}

// Tag is a {name, value} pair used in saved-search tag lists.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Has reports whether the document has the given top-level key.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Bool returns the boolean value at key, or def when the key is
// missing or not a boolean.
func (d Document) Bool(key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

// Map returns the nested document at key, or nil if the key is missing
// or not a mapping.
func (d Document) Map(key string) Document {
	if m, ok := d[key].(map[string]interface{}); ok {
		return Document(m)
	}
	return nil
}

// List returns the list at key, or nil if the key is missing or not a
// list.
func (d Document) List(key string) []interface{} {
	if l, ok := d[key].([]interface{}); ok {
		return l
	}
	return nil
}

// StringSlice returns the list at key with every string element kept
// and non-string elements dropped.
func (d Document) StringSlice(key string) []string {
	list, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// GetValue reads the scalar at key (or key.subKey when subKey is
// non-empty) as a trimmed string. Missing keys, missing sub-keys and
// non-scalar values yield the empty string, never an error. When clean
// is set, one layer of matching leading/trailing quote characters is
// stripped as well.
func GetValue(doc Document, key, subKey string, clean bool) string {
	if doc == nil {
		return ""
	}
	v, ok := doc[key]
	if !ok {
		return ""
	}
	if subKey != "" {
		nested, ok := v.(map[string]interface{})
		if !ok {
			return ""
		}
		v, ok = nested[subKey]
		if !ok {
			return ""
		}
	}
	s := asString(v)
	if clean {
		return cleanValue(s)
	}
	return strings.TrimSpace(s)
}

// GetTag reads the scalar at key (or key.subKey) and wraps it into a
// Tag named tagName. The second return value is false when the value
// is missing or blank, so absent tags can be filtered instead of
// emitted as empty pairs.
func GetTag(doc Document, key, subKey, tagName string, clean bool) (Tag, bool) {
	value := GetValue(doc, key, subKey, clean)
	if value == "" {
		return Tag{}, false
	}
	return Tag{Name: tagName, Value: value}, true
}

// IsBlank reports whether the scalar at key is missing, empty or
// whitespace-only.
func IsBlank(doc Document, key string) bool {
	return GetValue(doc, key, "", false) == ""
}

// asString converts a generic scalar to its string form. Lists,
// mappings and nil have no string form and yield "".
func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool, int, int64, float64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

// cleanValue trims whitespace and strips one layer of matching
// leading/trailing quote characters.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
