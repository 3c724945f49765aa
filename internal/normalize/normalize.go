// Package normalize holds the pure value converters applied during
// property mapping: duration encoding, trigger-operator
// canonicalization, technique decomposition and KQL function-parameter
// signatures.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/logger"
)

// rawDurationPattern matches the shorthand duration form used by
// content authors, e.g. "5H", "30M", "3D".
var rawDurationPattern = regexp.MustCompile(`^(\d+)([HMD])$`)

// Duration converts a shorthand duration into its ISO-8601 form:
// hours and minutes become PT<N><unit>, days become P<N>D. Anything
// not matching the shorthand pattern is returned unchanged, so
// already-ISO values and malformed input pass through.
func Duration(value string) string {
	m := rawDurationPattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	if m[2] == "D" {
		return "P" + m[1] + "D"
	}
	return "PT" + m[1] + m[2]
}

// IsRawDuration reports whether value is in the shorthand duration
// form that Duration rewrites.
func IsRawDuration(value string) bool {
	return rawDurationPattern.MatchString(value)
}

// TriggerOperator canonicalizes a trigger-operator name. Abbreviations
// map to their canonical names, canonical names pass through, and any
// other input defaults to GreaterThan. The default masks typos but is
// the contract; a debug line records when it fires.
func TriggerOperator(value string) string {
	switch value {
	case "lt":
		return "LessThan"
	case "eq":
		return "Equal"
	case "ne":
		return "NotEqual"
	case "LessThan", "Equal", "NotEqual":
		return value
	default:
		logger.Debug().Msgf("unrecognized trigger operator %q, defaulting to GreaterThan", value)
		return "GreaterThan"
	}
}

// SplitTechniques decomposes a technique list into techniques and
// sub-techniques. Embedded spaces are stripped; an item containing a
// dot contributes its prefix to techniques and the full string to
// subTechniques; both lists are deduplicated preserving first-seen
// order; empty items are skipped.
func SplitTechniques(items []string) (techniques, subTechniques []string) {
	seenTech := make(map[string]struct{})
	seenSub := make(map[string]struct{})

	for _, item := range items {
		item = strings.ReplaceAll(item, " ", "")
		if item == "" {
			continue
		}

		tech := item
		if idx := strings.Index(item, "."); idx >= 0 {
			tech = item[:idx]
			if _, ok := seenSub[item]; !ok {
				seenSub[item] = struct{}{}
				subTechniques = append(subTechniques, item)
			}
		}
		if tech == "" {
			continue
		}
		if _, ok := seenTech[tech]; !ok {
			seenTech[tech] = struct{}{}
			techniques = append(techniques, tech)
		}
	}
	return techniques, subTechniques
}

// FunctionParameters renders a parameter-spec list into a KQL function
// signature. Each item is either a {Name, Type, Default?} mapping or a
// raw string. A Type beginning with "table:" emits only the portion
// after the colon; a present Default is appended as =value, quoted
// when the Type is string; raw strings pass through trimmed.
func FunctionParameters(specs []interface{}) string {
	var params []string
	for _, spec := range specs {
		switch v := spec.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				params = append(params, trimmed)
			}
		case map[string]interface{}:
			doc := content.Document(v)
			name := content.GetValue(doc, "Name", "", false)
			typ := content.GetValue(doc, "Type", "", false)
			if name == "" {
				continue
			}
			if rest, ok := strings.CutPrefix(typ, "table:"); ok {
				typ = rest
			}
			param := name + ":" + typ
			if def, ok := doc["Default"]; ok && def != nil {
				defValue := fmt.Sprint(def)
				if typ == "string" {
					defValue = "'" + defValue + "'"
				}
				param += "=" + defValue
			}
			params = append(params, param)
		}
	}
	return strings.Join(params, ",")
}
