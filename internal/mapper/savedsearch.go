package mapper

import (
	"strings"

	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/normalize"
)

// savedSearchVersion is the fixed savedSearches properties version.
const savedSearchVersion = 2

// asimProperties builds the saved-search body for an ASIM parser.
func asimProperties(doc content.Document) map[string]interface{} {
	var tags []content.Tag
	tags = appendTag(tags, doc, "Parser", "Title", "description", true)
	tags = appendTag(tags, doc, "Parser", "Version", "version", true)
	tags = appendTag(tags, doc, "Product", "Name", "product", true)
	tags = appendTag(tags, doc, "Normalization", "Schema", "schema", true)

	props := map[string]interface{}{
		"category":      "ASIM",
		"displayName":   content.GetValue(doc, "Parser", "Title", true),
		"functionAlias": content.GetValue(doc, "ParserName", "", false),
		"query":         content.GetValue(doc, "ParserQuery", "", false),
		"version":       savedSearchVersion,
		"tags":          tags,
	}
	if params := normalize.FunctionParameters(doc.List("ParserParams")); params != "" {
		props["functionParameters"] = params
	}
	return props
}

// huntProperties builds the saved-search body for a hunting query.
func huntProperties(doc content.Document) map[string]interface{} {
	var tags []content.Tag
	tags = appendTag(tags, doc, "description", "", "description", true)
	tags = appendTag(tags, doc, "id", "", "alert_rule_id", false)
	tags = appendTag(tags, doc, "severity", "", "severity", false)
	tags = appendTag(tags, doc, "version", "", "version", false)
	tags = appendListTag(tags, doc, "tactics", "tactics")
	tags = appendListTag(tags, doc, "relevantTechniques", "techniques")

	return map[string]interface{}{
		"category":    "Hunting Queries",
		"displayName": content.GetValue(doc, "name", "", true),
		"query":       content.GetValue(doc, "query", "", false),
		"version":     savedSearchVersion,
		"tags":        tags,
	}
}

// parserProperties builds the saved-search body for a plain KQL
// function parser.
func parserProperties(doc content.Document) map[string]interface{} {
	var tags []content.Tag
	tags = appendTag(tags, doc, "version", "", "version", false)
	tags = appendTag(tags, doc, "id", "", "id", false)
	tags = appendTag(tags, doc, "description", "", "description", true)

	props := map[string]interface{}{
		"category":      content.GetValue(doc, "Category", "", true),
		"displayName":   content.GetValue(doc, "FunctionName", "", false),
		"functionAlias": content.GetValue(doc, "FunctionAlias", "", false),
		"query":         content.GetValue(doc, "FunctionQuery", "", false),
		"version":       savedSearchVersion,
		"tags":          tags,
	}
	if params := normalize.FunctionParameters(doc.List("FunctionParams")); params != "" {
		props["functionParameters"] = params
	}
	return props
}

// appendTag appends the tag for key(.subKey) when present and
// non-blank; absent tags are filtered, never emitted as null.
func appendTag(tags []content.Tag, doc content.Document, key, subKey, tagName string, clean bool) []content.Tag {
	if tag, ok := content.GetTag(doc, key, subKey, tagName, clean); ok {
		tags = append(tags, tag)
	}
	return tags
}

// appendListTag appends a tag whose value is the comma-joined string
// list at key, skipped when the list is empty.
func appendListTag(tags []content.Tag, doc content.Document, key, tagName string) []content.Tag {
	items := doc.StringSlice(key)
	if len(items) == 0 {
		return tags
	}
	return append(tags, content.Tag{Name: tagName, Value: strings.Join(items, ",")})
}
