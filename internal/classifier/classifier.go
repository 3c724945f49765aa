// Package classifier assigns a content kind to an untyped security
// content document using ordered structural signatures.
//
// Most documents carry no explicit type tag, so classification is
// purely structural: an ordered cascade of signature checks where the
// first match wins. The order is load-bearing. Some signatures are
// relaxed subsets of others (a hunting query is a Scheduled rule
// without scheduling fields), so the most specific signatures are
// checked first and must not be reordered.
package classifier

import (
	"regexp"

	"github.com/alevsk/sentinel-forge/internal/content"
)

// ContentKind is the semantic category of a content document.
type ContentKind string

const (
	KindConnector                         ContentKind = "Connector"
	KindScheduled                         ContentKind = "Scheduled"
	KindNRT                               ContentKind = "NRT"
	KindMicrosoftSecurityIncidentCreation ContentKind = "MicrosoftSecurityIncidentCreation"
	KindFusion                            ContentKind = "Fusion"
	KindMLBehaviorAnalytics               ContentKind = "MLBehaviorAnalytics"
	KindThreatIntelligence                ContentKind = "ThreatIntelligence"
	KindParser                            ContentKind = "Parser"
	KindASIM                              ContentKind = "ASIM"
	KindHunt                              ContentKind = "Hunt"
	KindRunPlaybook                       ContentKind = "RunPlaybook"
	KindWorkbook                          ContentKind = "Workbook"
	KindUnknown                           ContentKind = "Unknown"

	// Reserved automation-rule kinds. The resource builder accepts
	// them; the classifier does not detect them yet.
	KindAddIncidentTask  ContentKind = "AddIncidentTask"
	KindModifyProperties ContentKind = "ModifyProperties"
)

// workbookVersionPattern matches the version field of workbook
// documents, e.g. "Notebook/1.0".
var workbookVersionPattern = regexp.MustCompile(`^Notebook/\d+\.\d+`)

// signature is a single structural check. It returns the detected
// kind and whether the document matched.
type signature func(doc content.Document) (ContentKind, bool)

// signatures is the ordered cascade. First match wins.
var signatures = []signature{
	matchWorkbook,
	matchRunPlaybook,
	matchConnector,
	matchScheduledOrNRT,
	matchIncidentCreation,
	matchTemplateRule,
	matchParser,
	matchASIM,
	matchHunt,
}

// Classify maps a document to its content kind. It never fails:
// empty/nil documents and documents matching no signature yield
// KindUnknown.
func Classify(doc content.Document) ContentKind {
	if len(doc) == 0 {
		return KindUnknown
	}
	for _, match := range signatures {
		if kind, ok := match(doc); ok {
			return kind
		}
	}
	return KindUnknown
}

// hasAll reports whether the document has every one of the given
// top-level keys.
func hasAll(doc content.Document, keys ...string) bool {
	for _, key := range keys {
		if !doc.Has(key) {
			return false
		}
	}
	return true
}

// nonBlank reports whether every one of the given keys holds a
// non-blank scalar.
func nonBlank(doc content.Document, keys ...string) bool {
	for _, key := range keys {
		if content.IsBlank(doc, key) {
			return false
		}
	}
	return true
}

func matchWorkbook(doc content.Document) (ContentKind, bool) {
	if !doc.Has("items") {
		return "", false
	}
	if !workbookVersionPattern.MatchString(content.GetValue(doc, "version", "", false)) {
		return "", false
	}
	if content.IsBlank(doc, "$schema") {
		return "", false
	}
	return KindWorkbook, true
}

// matchRunPlaybook detects the locally-defined automation-rule shape:
// an automation rule whose single action runs a playbook. This is an
// internal convention, not an official schema; future official
// automation-rule schemas are not expected to match it.
func matchRunPlaybook(doc content.Document) (ContentKind, bool) {
	if !hasAll(doc, "id", "displayName", "order", "triggeringLogic", "actions") {
		return "", false
	}
	if !nonBlank(doc, "id", "displayName") {
		return "", false
	}
	actions := doc.List("actions")
	if len(actions) != 1 {
		return "", false
	}
	action, ok := actions[0].(map[string]interface{})
	if !ok {
		return "", false
	}
	if content.GetValue(content.Document(action), "actionType", "", false) != "RunPlaybook" {
		return "", false
	}
	return KindRunPlaybook, true
}

func matchConnector(doc content.Document) (ContentKind, bool) {
	if !hasAll(doc, "connectivityCriterias", "dataTypes", "descriptionMarkdown", "graphQueries", "id", "publisher", "title") {
		return "", false
	}
	if !nonBlank(doc, "id", "title") {
		return "", false
	}
	return KindConnector, true
}

// matchScheduledOrNRT owns the explicit kind field for analytics
// rules. It must run before the hunt fallback: a hunt signature is a
// relaxed subset of these fields.
func matchScheduledOrNRT(doc content.Document) (ContentKind, bool) {
	kind := content.GetValue(doc, "kind", "", false)
	if kind != string(KindScheduled) && kind != string(KindNRT) {
		return "", false
	}
	if !hasAll(doc, "description", "id", "name", "query", "relevantTechniques", "severity", "tactics") {
		return "", false
	}
	if !nonBlank(doc, "id", "name") {
		return "", false
	}
	return ContentKind(kind), true
}

func matchIncidentCreation(doc content.Document) (ContentKind, bool) {
	if content.GetValue(doc, "kind", "", false) != string(KindMicrosoftSecurityIncidentCreation) {
		return "", false
	}
	if !nonBlank(doc, "id", "name", "productFilter") {
		return "", false
	}
	return KindMicrosoftSecurityIncidentCreation, true
}

// matchTemplateRule detects the template-referencing rule kinds that
// share one minimal shape: Fusion, MLBehaviorAnalytics and
// ThreatIntelligence.
func matchTemplateRule(doc content.Document) (ContentKind, bool) {
	kind := content.GetValue(doc, "kind", "", false)
	switch ContentKind(kind) {
	case KindFusion, KindMLBehaviorAnalytics, KindThreatIntelligence:
	default:
		return "", false
	}
	if !nonBlank(doc, "id", "name") {
		return "", false
	}
	return ContentKind(kind), true
}

func matchParser(doc content.Document) (ContentKind, bool) {
	if !hasAll(doc, "Category", "FunctionAlias", "FunctionName", "FunctionQuery", "id") {
		return "", false
	}
	if !nonBlank(doc, "FunctionName", "id") {
		return "", false
	}
	return KindParser, true
}

func matchASIM(doc content.Document) (ContentKind, bool) {
	if !hasAll(doc, "ParserName", "ParserQuery") {
		return "", false
	}
	if !doc.Map("Normalization").Has("Schema") {
		return "", false
	}
	if content.GetValue(doc, "Parser", "Title", false) == "" {
		return "", false
	}
	if content.IsBlank(doc, "ParserName") {
		return "", false
	}
	return KindASIM, true
}

// matchHunt is the permissive fallback for hunting queries and must
// stay last.
func matchHunt(doc content.Document) (ContentKind, bool) {
	if !hasAll(doc, "description", "id", "name", "query", "tactics") {
		return "", false
	}
	if !nonBlank(doc, "id", "name") {
		return "", false
	}
	return KindHunt, true
}
