// Package mapper projects classified content documents into the
// kind-specific property bodies required by the deployment schema.
package mapper

import (
	"fmt"

	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
	"github.com/alevsk/sentinel-forge/internal/diag"
)

// Error types for the mapper package
var (
	// ErrKindNotSupported marks kinds the mapper cannot project yet.
	ErrKindNotSupported = fmt.Errorf("content kind not yet supported")
	// ErrPlaybookLinkNotFound is fatal: an automation rule without
	// its playbook link cannot be deployed correctly, and emitting a
	// best-effort partial resource is worse than failing.
	ErrPlaybookLinkNotFound = fmt.Errorf("playbook link not found")
)

// Build returns the schema-correct property body for a classified
// document. Recoverable failures are plain errors; only
// ErrPlaybookLinkNotFound must abort the whole build.
func Build(doc content.Document, kind classifier.ContentKind, cfg *deployconfig.Config, diags *diag.Collector) (map[string]interface{}, error) {
	switch kind {
	case classifier.KindASIM:
		return asimProperties(doc), nil
	case classifier.KindHunt:
		return huntProperties(doc), nil
	case classifier.KindParser:
		return parserProperties(doc), nil
	case classifier.KindScheduled, classifier.KindNRT:
		return analyticsRuleProperties(doc, kind, diags), nil
	case classifier.KindMicrosoftSecurityIncidentCreation:
		return incidentCreationProperties(doc), nil
	case classifier.KindFusion, classifier.KindMLBehaviorAnalytics, classifier.KindThreatIntelligence:
		return templateRuleProperties(doc), nil
	case classifier.KindRunPlaybook:
		return runPlaybookProperties(doc, kind, cfg)
	case classifier.KindConnector:
		// Detected but intentionally unmapped: connectors deploy
		// through the reserved JSON path, not this mapper.
		return nil, fmt.Errorf("%w: %s", ErrKindNotSupported, kind)
	default:
		return fallbackProperties(doc), nil
	}
}

// fallbackProperties is the minimal body for kinds without a dedicated
// mapping.
func fallbackProperties(doc content.Document) map[string]interface{} {
	return map[string]interface{}{
		"alertRuleTemplateName": content.GetValue(doc, "id", "", false),
		"enabled":               doc.Bool("enabled", true),
	}
}

// stringOr returns the trimmed scalar at key, or def when blank.
func stringOr(doc content.Document, key, def string) string {
	if v := content.GetValue(doc, key, "", false); v != "" {
		return v
	}
	return def
}

// copyValue deep-copies a generic document value so transforms never
// mutate the parsed input.
func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return val
	}
}
