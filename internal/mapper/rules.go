package mapper

import (
	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/diag"
	"github.com/alevsk/sentinel-forge/internal/normalize"
)

// analyticsRuleProperties builds the richest body: Scheduled and NRT
// detection rules.
func analyticsRuleProperties(doc content.Document, kind classifier.ContentKind, diags *diag.Collector) map[string]interface{} {
	id := content.GetValue(doc, "id", "", false)

	props := map[string]interface{}{
		"displayName":         content.GetValue(doc, "name", "", true),
		"description":         content.GetValue(doc, "description", "", true),
		"query":               content.GetValue(doc, "query", "", false),
		"severity":            stringOr(doc, "severity", "Medium"),
		"enabled":             doc.Bool("enabled", true),
		"suppressionDuration": normalize.Duration(stringOr(doc, "suppressionDuration", "PT1H")),
		"suppressionEnabled":  doc.Bool("suppressionEnabled", false),
		"templateVersion":     stringOr(doc, "version", "1.0.0"),
	}

	if doc.Has("alertRuleTemplateName") {
		props["alertRuleTemplateName"] = content.GetValue(doc, "alertRuleTemplateName", "", false)
	}

	if tactics := doc.StringSlice("tactics"); len(tactics) > 0 {
		props["tactics"] = tactics
	}

	// relevantTechniques decomposes into separate technique and
	// sub-technique arrays; empty arrays are omitted entirely.
	techniques, subTechniques := normalize.SplitTechniques(doc.StringSlice("relevantTechniques"))
	if len(techniques) > 0 {
		props["techniques"] = techniques
	}
	if len(subTechniques) > 0 {
		props["subTechniques"] = subTechniques
	}

	// Scheduling fields only make sense on scheduled rules but are
	// copied whenever the author set them; NRT documents normally
	// omit them.
	for _, key := range []string{"queryFrequency", "queryPeriod"} {
		if doc.Has(key) {
			props[key] = normalize.Duration(content.GetValue(doc, key, "", false))
		}
	}
	if doc.Has("triggerOperator") {
		props["triggerOperator"] = normalize.TriggerOperator(content.GetValue(doc, "triggerOperator", "", false))
	}
	if doc.Has("triggerThreshold") {
		props["triggerThreshold"] = copyValue(doc["triggerThreshold"])
	}

	// Entity mappings are force-wrapped into a list: authors write a
	// single mapping as a bare object often enough that the schema
	// coercion lives here.
	for _, key := range []string{"entityMappings", "sentinelEntitiesMappings"} {
		if v, ok := doc[key]; ok && v != nil {
			if list, isList := v.([]interface{}); isList {
				props[key] = copyValue(list)
			} else {
				props[key] = []interface{}{copyValue(v)}
			}
		}
	}

	for _, key := range []string{"alertDetailsOverride", "customDetails", "eventGroupingSettings"} {
		if v, ok := doc[key]; ok && v != nil {
			props[key] = copyValue(v)
		}
	}

	if incident := doc.Map("incidentConfiguration"); incident != nil {
		props["incidentConfiguration"] = normalizeIncidentConfiguration(incident)
	}

	if id == "" && diags != nil {
		diags.Warnf(id, "%s rule %q has no id; alert rule name will be empty", kind, props["displayName"])
	}

	return props
}

// normalizeIncidentConfiguration copies the incident configuration and
// rewrites groupingConfiguration.lookbackDuration in place when it is
// a raw shorthand duration.
func normalizeIncidentConfiguration(incident content.Document) map[string]interface{} {
	out := copyValue(map[string]interface{}(incident)).(map[string]interface{})
	grouping, ok := out["groupingConfiguration"].(map[string]interface{})
	if !ok {
		return out
	}
	if lookback, ok := grouping["lookbackDuration"].(string); ok && normalize.IsRawDuration(lookback) {
		grouping["lookbackDuration"] = normalize.Duration(lookback)
	}
	return out
}

// incidentCreationProperties builds the body for Microsoft security
// incident-creation rules.
func incidentCreationProperties(doc content.Document) map[string]interface{} {
	props := map[string]interface{}{
		"alertRuleTemplateName": stringOr(doc, "alertRuleTemplateName", content.GetValue(doc, "id", "", false)),
		"enabled":               doc.Bool("enabled", true),
		"description":           content.GetValue(doc, "description", "", true),
		"displayName":           content.GetValue(doc, "name", "", true),
		"productFilter":         content.GetValue(doc, "productFilter", "", false),
	}
	for _, key := range []string{"severitiesFilter", "displayNamesFilter", "displayNamesExcludeFilter"} {
		if v, ok := doc[key]; ok && v != nil {
			props[key] = copyValue(v)
		}
	}
	return props
}

// templateRuleProperties builds the minimal body shared by Fusion,
// MLBehaviorAnalytics and ThreatIntelligence rules, which deploy from
// a built-in template.
func templateRuleProperties(doc content.Document) map[string]interface{} {
	props := map[string]interface{}{
		"alertRuleTemplateName": stringOr(doc, "alertRuleTemplateName", content.GetValue(doc, "id", "", false)),
		"enabled":               doc.Bool("enabled", true),
	}
	for _, key := range []string{"scenarioExclusionPatterns", "sourceSettings"} {
		if v, ok := doc[key]; ok && v != nil {
			props[key] = copyValue(v)
		}
	}
	return props
}
