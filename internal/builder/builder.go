// Package builder wraps kind-specific property bodies in the ARM
// resource envelope the deployment format requires.
package builder

import (
	"fmt"

	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
	"github.com/alevsk/sentinel-forge/internal/diag"
	"github.com/alevsk/sentinel-forge/internal/mapper"
)

// ARM resource envelopes by kind family.
const (
	savedSearchType       = "Microsoft.OperationalInsights/workspaces/savedSearches"
	savedSearchAPIVersion = "2020-08-01"

	alertRuleType       = "Microsoft.OperationalInsights/workspaces/providers/alertRules"
	alertRuleAPIVersion = "2022-11-01-preview"

	automationRuleType       = "Microsoft.SecurityInsights/automationRules"
	automationRuleAPIVersion = "2023-02-01"

	workspaceScopeExpr = "[concat('Microsoft.OperationalInsights/workspaces/', parameters('workspace'))]"
)

// Resource is one template resource. Field order matches the
// deployment schema's conventional layout.
type Resource struct {
	Type       string                 `json:"type"`
	APIVersion string                 `json:"apiVersion"`
	Name       string                 `json:"name"`
	Kind       string                 `json:"kind,omitempty"`
	Scope      string                 `json:"scope,omitempty"`
	Properties map[string]interface{} `json:"properties"`
}

// Build maps the document through the property mapper and chooses the
// envelope for its kind family.
func Build(doc content.Document, kind classifier.ContentKind, cfg *deployconfig.Config, diags *diag.Collector) (*Resource, error) {
	props, err := mapper.Build(doc, kind, cfg, diags)
	if err != nil {
		return nil, err
	}

	switch kind {
	case classifier.KindASIM, classifier.KindHunt, classifier.KindParser:
		return &Resource{
			Type:       savedSearchType,
			APIVersion: savedSearchAPIVersion,
			Name:       savedSearchName(doc, kind),
			Properties: props,
		}, nil

	case classifier.KindRunPlaybook, classifier.KindAddIncidentTask, classifier.KindModifyProperties:
		return &Resource{
			Type:       automationRuleType,
			APIVersion: automationRuleAPIVersion,
			Name:       content.GetValue(doc, "id", "", false),
			Scope:      workspaceScopeExpr,
			Properties: props,
		}, nil

	case classifier.KindFusion,
		classifier.KindMicrosoftSecurityIncidentCreation,
		classifier.KindMLBehaviorAnalytics,
		classifier.KindNRT,
		classifier.KindScheduled,
		classifier.KindThreatIntelligence:
		return &Resource{
			Type:       alertRuleType,
			APIVersion: alertRuleAPIVersion,
			Name:       alertRuleName(content.GetValue(doc, "id", "", false)),
			Kind:       string(kind),
			Properties: props,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", mapper.ErrKindNotSupported, kind)
	}
}

// savedSearchName derives the workspace-prefixed saved-search name
// from the kind-specific name field.
func savedSearchName(doc content.Document, kind classifier.ContentKind) string {
	var name string
	switch kind {
	case classifier.KindASIM:
		name = content.GetValue(doc, "ParserName", "", false)
	case classifier.KindParser:
		name = content.GetValue(doc, "FunctionName", "", false)
	default:
		name = content.GetValue(doc, "id", "", false)
	}
	return fmt.Sprintf("[concat(parameters('workspace'), '/%s')]", name)
}

// alertRuleName builds the workspace + provider segment + rule id name
// expression used by all alert-rule kinds.
func alertRuleName(id string) string {
	return fmt.Sprintf("[concat(parameters('workspace'),'/Microsoft.SecurityInsights/','%s')]", id)
}
