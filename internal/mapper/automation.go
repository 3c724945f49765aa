package mapper

import (
	"fmt"

	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
)

// runPlaybookProperties builds the automation-rule body for a rule
// whose single action runs a playbook. The playbook's logical name
// must be resolvable through the deployment config's content links;
// without it the rule cannot reference its logic app, so the miss is
// fatal rather than producing an empty action block.
func runPlaybookProperties(doc content.Document, kind classifier.ContentKind, cfg *deployconfig.Config) (map[string]interface{}, error) {
	id := content.GetValue(doc, "id", "", false)

	playbook, ok := cfg.PlaybookLink(string(kind), id)
	if !ok {
		return nil, fmt.Errorf("%w: no ContentLinks.%s entry for rule %s", ErrPlaybookLinkNotFound, kind, id)
	}

	// Deployed playbooks follow the {customer}-{playbook} naming
	// convention inside the automation resource group.
	logicAppID := fmt.Sprintf("[resourceId('%s', 'Microsoft.Logic/workflows', '%s-%s')]",
		cfg.Settings.AutomationResourceGroup, cfg.Settings.CustomerName, playbook)

	props := map[string]interface{}{
		"displayName": content.GetValue(doc, "displayName", "", true),
		"order":       copyValue(doc["order"]),
		"actions": []interface{}{
			map[string]interface{}{
				"order":      1,
				"actionType": "RunPlaybook",
				"actionConfiguration": map[string]interface{}{
					"logicAppResourceId": logicAppID,
					"tenantId":           "[subscription().tenantId]",
				},
			},
		},
	}
	if v, ok := doc["triggeringLogic"]; ok && v != nil {
		props["triggeringLogic"] = copyValue(v)
	}
	return props, nil
}
