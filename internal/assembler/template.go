package assembler

import "github.com/alevsk/sentinel-forge/internal/builder"

// TemplateSchema is the ARM deployment-template schema every compiled
// template declares.
const TemplateSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"

// Template is the final artifact of one customer build: created once,
// populated incrementally, serialized once at the end.
type Template struct {
	Schema         string                 `json:"$schema"`
	ContentVersion string                 `json:"contentVersion"`
	Parameters     map[string]interface{} `json:"parameters"`
	Resources      []*builder.Resource    `json:"resources"`
}

// NewTemplate creates an empty template with the fixed top-level
// shape.
func NewTemplate() *Template {
	return &Template{
		Schema:         TemplateSchema,
		ContentVersion: "1.0.0.0",
		Parameters: map[string]interface{}{
			"workspace": map[string]interface{}{
				"type": "string",
				"metadata": map[string]interface{}{
					"description": "Name of the Log Analytics workspace the content is deployed into",
				},
			},
			"workspace-location": map[string]interface{}{
				"type":         "string",
				"defaultValue": "",
				"metadata": map[string]interface{}{
					"description": "Location of the workspace; defaults to the resource group location when empty",
				},
			},
		},
		Resources: make([]*builder.Resource, 0),
	}
}
