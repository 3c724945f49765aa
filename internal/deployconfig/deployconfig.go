// Package deployconfig loads and validates per-customer deployment
// configuration. A build cannot proceed without a valid configuration,
// so every validation failure here is fatal.
package deployconfig

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// Error types for the deployconfig package
var (
	ErrInvalidConfig = fmt.Errorf("invalid deployment config")
)

// Connector is one data-connector entry with its enablement state.
type Connector struct {
	ID      string `yaml:"id" json:"id"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Settings holds the required per-customer deployment settings.
type Settings struct {
	CustomerName            string      `yaml:"CustomerName" json:"CustomerName"`
	Location                string      `yaml:"Location" json:"Location"`
	WorkspaceName           string      `yaml:"Workspace-Name" json:"Workspace-Name"`
	AutomationResourceGroup string      `yaml:"Automation-Resource-Group" json:"Automation-Resource-Group"`
	Connectors              []Connector `yaml:"Connectors" json:"Connectors"`
}

// Config is the parsed customer deployment configuration. Loaded once
// per customer build and read-only for its duration.
type Config struct {
	Settings *Settings `yaml:"Settings" json:"Settings"`
	// ExcludeRules lists content IDs dropped unconditionally from
	// either source.
	ExcludeRules []string `yaml:"ExcludeRules" json:"ExcludeRules,omitempty"`
	// ContentLinks maps content kind -> rule ID -> playbook name,
	// used to resolve automation-rule playbook references.
	ContentLinks map[string]map[string]string `yaml:"ContentLinks" json:"ContentLinks,omitempty"`
}

// Store loads deployment configuration for a customer.
type Store interface {
	Load(customer string) (*Config, error)
}

// EnabledConnectorIDs returns the IDs of all enabled connectors.
func (c *Config) EnabledConnectorIDs() []string {
	var ids []string
	for _, connector := range c.Settings.Connectors {
		if connector.Enabled {
			ids = append(ids, connector.ID)
		}
	}
	return ids
}

// PlaybookLink resolves the playbook name linked to a rule ID for the
// given content kind. The second return value is false when no link
// exists.
func (c *Config) PlaybookLink(kind, ruleID string) (string, bool) {
	links, ok := c.ContentLinks[kind]
	if !ok {
		return "", false
	}
	name, ok := links[ruleID]
	return name, ok
}

// Validate checks the configuration invariants. Absence of Settings or
// Connectors, or a blank required setting, is a fatal configuration
// error.
func (c *Config) Validate() error {
	if c.Settings == nil {
		return fmt.Errorf("%w: missing Settings section", ErrInvalidConfig)
	}
	if c.Settings.Connectors == nil {
		return fmt.Errorf("%w: missing Settings.Connectors", ErrInvalidConfig)
	}

	required := map[string]string{
		"CustomerName":              c.Settings.CustomerName,
		"Location":                  c.Settings.Location,
		"Workspace-Name":            c.Settings.WorkspaceName,
		"Automation-Resource-Group": c.Settings.AutomationResourceGroup,
	}
	for _, key := range []string{"CustomerName", "Location", "Workspace-Name", "Automation-Resource-Group"} {
		if required[key] == "" {
			return fmt.Errorf("%w: missing required setting %s", ErrInvalidConfig, key)
		}
	}
	return nil
}

// Parse decodes and validates a deployment configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling deployment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileStore loads customer configuration from
// <root>/<customer>/config.yaml.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at the customers directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Load reads and validates the configuration for the given customer.
func (s *FileStore) Load(customer string) (*Config, error) {
	path := filepath.Join(s.root, customer, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
