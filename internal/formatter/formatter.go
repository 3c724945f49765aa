// Package formatter renders build and classification summaries for
// human and machine consumption.
package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/sentinel-forge/internal/builder"
	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/diag"
)

// Classification is one classified document in a classify summary.
type Classification struct {
	Path string                 `json:"path" yaml:"path"`
	ID   string                 `json:"id" yaml:"id"`
	Kind classifier.ContentKind `json:"kind" yaml:"kind"`
}

// Summary is the unified result type rendered by all formatters.
type Summary struct {
	Customer        string              `json:"customer,omitempty" yaml:"customer,omitempty"`
	Resources       []*builder.Resource `json:"resources,omitempty" yaml:"resources,omitempty"`
	Classifications []Classification    `json:"classifications,omitempty" yaml:"classifications,omitempty"`
	Diagnostics     []diag.Diagnostic   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Formatter defines the interface for formatting data
type Formatter interface {
	Format(data Summary) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats data as JSON
	TypeJSON Type = "json"
	// TypeYAML formats data as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats data as a table
	TypeTable Type = "table"
)

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Table implements table formatting
type Table struct{}

// Format formats data as JSON
func (j *JSON) Format(data Summary) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats data as YAML
func (y *YAML) Format(data Summary) (string, error) {
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}

// Format formats data as tables using go-pretty/v6/table
func (t *Table) Format(data Summary) (string, error) {
	var out string

	if len(data.Resources) > 0 {
		resourceTable := table.NewWriter()
		resourceTable.SetOutputMirror(nil)
		resourceTable.SetStyle(table.StyleLight)
		resourceTable.Style().Options.SeparateColumns = true
		resourceTable.SetTitle("TEMPLATE RESOURCES")
		resourceTable.AppendHeader(table.Row{
			"NAME",
			"KIND",
			"TYPE",
		})
		for _, resource := range data.Resources {
			resourceTable.AppendRow(table.Row{
				resource.Name,
				resource.Kind,
				resource.Type,
			})
		}
		out += resourceTable.Render() + "\n"
	}

	if len(data.Classifications) > 0 {
		classTable := table.NewWriter()
		classTable.SetOutputMirror(nil)
		classTable.SetStyle(table.StyleLight)
		classTable.Style().Options.SeparateColumns = true
		classTable.SetTitle("CONTENT CLASSIFICATION")
		classTable.AppendHeader(table.Row{
			"PATH",
			"ID",
			"KIND",
		})
		for _, c := range data.Classifications {
			classTable.AppendRow(table.Row{
				c.Path,
				c.ID,
				c.Kind,
			})
		}
		classTable.SortBy([]table.SortBy{
			{Name: "PATH", Mode: table.Asc},
		})
		out += classTable.Render() + "\n"
	}

	if len(data.Diagnostics) > 0 {
		diagTable := table.NewWriter()
		diagTable.SetOutputMirror(nil)
		diagTable.SetStyle(table.StyleLight)
		diagTable.Style().Options.SeparateColumns = true
		diagTable.SetTitle("DIAGNOSTICS")
		diagTable.AppendHeader(table.Row{
			"SEVERITY",
			"DOCUMENT",
			"MESSAGE",
		})
		for _, d := range data.Diagnostics {
			diagTable.AppendRow(table.Row{
				d.Severity.String(),
				d.DocID,
				d.Message,
			})
		}
		out += diagTable.Render() + "\n"
	}

	if out == "" {
		out = "nothing to report\n"
	}
	return out, nil
}

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeJSON, TypeYAML, TypeTable:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown formatter type: %s", s)
	}
}

// NewFormatter creates a new formatter of the specified type
func NewFormatter(t Type) (Formatter, error) {
	switch t {
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", t)
	}
}
