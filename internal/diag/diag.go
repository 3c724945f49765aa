// Package diag accumulates per-document diagnostics emitted during a
// build. Recoverable issues (classification misses, mapping failures,
// duplicate resource names) are collected here and logged, so a single
// bad document never aborts the run.
package diag

import (
	"fmt"

	"github.com/alevsk/sentinel-forge/internal/logger"
)

// Severity distinguishes informational notes from warnings and fatal
// conditions.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityFatal
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured build event tied to a document.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	DocID    string   `json:"docId,omitempty"`
	Message  string   `json:"message"`
}

// Collector accumulates diagnostics for one build. The zero value is
// ready to use. Not safe for concurrent use; the build pipeline is a
// sequential reduction.
type Collector struct {
	entries []Diagnostic
}

// Infof records an informational diagnostic.
func (c *Collector) Infof(docID, format string, args ...interface{}) {
	c.add(SeverityInfo, docID, format, args...)
	logger.Info().Str("doc", docID).Msgf(format, args...)
}

// Warnf records a warning diagnostic.
func (c *Collector) Warnf(docID, format string, args ...interface{}) {
	c.add(SeverityWarning, docID, format, args...)
	logger.Warn().Str("doc", docID).Msgf(format, args...)
}

func (c *Collector) add(sev Severity, docID, format string, args ...interface{}) {
	c.entries = append(c.entries, Diagnostic{
		Severity: sev,
		DocID:    docID,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Entries returns all recorded diagnostics in emission order.
func (c *Collector) Entries() []Diagnostic {
	return c.entries
}

// Warnings returns only the warning-severity diagnostics.
func (c *Collector) Warnings() []Diagnostic {
	var warnings []Diagnostic
	for _, d := range c.entries {
		if d.Severity == SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	return warnings
}
