// Package assembler orchestrates one customer build: it merges the
// shared and customer document sets, drives each surviving document
// through classification and resource building, and accumulates the
// result into a single deployment template.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/alevsk/sentinel-forge/internal/builder"
	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
	"github.com/alevsk/sentinel-forge/internal/diag"
	"github.com/alevsk/sentinel-forge/internal/logger"
	"github.com/alevsk/sentinel-forge/internal/mapper"
	"github.com/alevsk/sentinel-forge/internal/merge"
	"github.com/alevsk/sentinel-forge/internal/store"
)

// Options contains configuration options for the assembler
type Options struct {
	// SharedDir is the shared content library root.
	SharedDir string
	// CustomersDir contains one directory per customer, each with a
	// config.yaml plus Rules and Artifacts directories.
	CustomersDir string
}

// Assembler compiles one customer's content into a template.
type Assembler struct {
	docs    store.Store
	configs deployconfig.Store
	opts    *Options
}

// New creates an Assembler over the given document and config stores.
func New(docs store.Store, configs deployconfig.Store, opts *Options) *Assembler {
	return &Assembler{
		docs:    docs,
		configs: configs,
		opts:    opts,
	}
}

// Build runs a full customer build. Recoverable per-document issues
// are recorded on the returned collector; a fatal error (bad config,
// missing playbook link) aborts with no partial template.
func (a *Assembler) Build(ctx context.Context, customer string) (*Template, *diag.Collector, error) {
	diags := &diag.Collector{}

	cfg, err := a.configs.Load(customer)
	if err != nil {
		return nil, diags, fmt.Errorf("failed to load deployment config for %s: %w", customer, err)
	}

	shared, err := a.listDocs(ctx, a.opts.SharedDir, false)
	if err != nil {
		return nil, diags, err
	}

	// Customer content comes from two passes, Rules then Artifacts,
	// feeding one override set in enumeration order.
	customerRoot := filepath.Join(a.opts.CustomersDir, customer)
	rules, err := a.listDocs(ctx, filepath.Join(customerRoot, "Rules"), true)
	if err != nil {
		return nil, diags, err
	}
	artifacts, err := a.listDocs(ctx, filepath.Join(customerRoot, "Artifacts"), true)
	if err != nil {
		return nil, diags, err
	}
	customerDocs := append(rules, artifacts...)

	resolved := merge.Resolve(shared, customerDocs, cfg.ExcludeRules, cfg.EnabledConnectorIDs())
	logger.Info().Msgf("resolved %d documents for %s (%d shared, %d customer)",
		len(resolved), customer, len(shared), len(customerDocs))

	tmpl, err := Assemble(resolved, cfg, diags)
	if err != nil {
		return nil, diags, err
	}
	return tmpl, diags, nil
}

// Assemble converts resolved documents into resources, suppressing
// duplicate names first-writer-wins, and returns the populated
// template. Exposed separately from Build so callers holding already
// parsed documents (the API server) can assemble without a document
// store.
func Assemble(resolved []store.Entry, cfg *deployconfig.Config, diags *diag.Collector) (*Template, error) {
	tmpl := NewTemplate()
	tmpl.Parameters["workspace-location"].(map[string]interface{})["defaultValue"] = cfg.Settings.Location

	seen := make(map[string]struct{})
	for _, entry := range resolved {
		kind := classifier.Classify(entry.Doc)
		if kind == classifier.KindUnknown {
			diags.Warnf(entry.ID, "document %s matches no content signature, skipping", entry.Path)
			continue
		}

		resource, err := builder.Build(entry.Doc, kind, cfg, diags)
		if err != nil {
			// An automation rule without its playbook link cannot
			// be deployed correctly; refuse to emit a partial
			// template.
			if errors.Is(err, mapper.ErrPlaybookLinkNotFound) {
				return nil, fmt.Errorf("document %s: %w", entry.Path, err)
			}
			diags.Warnf(entry.ID, "document %s (%s): %v, skipping", entry.Path, kind, err)
			continue
		}

		if _, dup := seen[resource.Name]; dup {
			diags.Warnf(entry.ID, "duplicate resource name %s from %s, keeping first", resource.Name, entry.Path)
			continue
		}
		seen[resource.Name] = struct{}{}
		tmpl.Resources = append(tmpl.Resources, resource)
	}
	return tmpl, nil
}

// listDocs lists a document directory. Optional directories that do
// not exist are treated as empty.
func (a *Assembler) listDocs(ctx context.Context, path string, optional bool) ([]store.Entry, error) {
	entries, err := a.docs.List(ctx, path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return entries, nil
}
