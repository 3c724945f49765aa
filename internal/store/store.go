// Package store provides the DocumentStore abstraction: an ordered
// sequence of parsed content documents for a directory. The pipeline
// core never touches the filesystem directly; it consumes entries
// produced here.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/logger"
)

// Error types for the store package
var (
	ErrInvalidInput = fmt.Errorf("invalid input")
)

// Entry is one parsed document with its identity.
type Entry struct {
	// ID is the document's merge/exclusion identity: the id field
	// when present, else ParserName, else FunctionName, else the
	// file stem.
	ID string
	// Path is the source file, relative to the listed directory.
	Path string
	// Doc is the parsed document.
	Doc content.Document
}

// Store yields parsed documents for a directory in stable enumeration
// order.
type Store interface {
	List(ctx context.Context, path string) ([]Entry, error)
}

// Local reads YAML and JSON content documents from the local
// filesystem.
type Local struct{}

// NewLocal creates a Local store.
func NewLocal() *Local {
	return &Local{}
}

// List walks the directory and returns every parsed document in
// lexical file order. Multi-document YAML files contribute one entry
// per document. A missing directory is reported as fs.ErrNotExist so
// callers can treat optional directories as empty.
func (s *Local) List(ctx context.Context, path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", path)
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml", ".json":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// WalkDir visits lexically, but sort anyway so enumeration order
	// is an explicit contract rather than an accident of traversal.
	sort.Strings(files)

	var entries []Entry
	for _, file := range files {
		docs, err := parseFile(file)
		if err != nil {
			logger.Warn().Msgf("skipping %s: %v", file, err)
			continue
		}
		rel, err := filepath.Rel(path, file)
		if err != nil {
			rel = file
		}
		for _, doc := range docs {
			if len(doc) == 0 {
				continue
			}
			entries = append(entries, Entry{
				ID:   documentID(doc, rel),
				Path: rel,
				Doc:  doc,
			})
		}
	}
	return entries, nil
}

// parseFile decodes one content file into its documents.
func parseFile(path string) ([]content.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrInvalidInput
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return []content.Document{doc}, nil
	}

	var docs []content.Document
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	for {
		var obj map[string]interface{}
		err := decoder.Decode(&obj)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		docs = append(docs, obj)
	}
	return docs, nil
}

// documentID derives the merge identity for a document.
func documentID(doc content.Document, path string) string {
	for _, key := range []string{"id", "ParserName", "FunctionName"} {
		if id := content.GetValue(doc, key, "", false); id != "" {
			return id
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
