// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/internal/keywords"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ExportEntry pairs a catalog paper with its ranked keywords for export.
type ExportEntry struct {
	Paper    types.Paper     `json:"paper" yaml:"paper"`
	Keywords []types.Keyword `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ExportYAML writes the catalog to dir/export.yaml in insertion order.
func (s *Store) ExportYAML(dir string) error {
	data, err := yaml.Marshal(s.exportEntries())
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, "export.yaml", data)
}

// ExportJSON writes the catalog to dir/export.json in insertion order.
func (s *Store) ExportJSON(dir string) error {
	data, err := json.MarshalIndent(s.exportEntries(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, "export.json", data)
}

func (s *Store) exportEntries() []ExportEntry {
	entries := make([]ExportEntry, len(s.papers))
	for i, p := range s.papers {
		entries[i] = ExportEntry{
			Paper:    p,
			Keywords: keywords.Extract(p.ExtractedText),
		}
	}
	return entries
}

func writeExport(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
