// pkg/catalog/catalog.go
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a catalog file. Both the wrapped form
// {"version": ..., "species": [...]} and a bare JSON array of rows are
// accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes catalog bytes, see Load.
func Parse(data []byte) (*Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}

	if trimmed[0] == '[' {
		var rows []map[string]interface{}
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog rows: %w", err)
		}
		return &Catalog{Species: rows}, nil
	}

	var cat Catalog
	if err := json.Unmarshal(trimmed, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &cat, nil
}

// Save writes the catalog as indented JSON.
func Save(path string, cat *Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
