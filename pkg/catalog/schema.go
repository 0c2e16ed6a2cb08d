// pkg/catalog/schema.go
package catalog

// Catalog is a species seed file. Rows are kept loosely typed because
// exports from different catalog versions name their columns differently.
type Catalog struct {
	Version     string                   `json:"version"`
	LastUpdated string                   `json:"lastUpdated"`
	Species     []map[string]interface{} `json:"species"`
}
