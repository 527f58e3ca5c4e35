package db

import "fmt"

// StorageType is the document storage backing an FT index. Listings are
// flat hashes, so HASH is the only storage in use.
type StorageType string

// StorageHash indexes documents stored as Redis hashes.
const StorageHash StorageType = "HASH"

// IndexFieldType is the FT field type.
type IndexFieldType string

// Supported field types.
const (
	IndexFieldTag     IndexFieldType = "TAG"
	IndexFieldText    IndexFieldType = "TEXT"
	IndexFieldNumeric IndexFieldType = "NUMERIC"
)

// IndexField is a single field in an FT index schema.
type IndexField struct {
	Name             string
	Type             IndexFieldType
	TagSeparator     string
	TagCaseSensitive bool
	Sortable         bool
}

// IndexDefinition describes an FT index.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// Validate checks the definition for correctness.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return fmt.Errorf("index name is required")
	}
	if len(idx.Fields) == 0 {
		return fmt.Errorf("index %q needs at least one field", idx.Name)
	}
	seen := make(map[string]bool, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("index %q has a field with no name", idx.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("index %q declares field %q twice", idx.Name, f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case IndexFieldTag, IndexFieldText, IndexFieldNumeric:
		default:
			return fmt.Errorf("index %q field %q has unknown type %q", idx.Name, f.Name, f.Type)
		}
	}
	return nil
}

// Field returns the schema entry for a column name.
func (idx *IndexDefinition) Field(name string) (IndexField, bool) {
	if idx == nil {
		return IndexField{}, false
	}
	for i := range idx.Fields {
		if idx.Fields[i].Name == name {
			return idx.Fields[i], true
		}
	}
	return IndexField{}, false
}
