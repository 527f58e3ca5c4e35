package db

import (
	"strings"
	"testing"
)

func TestNewIndex_Build(t *testing.T) {
	def, err := NewIndex("listings:idx").
		OnHash().
		Prefix("listing:").
		Tag("city").
		TagWithOpts("tags", ",", false).
		Text("business_name").
		Numeric("price").
		NumericSortable("sponsored").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Name != "listings:idx" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.StorageType != StorageHash {
		t.Errorf("StorageType = %q", def.StorageType)
	}
	if len(def.Fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(def.Fields))
	}

	tags, ok := def.Field("tags")
	if !ok || tags.Type != IndexFieldTag || tags.TagSeparator != "," {
		t.Errorf("tags field = %+v", tags)
	}
	sponsored, ok := def.Field("sponsored")
	if !ok || !sponsored.Sortable {
		t.Errorf("sponsored field = %+v, want sortable", sponsored)
	}
	if _, ok := def.Field("missing"); ok {
		t.Error("Field() reported a missing column")
	}
}

func TestBuild_RejectsInvalid(t *testing.T) {
	if _, err := NewIndex("").Tag("city").Build(); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Error("expected error for empty schema")
	}
	if _, err := NewIndex("idx").Tag("city").Tag("city").Build(); err == nil {
		t.Error("expected error for duplicate field")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("idx").Prefix("l:").Tag("city").Numeric("price").MustBuild()
	s := def.String()
	for _, part := range []string{"FT.CREATE", "idx", "ON HASH", "PREFIX l:", "SCHEMA", "city TAG", "price NUMERIC"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}
