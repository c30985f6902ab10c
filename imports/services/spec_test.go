package services

import "testing"

func TestGetImportSpec(t *testing.T) {
	t.Parallel()

	if _, ok := GetImportSpec("students"); !ok {
		t.Error("students spec must be registered")
	}
	if _, ok := GetImportSpec("staff"); !ok {
		t.Error("staff spec must be registered")
	}
	if _, ok := GetImportSpec("teachers"); ok {
		t.Error("unknown entity types must not resolve")
	}
}

func TestSupportedEntityTypesAllResolve(t *testing.T) {
	t.Parallel()

	for _, entityType := range SupportedEntityTypes() {
		spec, ok := GetImportSpec(entityType)
		if !ok {
			t.Errorf("entity type %q listed but not registered", entityType)
			continue
		}
		if spec.EntityType != entityType {
			t.Errorf("spec for %q reports entity type %q", entityType, spec.EntityType)
		}
	}
}

func TestImportSpecsBusinessKeyIsDeclaredColumn(t *testing.T) {
	t.Parallel()

	for _, entityType := range SupportedEntityTypes() {
		spec, _ := GetImportSpec(entityType)

		found := false
		for _, col := range spec.Columns {
			if col.Key == spec.BusinessKey {
				found = true
				if !col.Required {
					t.Errorf("%s: business key column %s must be required", entityType, col.Key)
				}
			}
		}
		if !found {
			t.Errorf("%s: business key %s is not a declared column", entityType, spec.BusinessKey)
		}
		if spec.MaxRows <= 0 || spec.MaxFileBytes <= 0 {
			t.Errorf("%s: ceilings must be positive, got rows=%d bytes=%d", entityType, spec.MaxRows, spec.MaxFileBytes)
		}
	}
}
