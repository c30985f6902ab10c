package services

import (
	"context"
)

// ResolveDuplicates marks rows whose business key already exists in the
// persisted store, and, when the spec demands batch uniqueness, later
// occurrences of a key within the same file. It never mutates the store
// and tolerates an empty key set. Returns the number of flagged rows.
func ResolveDuplicates(ctx context.Context, store RecordStore, spec ImportSpec, rows []ValidatedRow) (int, error) {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if key := row.NormalizedFields[spec.BusinessKey]; key != "" {
			keys = append(keys, key)
		}
	}

	existing := map[string]struct{}{}
	if len(keys) > 0 {
		var err error
		existing, err = store.FindByBusinessKey(ctx, spec.EntityType, keys)
		if err != nil {
			return 0, err
		}
	}

	duplicates := 0
	seenInBatch := make(map[string]struct{}, len(rows))
	for i := range rows {
		key := rows[i].NormalizedFields[spec.BusinessKey]
		if key == "" {
			continue
		}

		if _, inStore := existing[key]; inStore {
			rows[i].IsDuplicate = true
		}
		if spec.UniqueInBatch {
			if _, seen := seenInBatch[key]; seen {
				// Second and later occurrences count as duplicates of the
				// first, attributed to the store check for uniform handling.
				rows[i].IsDuplicate = true
			}
			seenInBatch[key] = struct{}{}
		}

		if rows[i].IsDuplicate {
			duplicates++
		}
	}

	return duplicates, nil
}
