package store

import (
	"testing"

	"entgo.io/ent"

	entschema "github.com/abhisek/ailearn/ent/schema"
)

func schemaColumns(t *testing.T, s *Store, tbl string) map[string]bool {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", tbl)
	if err != nil {
		t.Fatalf("table_info %s: %v", tbl, err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return cols
}

func fieldNames(fields []ent.Field, mixins ...ent.Mixin) []string {
	var names []string
	for _, m := range mixins {
		for _, f := range m.Fields() {
			names = append(names, f.Descriptor().Name)
		}
	}
	for _, f := range fields {
		names = append(names, f.Descriptor().Name)
	}
	return names
}

func TestSchemaMatchesMigration(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		table  string
		fields []string
	}{
		{"kv_entries", fieldNames(entschema.KVEntry{}.Fields())},
		{"llm_events", fieldNames(entschema.LLMEvent{}.Fields(), entschema.LLMEvent{}.Mixin()...)},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			cols := schemaColumns(t, s, tt.table)
			if len(cols) == 0 {
				t.Fatalf("table %s missing", tt.table)
			}
			for _, name := range tt.fields {
				if !cols[name] {
					t.Errorf("column %s.%s declared in schema but not migrated", tt.table, name)
				}
			}
		})
	}
}
