package migration

import "testing"

func TestMigrationsOrder(t *testing.T) {
	ms := Migrations()
	if len(ms) == 0 || ms[0].Name != "create_cv_exports" {
		t.Fatalf("first migration must create the table, got %+v", ms)
	}
	seen := map[string]bool{}
	for _, m := range ms {
		if m.Up == nil {
			t.Fatalf("migration %q has no Up func", m.Name)
		}
		if seen[m.Name] {
			t.Fatalf("duplicate migration %q", m.Name)
		}
		seen[m.Name] = true
	}
}
