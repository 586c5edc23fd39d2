package extract

import (
	"testing"

	"github.com/wms-data/wms-etl/pkg/window"
)

func TestAll_Definitions(t *testing.T) {
	defs := All()
	if len(defs) != 8 {
		t.Fatalf("All() = %d definitions, want 8", len(defs))
	}

	seen := map[string]bool{}
	for _, d := range defs {
		if d.Entity == "" || d.Table == "" || d.PrimaryKey == "" {
			t.Errorf("definition %q incomplete: %+v", d.Entity, d)
		}
		if seen[d.Entity] {
			t.Errorf("duplicate definition for %q", d.Entity)
		}
		seen[d.Entity] = true

		cols := map[string]bool{}
		for _, c := range d.Columns {
			if cols[c] {
				t.Errorf("%s: duplicate column %q", d.Entity, c)
			}
			cols[c] = true
		}
		if !cols[d.PrimaryKey] {
			t.Errorf("%s: primary key %q missing from columns", d.Entity, d.PrimaryKey)
		}
		for col := range d.Schema {
			if !cols[col] {
				t.Errorf("%s: schema column %q not in destination columns", d.Entity, col)
			}
		}
		if d.FetchDetails && d.DetailConcurrency < 1 {
			t.Errorf("%s: detail fetch enabled without concurrency bound", d.Entity)
		}
	}
}

func TestAll_WindowPolicies(t *testing.T) {
	policies := map[string]window.Policy{}
	for _, d := range All() {
		policies[d.Entity] = d.Windows
	}

	for _, entity := range []string{"inventory", "oblpn", "order_hdr", "order_dtl", "container"} {
		p := policies[entity]
		if p.Primary.Kind != window.Today {
			t.Errorf("%s primary = %v, want Today", entity, p.Primary.Kind)
		}
		if p.Fallback == nil || p.Fallback.Kind != window.LastDays {
			t.Errorf("%s fallback = %+v, want LastDays", entity, p.Fallback)
		}
	}

	if p := policies["location"]; p.Primary.Kind != window.ThisMonth || p.Fallback == nil || p.Fallback.Kind != window.PrevMonth {
		t.Errorf("location policy = %+v", p)
	}
	for _, entity := range []string{"order_status", "container_status"} {
		p := policies[entity]
		if p.Primary.Kind != window.All || p.Fallback != nil {
			t.Errorf("%s policy = %+v, want All with no fallback", entity, p)
		}
	}
}

func TestBacklogSet(t *testing.T) {
	defs := BacklogSet()
	want := []string{"inventory", "container", "location", "order_hdr", "order_dtl"}
	if len(defs) != len(want) {
		t.Fatalf("BacklogSet() = %d definitions, want %d", len(defs), len(want))
	}
	for i, d := range defs {
		if d.Entity != want[i] {
			t.Errorf("BacklogSet()[%d] = %q, want %q", i, d.Entity, want[i])
		}
	}
}
