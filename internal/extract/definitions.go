package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
)

// All returns every entity definition in load order. Order matters only for
// log readability; entities have no load-time dependencies on each other.
func All() []Definition {
	return []Definition{
		Inventory(),
		OrderHdr(),
		OrderDtl(),
		Container(),
		Location(),
		OBLPN(),
		OrderStatus(),
		ContainerStatus(),
	}
}

// BacklogSet returns the entities replayed by the backlog exporter.
func BacklogSet() []Definition {
	return []Definition{
		Inventory(),
		Container(),
		Location(),
		OrderHdr(),
		OrderDtl(),
	}
}

// schemaOf builds a Schema from per-kind column lists.
func schemaOf(kinds map[flatten.Kind][]string) flatten.Schema {
	s := make(flatten.Schema)
	for kind, cols := range kinds {
		for _, col := range cols {
			s[col] = kind
		}
	}
	return s
}
