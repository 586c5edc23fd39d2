package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// OrderStatus defines the order status lookup table. Lookups are tiny and
// stable, so the whole entity is fetched with no date filter or fallback.
func OrderStatus() Definition {
	return Definition{
		Entity:     "order_status",
		Table:      "public.raw_order_status",
		PrimaryKey: "id",
		Windows: window.Policy{
			Primary: window.Spec{Kind: window.All},
		},
		Columns: []string{"id", "description", "url"},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Int: {"id"},
		}),
	}
}

// ContainerStatus defines the container status lookup table.
func ContainerStatus() Definition {
	return Definition{
		Entity:     "container_status",
		Table:      "public.raw_container_status",
		PrimaryKey: "id",
		Windows: window.Policy{
			Primary: window.Spec{Kind: window.All},
		},
		Columns: []string{"id", "description", "url"},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Int: {"id"},
		}),
	}
}
