package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// Inventory defines the inventory extraction: today's records with a two-day
// fallback, enriched with per-record details. Quantity columns are never
// null; downstream aggregations sum them without COALESCE.
func Inventory() Definition {
	return Definition{
		Entity:            "inventory",
		Table:             "public.raw_inventory",
		PrimaryKey:        "id",
		FetchDetails:      true,
		DetailConcurrency: 10,
		Windows: window.Policy{
			Primary:  window.Spec{Kind: window.Today},
			Fallback: &window.Spec{Kind: window.LastDays, Days: 2},
		},
		Columns: []string{
			"id",
			"url",
			"create_user",
			"create_ts",
			"mod_user",
			"mod_ts",
			"facility_id_id",
			"facility_id_key",
			"facility_id_url",
			"item_id_id",
			"item_id_key",
			"item_id_url",
			"location_id",
			"location_id_id",
			"location_id_key",
			"location_id_url",
			"container_id",
			"container_id_id",
			"container_id_key",
			"container_id_url",
			"priority_date",
			"curr_qty",
			"orig_qty",
			"pack_qty",
			"case_qty",
			"status_id",
			"manufacture_date",
			"expiry_date",
			"batch_number_id",
			"invn_attr_id_id",
			"invn_attr_id_key",
			"invn_attr_id_url",
			"serial_nbr_set",
			"uom_id_id",
			"uom_id_key",
			"uom_id_url",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.FloatZero: {"curr_qty", "orig_qty", "pack_qty", "case_qty"},
			flatten.Int: {
				"id",
				"facility_id_id",
				"item_id_id",
				"location_id_id",
				"container_id_id",
				"status_id",
				"batch_number_id",
				"invn_attr_id_id",
				"uom_id_id",
			},
			flatten.Date:      {"priority_date", "manufacture_date", "expiry_date"},
			flatten.Timestamp: {"create_ts", "mod_ts"},
			flatten.Array:     {"serial_nbr_set"},
		}),
	}
}
