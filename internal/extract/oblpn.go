package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// OBLPN defines the outbound LPN extraction: today's records with a two-day
// fallback, enriched with per-record details. Dimension columns default to
// zero because cubing reports multiply them.
func OBLPN() Definition {
	return Definition{
		Entity:            "oblpn",
		Table:             "public.raw_oblpn",
		PrimaryKey:        "id",
		FetchDetails:      true,
		DetailConcurrency: 10,
		Windows: window.Policy{
			Primary:  window.Spec{Kind: window.Today},
			Fallback: &window.Spec{Kind: window.LastDays, Days: 2},
		},
		Columns: []string{
			"id",
			"container_nbr",
			"url",
			"create_user",
			"create_ts",
			"mod_user",
			"mod_ts",
			"facility_id_id",
			"facility_id_key",
			"facility_id_url",
			"company_id_id",
			"company_id_key",
			"company_id_url",
			"status_id",
			"vas_status_id",
			"curr_location_id_id",
			"curr_location_id_key",
			"curr_location_id_url",
			"prev_location_id_id",
			"prev_location_id_key",
			"prev_location_id_url",
			"lpn_type_id",
			"weight",
			"volume",
			"length",
			"width",
			"height",
			"rcvd_ts",
			"first_putaway_ts",
			"audit_status_id",
			"qc_status_id",
			"cart_posn_nbr",
			"nbr_files",
			"type",
			"pick_user",
			"pack_user",
			"ref_oblpn_nbr",
			"comments",
			"orig_container_nbr",
			"pallet_position",
			"cust_field_1",
			"cust_field_2",
			"cust_field_3",
			"cust_field_4",
			"cust_field_5",
			"cart_nbr",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.FloatZero: {"weight", "volume", "length", "width", "height"},
			flatten.Int: {
				"id",
				"facility_id_id",
				"company_id_id",
				"curr_location_id_id",
				"prev_location_id_id",
				"status_id",
				"vas_status_id",
				"audit_status_id",
				"qc_status_id",
				"lpn_type_id",
				"cart_posn_nbr",
				"nbr_files",
			},
			flatten.Timestamp: {"create_ts", "mod_ts", "rcvd_ts", "first_putaway_ts"},
		}),
	}
}
