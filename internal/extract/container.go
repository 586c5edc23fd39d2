package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// Container defines the container extraction: today's records with a
// three-day fallback. Summaries carry all needed fields, so no detail pass.
func Container() Definition {
	return Definition{
		Entity:     "container",
		Table:      "public.raw_container",
		PrimaryKey: "id",
		Windows: window.Policy{
			Primary:  window.Spec{Kind: window.Today},
			Fallback: &window.Spec{Kind: window.LastDays, Days: 3},
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
			"prev_location_id",
			"prev_location_id_id",
			"prev_location_id_key",
			"prev_location_id_url",
			"rcvd_shipment_id_id",
			"rcvd_shipment_id_key",
			"rcvd_shipment_id_url",
			"putawaytype_id_id",
			"putawaytype_id_key",
			"putawaytype_id_url",
			"pallet_id",
			"lpn_type_id",
			"asset_id",
			"weight",
			"volume",
			"length",
			"width",
			"height",
			"parcel_batch_flg",
			"price_labels_printed",
			"actual_weight_flg",
			"rcvd_ts",
			"first_putaway_ts",
			"priority_date",
			"audit_status_id",
			"qc_status_id",
			"cart_posn_nbr",
			"nbr_files",
			"type",
			"rcvd_user",
			"pick_user",
			"pack_user",
			"ref_iblpn_nbr",
			"ref_shipment_nbr",
			"ref_po_nbr",
			"ref_oblpn_nbr",
			"asset_seal_nbr",
			"comments",
			"rcvd_trailer_nbr",
			"orig_container_nbr",
			"pallet_position",
			"inventory_lock_set_url",
			"inventory_lock_set_result_count",
			"cust_field_1",
			"cust_field_2",
			"cust_field_3",
			"cust_field_4",
			"cust_field_5",
			"cart_nbr",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Float: {"weight", "volume", "length", "width", "height"},
			flatten.Int: {
				"id",
				"facility_id_id",
				"company_id_id",
				"status_id",
				"vas_status_id",
				"curr_location_id_id",
				"prev_location_id_id",
				"pallet_id",
				"rcvd_shipment_id_id",
				"putawaytype_id_id",
				"lpn_type_id",
				"cart_posn_nbr",
				"audit_status_id",
				"qc_status_id",
				"asset_id",
				"nbr_files",
			},
			flatten.Bool: {"parcel_batch_flg", "price_labels_printed", "actual_weight_flg"},
			// priority_date on containers carries full timestamps upstream.
			flatten.Timestamp: {"create_ts", "mod_ts", "rcvd_ts", "first_putaway_ts", "priority_date"},
		}),
	}
}
