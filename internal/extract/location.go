package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// Location defines the location extraction. Locations change rarely, so the
// window is the current calendar month with the previous month as fallback.
func Location() Definition {
	return Definition{
		Entity:     "location",
		Table:      "public.raw_location",
		PrimaryKey: "id",
		Windows: window.Policy{
			Primary:  window.Spec{Kind: window.ThisMonth},
			Fallback: &window.Spec{Kind: window.PrevMonth},
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
			"dedicated_company_id_id",
			"dedicated_company_id_key",
			"dedicated_company_id_url",
			"area",
			"aisle",
			"bay",
			"level",
			"position",
			"bin",
			"type_id_id",
			"type_id_key",
			"type_id_url",
			"allow_multi_sku",
			"barcode",
			"destination_company_id_id",
			"length",
			"width",
			"height",
			"max_units",
			"max_lpns",
			"to_be_counted_flg",
			"to_be_counted_ts",
			"lock_code_id",
			"lock_for_putaway_flg",
			"pick_seq",
			"last_count_ts",
			"last_count_user",
			"locn_size_type_id",
			"min_units",
			"allow_reserve_partial_pick_flg",
			"alloc_zone",
			"locn_str",
			"putaway_seq",
			"replenishment_zone_id_id",
			"replenishment_zone_id_key",
			"replenishment_zone_id_url",
			"min_volume",
			"max_volume",
			"restrict_batch_nbr_flg",
			"item_assignment_type_id_id",
			"item_assignment_type_id_key",
			"item_assignment_type_id_url",
			"item_id_id",
			"item_id_key",
			"item_id_url",
			"mhe_system_id",
			"pick_zone",
			"divert_lane",
			"task_zone_id",
			"in_transit_units",
			"restrict_invn_attr_flg",
			"assembly_flg",
			"billing_location_type",
			"cust_field_1",
			"cust_field_2",
			"cust_field_3",
			"cust_field_4",
			"cust_field_5",
			"min_weight",
			"max_weight",
			"cc_threshold_uom_id_id",
			"cc_threshold_uom_id_key",
			"cc_threshold_uom_id_url",
			"cc_threshold_value",
			"x_coordinate",
			"y_coordinate",
			"z_coordinate",
			"lock_applied_ts",
			"ignore_attr_values_for_restrict_invn_attr",
			"ranking",
			"destination_company_id",
			"cc_threshold_uom_id",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Float: {
				"length",
				"width",
				"height",
				"max_units",
				"min_units",
				"max_volume",
				"min_volume",
				"min_weight",
				"max_weight",
				"cc_threshold_value",
				"x_coordinate",
				"y_coordinate",
				"z_coordinate",
				"in_transit_units",
			},
			flatten.Int: {
				"id",
				"facility_id_id",
				"dedicated_company_id_id",
				"type_id_id",
				"max_lpns",
				"lock_code_id",
				"replenishment_zone_id_id",
				"item_assignment_type_id_id",
				"item_id_id",
				"mhe_system_id",
				"task_zone_id",
				"cc_threshold_uom_id_id",
			},
			flatten.Bool: {
				"allow_multi_sku",
				"to_be_counted_flg",
				"lock_for_putaway_flg",
				"allow_reserve_partial_pick_flg",
				"restrict_batch_nbr_flg",
				"restrict_invn_attr_flg",
				"assembly_flg",
			},
			flatten.Timestamp: {
				"create_ts",
				"mod_ts",
				"to_be_counted_ts",
				"last_count_ts",
				"lock_applied_ts",
			},
		}),
	}
}
