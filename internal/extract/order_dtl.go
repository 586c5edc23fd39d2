package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// OrderDtl defines the order line extraction: today's lines with a three-day
// fallback. cust_date columns carry full timestamps on lines, unlike headers.
func OrderDtl() Definition {
	return Definition{
		Entity:     "order_dtl",
		Table:      "public.raw_order_dtl",
		PrimaryKey: "id",
		Windows: window.Policy{
			Primary:  window.Spec{Kind: window.Today},
			Fallback: &window.Spec{Kind: window.LastDays, Days: 3},
		},
		Columns: []string{
			"id",
			"url",
			"create_user",
			"create_ts",
			"mod_user",
			"mod_ts",
			"order_id_id",
			"order_id_key",
			"order_id_url",
			"seq_nbr",
			"item_id_id",
			"item_id_key",
			"item_id_url",
			"ord_qty",
			"orig_ord_qty",
			"alloc_qty",
			"req_cntr_nbr",
			"po_nbr",
			"shipment_nbr",
			"dest_facility_attr_a",
			"dest_facility_attr_b",
			"dest_facility_attr_c",
			"ref_nbr_1",
			"vas_activity_code",
			"cost",
			"sale_price",
			"host_ob_lpn_nbr",
			"spl_instr",
			"batch_number_id",
			"voucher_nbr",
			"voucher_amount",
			"voucher_exp_date",
			"req_pallet_nbr",
			"lock_code",
			"serial_nbr",
			"voucher_print_count",
			"ship_request_line",
			"unit_declared_value",
			"externally_planned_load_nbr",
			"invn_attr_id_id",
			"invn_attr_id_key",
			"invn_attr_id_url",
			"internal_text_field_1",
			"orig_item_code",
			"cust_field_1",
			"cust_field_2",
			"cust_field_3",
			"cust_field_4",
			"cust_field_5",
			"cust_date_1",
			"cust_date_2",
			"cust_date_3",
			"cust_date_4",
			"cust_date_5",
			"cust_number_1",
			"cust_number_2",
			"cust_number_3",
			"cust_number_4",
			"cust_number_5",
			"cust_decimal_1",
			"cust_decimal_2",
			"cust_decimal_3",
			"cust_decimal_4",
			"cust_decimal_5",
			"cust_short_text_1",
			"cust_short_text_2",
			"cust_short_text_3",
			"cust_short_text_4",
			"cust_short_text_5",
			"cust_short_text_6",
			"cust_short_text_7",
			"cust_short_text_8",
			"cust_short_text_9",
			"cust_short_text_10",
			"cust_short_text_11",
			"cust_short_text_12",
			"cust_long_text_1",
			"cust_long_text_2",
			"cust_long_text_3",
			"order_instructions_set",
			"erp_source_line_ref",
			"erp_source_shipment_ref",
			"erp_fulfillment_line_ref",
			"min_shipping_tolerance_percentage",
			"max_shipping_tolerance_percentage",
			"status_id",
			"order_dtl_original_seq_nbr",
			"uom_id_id",
			"uom_id_key",
			"uom_id_url",
			"ordered_uom_id_id",
			"ordered_uom_id_key",
			"ordered_uom_id_url",
			"ordered_uom_qty",
			"required_serial_nbr_set",
			"ob_lpn_type_id",
			"planned_parcel_shipment_nbr",
			"orig_order_ref_id",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Float: {
				"ord_qty",
				"orig_ord_qty",
				"alloc_qty",
				"cost",
				"sale_price",
				"voucher_amount",
				"unit_declared_value",
				"cust_number_1",
				"cust_number_2",
				"cust_number_3",
				"cust_number_4",
				"cust_number_5",
				"cust_decimal_1",
				"cust_decimal_2",
				"cust_decimal_3",
				"cust_decimal_4",
				"cust_decimal_5",
				"min_shipping_tolerance_percentage",
				"max_shipping_tolerance_percentage",
				"ordered_uom_qty",
			},
			flatten.Int: {
				"id",
				"order_id_id",
				"seq_nbr",
				"item_id_id",
				"batch_number_id",
				"voucher_print_count",
				"status_id",
				"invn_attr_id_id",
				"uom_id_id",
				"ordered_uom_id_id",
				"ob_lpn_type_id",
				"orig_order_ref_id",
			},
			flatten.Timestamp: {
				"create_ts",
				"mod_ts",
				"voucher_exp_date",
				"cust_date_1",
				"cust_date_2",
				"cust_date_3",
				"cust_date_4",
				"cust_date_5",
			},
			flatten.Array: {"order_instructions_set", "required_serial_nbr_set"},
		}),
	}
}
