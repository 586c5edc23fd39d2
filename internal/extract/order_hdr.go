package extract

import (
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/window"
)

// OrderHdr defines the order header extraction: today's orders with a
// three-day fallback.
func OrderHdr() Definition {
	return Definition{
		Entity:     "order_hdr",
		Table:      "public.raw_order_hdr",
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
			"facility_id_id",
			"facility_id_key",
			"facility_id_url",
			"company_id_id",
			"company_id_key",
			"company_id_url",
			"order_nbr",
			"order_type_id_id",
			"order_type_id_key",
			"order_type_id_url",
			"status_id",
			"ord_date",
			"exp_date",
			"req_ship_date",
			"dest_facility_id",
			"shipto_facility_id",
			"cust_name",
			"cust_addr",
			"cust_addr2",
			"cust_addr3",
			"cust_city",
			"cust_state",
			"cust_zip",
			"cust_country",
			"cust_phone_nbr",
			"cust_email",
			"cust_nbr",
			"shipto_name",
			"shipto_addr",
			"shipto_addr2",
			"shipto_addr3",
			"shipto_city",
			"shipto_state",
			"shipto_zip",
			"shipto_country",
			"shipto_phone_nbr",
			"shipto_email",
			"ref_nbr",
			"stage_location_id",
			"ship_via_ref_code",
			"route_nbr",
			"external_route",
			"destination_company_id_id",
			"destination_company_id_key",
			"destination_company_id_url",
			"ship_via_id",
			"priority",
			"host_allocation_nbr",
			"sales_order_nbr",
			"sales_channel",
			"customer_po_nbr",
			"carrier_account_nbr",
			"payment_method_id",
			"dest_dept_nbr",
			"start_ship_date",
			"stop_ship_date",
			"vas_group_code",
			"spl_instr",
			"currency_code",
			"record_origin_code",
			"cust_contact",
			"shipto_contact",
			"ob_lpn_type",
			"ob_lpn_type_id",
			"total_orig_ord_qty",
			"orig_sku_count",
			"orig_sale_price",
			"gift_msg",
			"sched_ship_date",
			"customer_po_type",
			"customer_vendor_code",
			"externally_planned_load_flg",
			"work_order_kit_id",
			"order_nbr_to_replace",
			"stop_ship_flg",
			"lpn_type_class",
			"billto_carrier_account_nbr",
			"duties_carrier_account_nbr",
			"duties_payment_method_id",
			"customs_broker_contact_id",
			"order_shipped_ts",
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
			"order_dtl_set_result_count",
			"order_dtl_set_url",
			"order_lock_set",
			"tms_parcel_shipment_nbr",
			"erp_source_hdr_ref",
			"erp_source_system_ref",
			"tms_order_hdr_ref",
			"group_ref",
		},
		Schema: schemaOf(map[flatten.Kind][]string{
			flatten.Float: {
				"total_orig_ord_qty",
				"orig_sale_price",
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
			},
			flatten.Int: {
				"id",
				"facility_id_id",
				"company_id_id",
				"status_id",
				"dest_facility_id",
				"shipto_facility_id",
				"stage_location_id",
				"ship_via_id",
				"priority",
				"payment_method_id",
				"ob_lpn_type_id",
				"orig_sku_count",
				"work_order_kit_id",
				"duties_payment_method_id",
				"customs_broker_contact_id",
				"order_type_id_id",
				"destination_company_id_id",
			},
			flatten.Bool:      {"externally_planned_load_flg", "stop_ship_flg"},
			flatten.Timestamp: {"create_ts", "mod_ts", "order_shipped_ts"},
			flatten.Date: {
				"ord_date",
				"exp_date",
				"req_ship_date",
				"start_ship_date",
				"stop_ship_date",
				"sched_ship_date",
				"cust_date_1",
				"cust_date_2",
				"cust_date_3",
				"cust_date_4",
				"cust_date_5",
			},
			flatten.Array: {"order_instructions_set", "order_lock_set"},
		}),
	}
}
