package main

import (
	"testing"
	"time"

	"github.com/wms-data/wms-etl/pkg/flatten"
)

func TestCellString(t *testing.T) {
	midnight := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, time.August, 29, 14, 30, 5, 0, time.UTC)

	tests := []struct {
		name string
		v    any
		kind flatten.Kind
		want string
	}{
		{"nil", nil, flatten.String, ""},
		{"string", "LPN0001", flatten.String, "LPN0001"},
		{"bool", true, flatten.Bool, "true"},
		{"int", int64(42), flatten.Int, "42"},
		{"float", 1.5, flatten.Float, "1.5"},
		{"date column", midnight, flatten.Date, "2026-08-29"},
		{"timestamp column", afternoon, flatten.Timestamp, "2026-08-29T14:30:05"},
		// A create_ts landing exactly on midnight stays a full timestamp.
		{"midnight timestamp", midnight, flatten.Timestamp, "2026-08-29T00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(tt.v, tt.kind); got != tt.want {
				t.Errorf("cellString(%v, %v) = %q, want %q", tt.v, tt.kind, got, tt.want)
			}
		})
	}
}
