package window

import (
	"testing"
	"time"
)

var now = time.Date(2026, time.August, 29, 15, 42, 10, 0, time.UTC)

func TestSpec_Params_Today(t *testing.T) {
	params := Spec{Kind: Today}.Params(now)

	if got := params["create_ts__gte"]; got != "2026-08-29T00:00:00" {
		t.Errorf("create_ts__gte = %q", got)
	}
	if got := params["create_ts__lt"]; got != "2026-08-30T00:00:00" {
		t.Errorf("create_ts__lt = %q", got)
	}
}

func TestSpec_Params_LastDays(t *testing.T) {
	params := Spec{Kind: LastDays, Days: 3}.Params(now)

	if got := params["create_ts__gte"]; got != "2026-08-26T15:42:10" {
		t.Errorf("create_ts__gte = %q", got)
	}
	if got := params["create_ts__lt"]; got != "2026-08-29T15:42:10" {
		t.Errorf("create_ts__lt = %q", got)
	}
}

func TestSpec_Params_Months(t *testing.T) {
	if got := (Spec{Kind: ThisMonth}).Params(now)["create_ts__month"]; got != "8" {
		t.Errorf("this month = %q, want 8", got)
	}
	if got := (Spec{Kind: PrevMonth}).Params(now)["create_ts__month"]; got != "7" {
		t.Errorf("prev month = %q, want 7", got)
	}

	january := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := (Spec{Kind: PrevMonth}).Params(january)["create_ts__month"]; got != "12" {
		t.Errorf("prev month across year boundary = %q, want 12", got)
	}
}

func TestSpec_Params_All(t *testing.T) {
	if params := (Spec{Kind: All}).Params(now); len(params) != 0 {
		t.Errorf("All params = %v, want empty", params)
	}
}

func TestDay(t *testing.T) {
	params := Day(time.Date(2026, time.February, 28, 9, 30, 0, 0, time.UTC))

	if got := params["create_ts__gte"]; got != "2026-02-28T00:00:00" {
		t.Errorf("create_ts__gte = %q", got)
	}
	if got := params["create_ts__lt"]; got != "2026-03-01T00:00:00" {
		t.Errorf("create_ts__lt = %q", got)
	}
}

func TestSpec_String(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{Kind: Today}, "today"},
		{Spec{Kind: LastDays, Days: 2}, "last_2_days"},
		{Spec{Kind: ThisMonth}, "this_month"},
		{Spec{Kind: PrevMonth}, "prev_month"},
		{Spec{Kind: All}, "all"},
	}
	for _, tt := range tests {
		if got := tt.spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
