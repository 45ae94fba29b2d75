package schema

import (
	"reflect"
	"testing"
)

func TestOptionsFor(t *testing.T) {
	cases := []struct {
		field string
		want  []string
	}{
		{"budget", []string{"on a tight budget", "comfortable spending", "happy to spend for a luxurious vacation"}},
		{"trip_direction", []string{"return", "oneway"}},
		{"optimizeType", []string{"manual", "auto"}},
		{"time_schedule_duration_unit", []string{"week", "month", "days"}},
		{"time_schedule_onward_trip_date_year", []string{"current_year", "next_year"}},
		// free-text and interest fields have no closed options
		{"Origin_city", []string{}},
		{"destination", []string{}},
		{"firstDestination", []string{}},
		{"user_interest_beach_weight", []string{}},
		{"none", []string{}},
		{"", []string{}},
	}
	for _, tc := range cases {
		got := OptionsFor(tc.field)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("OptionsFor(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

// Callers may mutate the returned slice without corrupting the table.
func TestOptionsForReturnsCopy(t *testing.T) {
	opts := OptionsFor("budget")
	opts[0] = "mutated"
	if OptionsFor("budget")[0] != "on a tight budget" {
		t.Error("options table was mutated through a returned slice")
	}
}
