package ai

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerUnmarshal(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		isList bool
		want   []string
	}{
		{"string", `"Paris"`, false, []string{"Paris"}},
		{"list", `["Paris","Rome"]`, true, []string{"Paris", "Rome"}},
		{"number", `14`, false, []string{"14"}},
		{"float", `0.5`, false, []string{"0.5"}},
		{"mixed list", `["Paris", 7]`, true, []string{"Paris", "7"}},
		{"bool", `true`, false, []string{"true"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Answer
			if err := json.Unmarshal([]byte(tc.raw), &a); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.raw, err)
			}
			if a.IsList != tc.isList {
				t.Errorf("IsList = %v, want %v", a.IsList, tc.isList)
			}
			if !reflect.DeepEqual(a.Strings(), tc.want) {
				t.Errorf("Strings() = %v, want %v", a.Strings(), tc.want)
			}
		})
	}
}

func TestTurnResultUnmarshal(t *testing.T) {
	raw := `{
		"inferences": [{"field_name": "destination", "answer": ["Paris", "Rome"]}],
		"next_reply": "Great choices!",
		"metadata": "none",
		"reason": "User provided cities.",
		"internet_search_required": false,
		"online_search_query": null
	}`
	var r TurnResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r.Inferences) != 1 || r.Inferences[0].FieldName != "destination" {
		t.Fatalf("inferences = %#v", r.Inferences)
	}
	if got := r.Inferences[0].Answer.AsAny(); !reflect.DeepEqual(got, []any{"Paris", "Rome"}) {
		t.Errorf("answer = %#v", got)
	}
	if r.OnlineSearchQuery != "" {
		t.Errorf("null query should stay empty, got %q", r.OnlineSearchQuery)
	}
}

func TestAnswerMarshalRoundTrip(t *testing.T) {
	u := FieldUpdate{FieldName: "destination", Answer: Answer{IsList: true, List: []string{"Oslo"}}}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back FieldUpdate
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, u) {
		t.Errorf("round trip: %#v != %#v", back, u)
	}
}
