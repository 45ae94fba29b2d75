package ai

import (
	"encoding/json"
	"fmt"
)

// Answer holds the value the model claims for one slot. On the wire it is
// either a bare string or a list of strings; the model occasionally emits
// numbers for date/time slots, which are kept in their string form.
type Answer struct {
	Value  string
	List   []string
	IsList bool
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.Value = s
		a.IsList = false
		a.List = nil
		return nil
	}

	var raw []any
	if err := json.Unmarshal(b, &raw); err == nil {
		a.IsList = true
		a.Value = ""
		a.List = make([]string, 0, len(raw))
		for _, v := range raw {
			a.List = append(a.List, stringify(v))
		}
		return nil
	}

	// Lenient: scalar non-string answers (numbers, bools) are stringified
	// rather than failing the whole turn.
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	a.Value = stringify(v)
	a.IsList = false
	a.List = nil
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsList {
		return json.Marshal(a.List)
	}
	return json.Marshal(a.Value)
}

// AsAny returns the answer in the form it is stored in flat state:
// a string, or []any of strings for list answers.
func (a Answer) AsAny() any {
	if a.IsList {
		out := make([]any, len(a.List))
		for i, v := range a.List {
			out[i] = v
		}
		return out
	}
	return a.Value
}

// Strings returns the answer as a list regardless of wire form.
func (a Answer) Strings() []string {
	if a.IsList {
		return a.List
	}
	return []string{a.Value}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; drop the trailing .0 for ints.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FieldUpdate is the atomic unit the model emits to claim a value for one
// slot of the flat key-space.
type FieldUpdate struct {
	FieldName string `json:"field_name"`
	Answer    Answer `json:"answer"`
}

// TurnResult is the contract with the inference capability. The model must
// return only this document, no extraneous text.
type TurnResult struct {
	Inferences []FieldUpdate `json:"inferences"`
	NextReply  string        `json:"next_reply"`
	// Metadata names the field next_reply is asking about when that field
	// has a closed option set, or "none".
	Metadata string `json:"metadata"`
	Reason   string `json:"reason"`
	// InternetSearchRequired asks the orchestrator to run a lookup and a
	// second, augmented inference pass.
	InternetSearchRequired bool   `json:"internet_search_required"`
	OnlineSearchQuery      string `json:"online_search_query,omitempty"`
}

// Message is one role-tagged line of conversation context.
type Message struct {
	Role    string
	Content string
}
