// README: Trip schema definition and nested<->flat key-space projection.
package schema

import "fmt"

// Flat is the single-level key-space the language model reasons over.
type Flat map[string]any

// Interests are the canonical interest tags. The key set of
// user_interests is fixed at initialization; only leaf values mutate.
var Interests = []string{
	"adult",
	"any",
	"beach",
	"city-sightseeing",
	"culture and traditions",
	"dark tourism",
	"food and wine",
	"historical",
	"kids entertainment",
	"nature",
	"nightlife",
	"outdoors and sports",
	"religion",
	"science and technology",
	"shopping",
	"theatre and concert",
}

// FieldDestination gets append-union merge semantics instead of overwrite.
const FieldDestination = "destination"

type fieldKind int

const (
	// kindScalar is unset-or-string; unset is the empty-object sentinel.
	kindScalar fieldKind = iota
	kindList
	kindNumber
	kindBool
)

// fieldDescriptor maps one flat key to its nested path. The whole key-space
// is enumerated statically so both projection directions are driven by the
// same table and cannot drift apart.
type fieldDescriptor struct {
	flatKey string
	path    []string
	kind    fieldKind
}

var descriptors = buildDescriptors()

func buildDescriptors() []fieldDescriptor {
	d := []fieldDescriptor{
		{flatKey: "optimizeType", path: []string{"optimizeType"}},
		{flatKey: "firstDestination", path: []string{"firstDestination"}},
		{flatKey: "trip_theme", path: []string{"trip_theme"}},
		{flatKey: "destination", path: []string{"destination"}, kind: kindList},
		{flatKey: "traveller_type", path: []string{"traveller_type"}},
		{flatKey: "Origin_city", path: []string{"Origin_city"}},
		{flatKey: "budget", path: []string{"budget"}},
		{flatKey: "food", path: []string{"food"}},
		{flatKey: "trip_direction", path: []string{"trip_direction"}},
	}

	for _, leg := range []string{"onward_trip", "return_trip"} {
		d = append(d,
			fieldDescriptor{
				flatKey: "time_schedule_" + leg + "_time_hour",
				path:    []string{"time_schedule", leg, "time", "hour"},
			},
			fieldDescriptor{
				flatKey: "time_schedule_" + leg + "_time_minute",
				path:    []string{"time_schedule", leg, "time", "minute"},
			},
			fieldDescriptor{
				flatKey: "time_schedule_" + leg + "_date_day_of_month",
				path:    []string{"time_schedule", leg, "date", "day_of_month"},
			},
			fieldDescriptor{
				flatKey: "time_schedule_" + leg + "_date_month",
				path:    []string{"time_schedule", leg, "date", "month"},
			},
			fieldDescriptor{
				flatKey: "time_schedule_" + leg + "_date_year",
				path:    []string{"time_schedule", leg, "date", "year"},
			},
		)
	}
	d = append(d,
		fieldDescriptor{flatKey: "time_schedule_duration_value", path: []string{"time_schedule", "duration", "value"}},
		fieldDescriptor{flatKey: "time_schedule_duration_unit", path: []string{"time_schedule", "duration", "unit"}},
	)

	for _, name := range Interests {
		d = append(d,
			fieldDescriptor{
				flatKey: "user_interest_" + name + "_weight",
				path:    []string{"user_interests", name, "weight"},
				kind:    kindNumber,
			},
			fieldDescriptor{
				flatKey: "user_interest_" + name + "_user_selected",
				path:    []string{"user_interests", name, "user_selected"},
				kind:    kindBool,
			},
			fieldDescriptor{
				flatKey: "user_interest_" + name + "_places",
				path:    []string{"user_interests", name, "places"},
				kind:    kindList,
			},
			fieldDescriptor{
				flatKey: "user_interest_" + name + "_user_keywords",
				path:    []string{"user_interests", name, "user_keywords"},
				kind:    kindList,
			},
		)
	}
	return d
}

// The descriptor table is the load-bearing contract of the tracker: a
// duplicate flat key or nested path would silently corrupt state on every
// turn, so a bad table must not survive process start.
func init() {
	keys := make(map[string]struct{}, len(descriptors))
	paths := make(map[string]struct{}, len(descriptors))
	for _, fd := range descriptors {
		if _, dup := keys[fd.flatKey]; dup {
			panic(fmt.Sprintf("schema: duplicate flat key %q", fd.flatKey))
		}
		keys[fd.flatKey] = struct{}{}

		p := fmt.Sprintf("%q", fd.path)
		if _, dup := paths[p]; dup {
			panic(fmt.Sprintf("schema: duplicate nested path %v", fd.path))
		}
		paths[p] = struct{}{}
	}
}

// Unset returns the empty-object sentinel used for scalar slots that have
// no value yet. It matches the wire form the model is prompted with.
func Unset() map[string]any {
	return map[string]any{}
}

func defaultValue(kind fieldKind) any {
	switch kind {
	case kindList:
		return []any{}
	case kindNumber:
		return float64(0)
	case kindBool:
		return false
	default:
		return Unset()
	}
}

// FlatKeys returns every fixed flat key, in table order.
func FlatKeys() []string {
	keys := make([]string, len(descriptors))
	for i, fd := range descriptors {
		keys[i] = fd.flatKey
	}
	return keys
}

// NewNested returns the all-unset nested trip schema.
func NewNested() map[string]any {
	return Unflatten(Flat{})
}

// NewFlat returns the all-unset flat state.
func NewFlat() Flat {
	return Flatten(nil)
}

// Flatten projects a nested schema onto the flat key-space. It is total:
// every fixed flat key is emitted, with the kind's unset default standing in
// for any absent branch.
func Flatten(nested map[string]any) Flat {
	flat := make(Flat, len(descriptors))
	for _, fd := range descriptors {
		v, ok := lookup(nested, fd.path)
		if !ok {
			v = defaultValue(fd.kind)
		}
		flat[fd.flatKey] = v
	}
	return flat
}

// Unflatten reconstructs the nested schema from a flat mapping. Every nested
// branch is rebuilt; keys outside the fixed key set are ignored (lenient
// merge policy, not an error). Missing keys take their unset default.
func Unflatten(flat Flat) map[string]any {
	nested := make(map[string]any)
	for _, fd := range descriptors {
		v, ok := flat[fd.flatKey]
		if !ok {
			v = defaultValue(fd.kind)
		}
		set(nested, fd.path, v)
	}
	return nested
}

func lookup(m map[string]any, path []string) (any, bool) {
	for i, p := range path {
		v, ok := m[p]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		m, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func set(m map[string]any, path []string, v any) {
	for _, p := range path[:len(path)-1] {
		child, ok := m[p].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[p] = child
		}
		m = child
	}
	m[path[len(path)-1]] = v
}
