// README: Per-turn merge of model-produced field updates into flat state.
package merge

import (
	"fmt"

	"travelai/internal/ai"
	"travelai/internal/modules/schema"
)

// Apply merges the turn's field updates onto the current flat state and
// returns a new map; current is never mutated, so a failed turn leaves the
// session exactly as it was.
//
// The default rule is replace-on-write. The destination list instead gets
// union semantics: the incoming city or list is appended to the existing
// list with duplicates dropped and first-seen order preserved, because the
// first-seen order is what manual sequencing runs on.
//
// No validation against the options registry happens here. Closed-set
// discipline is advisory, delegated to the model's instructions; an
// out-of-domain answer is forwarded, never rejected.
func Apply(current schema.Flat, updates []ai.FieldUpdate) schema.Flat {
	next := make(schema.Flat, len(current))
	for k, v := range current {
		next[k] = v
	}

	for _, u := range updates {
		if u.FieldName == "" {
			continue
		}
		if u.FieldName == schema.FieldDestination {
			next[u.FieldName] = unionDestinations(next[u.FieldName], u.Answer.Strings())
			continue
		}
		next[u.FieldName] = u.Answer.AsAny()
	}
	return next
}

func unionDestinations(existing any, incoming []string) []any {
	seen := make(map[string]struct{})
	merged := make([]any, 0, len(incoming))

	add := func(city string) {
		if city == "" {
			return
		}
		if _, ok := seen[city]; ok {
			return
		}
		seen[city] = struct{}{}
		merged = append(merged, city)
	}

	for _, v := range toStrings(existing) {
		add(v)
	}
	for _, v := range incoming {
		add(v)
	}
	return merged
}

// toStrings normalizes a stored destination value. Depending on where the
// state last came from (fresh schema, redis round-trip, earlier merge) the
// list may be []any or []string; anything else is treated as empty.
func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", e))
			}
		}
		return out
	default:
		return nil
	}
}
