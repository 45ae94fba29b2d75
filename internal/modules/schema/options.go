// README: Closed-option registry for slots with enumerated value domains.
package schema

// optionsTable covers exactly the fields with closed-option domains. Free
// text fields (Origin_city, destination, names) and every user_interest_*
// key stay out on purpose. The value strings are echoed verbatim to the UI
// and to the model, so they are part of the contract.
var optionsTable = map[string][]string{
	"trip_theme": {
		"romantic", "family-vacation", "eco-tourism", "party",
		"roadtrip", "remote-work", "business-work", "health and wellness",
		"spiritual", "lbgtq+", "adventure", "general-tourism-no-theme",
	},
	"traveller_type": {
		"solo", "couple", "family-no kids", "family-with kids", "friends",
	},
	"budget": {
		"on a tight budget", "comfortable spending",
		"happy to spend for a luxurious vacation",
	},
	"food": {
		"any", "Middle-eastern", "indian", "asian", "european",
		"mexican", "vegetarian", "south american", "vegan",
		"seafood", "fast food", "cafe", "dessert", "healthy",
		"bar/pub", "barbeque", "pizza",
	},
	"trip_direction": {
		"return", "oneway",
	},
	"optimizeType": {
		"manual", "auto",
	},
	"time_schedule_duration_unit": {
		"week", "month", "days",
	},
	"time_schedule_onward_trip_date_year": {
		"current_year", "next_year",
	},
	"time_schedule_return_trip_date_year": {
		"current_year", "next_year",
	},
}

// OptionsFor returns the closed option set for fieldName, or an empty slice
// for any field without one (including "none" and unrecognized names).
func OptionsFor(fieldName string) []string {
	opts, ok := optionsTable[fieldName]
	if !ok {
		return []string{}
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}
