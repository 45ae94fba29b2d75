package ai

// FieldSpec describes one slot of the flat key-space for the model: the
// question to ask, its closed options if any, and extra handling
// instructions. The catalogue is data, not prompt prose, and is marshaled
// into every inference request; field names must match the schema's flat
// keys exactly.
type FieldSpec struct {
	FieldName    string   `json:"field_name"`
	Question     string   `json:"question,omitempty"`
	Options      []any    `json:"options,omitempty"`
	ValueOption  []string `json:"value_option,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

func strOptions(vals ...string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// FieldCatalogue is the static field-definition catalogue sent with every
// inference call. The ordering encodes the preferred questioning order;
// none of it is enforced mechanically, it is advisory to the model.
var FieldCatalogue = []FieldSpec{
	{
		FieldName: "optimizeType",
		Question:  "Would you prefer to sequence the list of cities manually, or should we auto-sequence them for you?",
		Options:   strOptions("manual", "auto"),
	},
	{
		FieldName: "firstDestination",
		Question:  "Where would you like to go first?",
	},
	{
		FieldName: "trip_theme",
		Question:  "What is the theme of your trip (e.g., adventure, beach, cultural)?",
		Options: strOptions(
			"romantic", "family-vacation", "eco-tourism", "party",
			"roadtrip", "remote-work", "business-work", "health and wellness",
			"spiritual", "lbgtq+", "adventure", "general-tourism-no-theme",
		),
	},
	{
		FieldName:    "destination",
		Question:     "Could you provide the list of destinations you plan to visit?",
		Instructions: "this will be a list so even in inference give back a list. if the user updates this then also give the final list in inference as whatever you give will be merged into the previous value",
	},
	{
		FieldName: "traveller_type",
		Question:  "What type of traveler are you (e.g., solo, family, friends)?",
		Options:   strOptions("solo", "couple", "family-no kids", "family-with kids", "friends"),
	},
	{
		FieldName: "Origin_city",
		Question:  "What is your city of origin?",
	},
	{
		FieldName: "budget",
		Question:  "How would you describe your budget for this trip?",
		Options: strOptions(
			"on a tight budget", "comfortable spending",
			"happy to spend for a luxurious vacation",
		),
	},
	{
		FieldName: "food",
		Question:  "Do you have any dietary preferences?",
		Options: strOptions(
			"any", "Middle-eastern", "indian", "asian", "european",
			"mexican", "vegetarian", "south american", "vegan",
			"seafood", "fast food", "cafe", "dessert", "healthy",
			"bar/pub", "barbeque", "pizza",
		),
	},
	{
		FieldName: "trip_direction",
		Question:  "Is your trip one-way or round-trip?",
		Options:   strOptions("return", "oneway"),
	},
	{
		FieldName:    "time_schedule_onward_trip_time_hour",
		Question:     "At what time would you like to depart?",
		ValueOption:  []string{"AM/PM", "24Hour"},
		Instructions: "user needs to specify if the time is in am or pm or in 24 hour format if you cannot infer this then ask user for clarification",
	},
	{
		FieldName: "time_schedule_onward_trip_time_minute",
		Question:  "Minute:",
	},
	{
		FieldName: "time_schedule_onward_trip_date_day_of_month",
		Question:  "Day of the month:",
		Options:   []any{1, 31},
	},
	{
		FieldName: "time_schedule_onward_trip_date_month",
		Question:  "Month:",
		Options:   []any{1, 12},
	},
	{
		FieldName: "time_schedule_onward_trip_date_year",
		Question:  "Year:",
		Options:   strOptions("current_year", "next_year"),
	},
	{
		FieldName:    "time_schedule_return_trip_time_hour",
		Question:     "At what time would you like to depart?",
		ValueOption:  []string{"AM/PM", "24Hour"},
		Instructions: "user needs to specify if the time is in am or pm or in 24 hour format if you cannot infer this then ask user for clarification",
	},
	{
		FieldName: "time_schedule_return_trip_time_minute",
		Question:  "Minute:",
	},
	{
		FieldName: "time_schedule_return_trip_date_day_of_month",
		Question:  "Day of the month:",
		Options:   []any{1, 31},
	},
	{
		FieldName: "time_schedule_return_trip_date_month",
		Question:  "Month:",
		Options:   []any{1, 12},
	},
	{
		FieldName: "time_schedule_return_trip_date_year",
		Question:  "Year:",
		Options:   strOptions("current_year", "next_year"),
	},
	{
		FieldName: "time_schedule_duration_value",
		Question:  "Duration value:",
	},
	{
		FieldName: "time_schedule_duration_unit",
		Question:  "Duration unit:",
		Options:   strOptions("week", "month", "days"),
	},
	{
		FieldName:    "user_interest_interest-name",
		Instructions: "Observe the conversation context and user input to infer the user's general interests for the trip. Set appropriate values for weight, user_selected, places, and user_keywords based on the discussion. Each interest you set true starts with an initial weight of 0.5 and grows by 0.1 whenever the user shows more interest in it (mentions it again or indicates stronger interest); grow the weight incrementally, never overwrite it downward. Record the user's own words in user_keywords, and any specific places the user mentions for that interest in its places list.",
	},
}
