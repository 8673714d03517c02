package models

// ServiceTypeMetadata describes one host-offerable service in the fixed
// onboarding catalog.
type ServiceTypeMetadata struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// HostServiceCatalog is the fixed catalog a prospective host selects from
// during onboarding. Selections outside this map are rejected.
var HostServiceCatalog = map[string]ServiceTypeMetadata{
	"bnb_hosting": {
		ID:       "bnb_hosting",
		Label:    "BnB Hosting",
		Icon:     "🏠",
		Category: "Stays",
	},
	"car_rental": {
		ID:       "car_rental",
		Label:    "Car Rentals",
		Icon:     "🚗",
		Category: "Mobility",
	},
	"tour_guiding": {
		ID:       "tour_guiding",
		Label:    "Tour Guiding",
		Icon:     "🧭",
		Category: "Experiences",
	},
	"airbnb_management": {
		ID:       "airbnb_management",
		Label:    "Property Management",
		Icon:     "🧹",
		Category: "Stays",
	},
	"airport_transfer": {
		ID:       "airport_transfer",
		Label:    "Airport Transfers",
		Icon:     "🛬",
		Category: "Mobility",
	},
	"event_planning": {
		ID:       "event_planning",
		Label:    "Event Planning",
		Icon:     "🎉",
		Category: "Experiences",
	},
}
