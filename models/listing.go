package models

// BnbListing is a bookable BnB property.
type BnbListing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	NightlyRate float64 `json:"nightly_rate"`
	Currency    string  `json:"currency"`
	MinNights   int     `json:"min_nights"`   // Minimum stay length enforced at submit time
	MaxGuests   int     `json:"max_guests"`
	Rating      float64 `json:"rating,omitempty"`
	FeesNote    string  `json:"fees_note,omitempty"` // e.g. "Service and cleaning fees included"
}

// Vehicle is a bookable rental car.
type Vehicle struct {
	ID        string  `json:"id"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	Year      int     `json:"year"`
	DailyRate float64 `json:"daily_rate"`
	Currency  string  `json:"currency"`
	Location  string  `json:"location"`
	Seats     int     `json:"seats,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
}

// TourPackage is a bookable tour.
type TourPackage struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Location     string  `json:"location"`
	Rating       float64 `json:"rating,omitempty"`
}

// BnbSearchFilter narrows BnB search reads.
type BnbSearchFilter struct {
	Location string  `json:"location,omitempty"`
	Guests   int     `json:"guests,omitempty"`
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
}

// VehicleSearchFilter narrows vehicle search reads.
type VehicleSearchFilter struct {
	Location string  `json:"location,omitempty"`
	Make     string  `json:"make,omitempty"`
	MaxRate  float64 `json:"max_rate,omitempty"`
}

// TourSearchFilter narrows tour search reads.
type TourSearchFilter struct {
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
}
