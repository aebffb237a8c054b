package domain

// Itinerary is the printable, day-grouped view of a plan.
// Days without entries are omitted, so Days may be shorter than TotalDays.
type Itinerary struct {
	Title      string         `json:"title"`
	TotalDays  int            `json:"total_days"`
	EventCount int            `json:"event_count"`
	RouteURL   string         `json:"route_url"`
	Days       []ItineraryDay `json:"days"`
}

// ItineraryDay is one printed day section.
type ItineraryDay struct {
	Day   int             `json:"day"`
	Items []ItineraryItem `json:"items"`
}

// ItineraryItem is one printed stop. All fields are display strings.
type ItineraryItem struct {
	EventID  string `json:"event_id"`
	TimeSlot string `json:"time_slot"`
	ImageURL string `json:"image_url,omitempty"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Duration string `json:"duration"`
}

// ShareMode tells the client how to hand the route to the user.
type ShareMode string

const (
	// ShareDirect means the client should open RouteURL itself (mobile).
	ShareDirect ShareMode = "direct"
	// ShareQR means the client should show QRImageURL for phone scanning.
	ShareQR ShareMode = "qr"
)

// ShareTarget is the result of preparing a plan's route for hand-off.
type ShareTarget struct {
	Mode       ShareMode `json:"mode"`
	RouteURL   string    `json:"route_url"`
	QRImageURL string    `json:"qr_image_url,omitempty"`
}

// QRImage is a fetched QR code image.
type QRImage struct {
	ContentType string
	Data        []byte
}
