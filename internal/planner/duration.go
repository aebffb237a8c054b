package planner

import (
	"strings"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// museumKeywords mark titles of events that usually take longer to visit.
// Matching is case-insensitive and substring based.
var museumKeywords = []string{"museum", "galerie", "gallery", "kunstmuseum", "art museum"}

// ClassifyDuration returns the default visit length in minutes for event.
func ClassifyDuration(event domain.Event) int {
	title := strings.ToLower(event.Title)
	for _, kw := range museumKeywords {
		if strings.Contains(title, kw) {
			return domain.MuseumDuration
		}
	}
	return domain.DefaultDuration
}
