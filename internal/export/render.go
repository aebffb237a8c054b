package export

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var itineraryTmpl = template.Must(template.ParseFS(templateFS, "templates/itinerary.html.tmpl"))

// RenderHTML writes the itinerary as a print-ready HTML page, one section per
// day with a page break between days.
func RenderHTML(w io.Writer, it domain.Itinerary) error {
	if err := itineraryTmpl.Execute(w, it); err != nil {
		return fmt.Errorf("export.RenderHTML: %w", err)
	}
	return nil
}

// csvHeaders defines the column names written as the first row of a CSV itinerary.
var csvHeaders = []string{"day", "time_slot", "event_id", "title", "location", "duration", "summary", "image_url"}

// RenderCSV writes one row per itinerary item, in day and visit order.
func RenderCSV(w io.Writer, it domain.Itinerary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("export.RenderCSV: %w", err)
	}
	for _, day := range it.Days {
		for _, item := range day.Items {
			record := []string{
				strconv.Itoa(day.Day),
				item.TimeSlot,
				item.EventID,
				item.Title,
				item.Location,
				item.Duration,
				item.Summary,
				item.ImageURL,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("export.RenderCSV: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.RenderCSV: %w", err)
	}
	return nil
}
