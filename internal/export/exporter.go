// Package export produces the user-facing artifacts of a trip plan: the
// route hand-off (direct map link or QR code) and the printable itinerary.
//
// Every export requires at least domain.MinRouteStops located events across
// the whole plan, mirroring the route generator; otherwise it fails with
// domain.ErrNotEnoughLocated and produces nothing.
package export

import (
	"context"
	"fmt"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/route"
)

// DefaultTitle heads printed itineraries.
const DefaultTitle = "My EventBuzzer Trip"

// Exporter renders plans into shareable artifacts.
// It only reads the snapshots it is given.
type Exporter struct {
	routes *route.Generator
	qr     *QRClient
	title  string
}

// NewExporter wires an Exporter to a route generator and QR client.
func NewExporter(routes *route.Generator, qr *QRClient) *Exporter {
	return &Exporter{routes: routes, qr: qr, title: DefaultTitle}
}

// RouteURL returns the driving route for the whole plan (day 0) or one day.
func (e *Exporter) RouteURL(plan domain.TripPlan, day int) (string, error) {
	if day != 0 && !plan.HasDay(day) {
		return "", fmt.Errorf("export.Exporter.RouteURL: %w: day %d", domain.ErrDayOutOfRange, day)
	}

	var (
		u  string
		ok bool
	)
	if day == 0 {
		u, ok = e.routes.ForPlan(plan)
	} else {
		u, ok = e.routes.ForDay(plan, day)
	}
	if !ok {
		return "", fmt.Errorf("export.Exporter.RouteURL: %w", domain.ErrNotEnoughLocated)
	}
	return u, nil
}

// Share prepares the full-plan route for hand-off. With preferDirectOpen the
// client is told to open the map link itself; otherwise it gets a QR image
// URL to show for scanning.
func (e *Exporter) Share(plan domain.TripPlan, preferDirectOpen bool) (domain.ShareTarget, error) {
	u, err := e.RouteURL(plan, 0)
	if err != nil {
		return domain.ShareTarget{}, err
	}
	if preferDirectOpen {
		return domain.ShareTarget{Mode: domain.ShareDirect, RouteURL: u}, nil
	}
	return domain.ShareTarget{Mode: domain.ShareQR, RouteURL: u, QRImageURL: e.qr.ImageURL(u)}, nil
}

// RequestQRImage fetches the QR code for the plan's full route.
func (e *Exporter) RequestQRImage(ctx context.Context, plan domain.TripPlan) (domain.QRImage, error) {
	u, err := e.RouteURL(plan, 0)
	if err != nil {
		return domain.QRImage{}, err
	}
	return e.qr.Fetch(ctx, u)
}

// RenderPrintableDocument builds the day-grouped itinerary. Days without
// entries are left out.
func (e *Exporter) RenderPrintableDocument(plan domain.TripPlan) (domain.Itinerary, error) {
	if plan.LocatedCount() < domain.MinRouteStops {
		return domain.Itinerary{}, fmt.Errorf("export.Exporter.RenderPrintableDocument: %w", domain.ErrNotEnoughLocated)
	}
	routeURL, _ := e.routes.ForPlan(plan)

	it := domain.Itinerary{
		Title:      e.title,
		TotalDays:  plan.TotalDays,
		EventCount: plan.TotalEventCount(),
		RouteURL:   routeURL,
		Days:       []domain.ItineraryDay{},
	}
	for i, entries := range plan.Days {
		if len(entries) == 0 {
			continue
		}
		day := domain.ItineraryDay{Day: i + 1, Items: make([]domain.ItineraryItem, 0, len(entries))}
		for idx, entry := range entries {
			day.Items = append(day.Items, itemFor(idx, entry))
		}
		it.Days = append(it.Days, day)
	}
	return it, nil
}

func itemFor(idx int, entry domain.PlannedEntry) domain.ItineraryItem {
	ev := entry.Event
	title := ev.Title
	if title == "" {
		title = ev.RouteLabel()
	}
	return domain.ItineraryItem{
		EventID:  entry.EventID,
		TimeSlot: TimeSlot(idx, entry.StartTime),
		ImageURL: ev.ImageURL,
		Title:    title,
		Location: ev.LocationLabel(),
		Summary:  FirstSentence(ev.Summary()),
		Duration: FormatDuration(entry.Duration),
	}
}
