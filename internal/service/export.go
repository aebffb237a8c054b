package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// PlanReader returns plan snapshots. *PlannerService satisfies it.
type PlanReader interface {
	Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)
}

// Exporter turns plan snapshots into shareable artifacts.
// *export.Exporter satisfies it.
type Exporter interface {
	RouteURL(plan domain.TripPlan, day int) (string, error)
	Share(plan domain.TripPlan, preferDirectOpen bool) (domain.ShareTarget, error)
	RequestQRImage(ctx context.Context, plan domain.TripPlan) (domain.QRImage, error)
	RenderPrintableDocument(plan domain.TripPlan) (domain.Itinerary, error)
}

// ExportService reads a plan snapshot and hands it to the exporter.
// It never mutates plans.
type ExportService struct {
	plans    PlanReader
	exporter Exporter
}

// NewExportService constructs an ExportService.
func NewExportService(plans PlanReader, exporter Exporter) *ExportService {
	return &ExportService{plans: plans, exporter: exporter}
}

// RouteURL returns the maps URL for the whole plan (day 0) or one day.
func (s *ExportService) RouteURL(ctx context.Context, id uuid.UUID, day int) (string, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.RouteURL: %w", err)
	}
	u, err := s.exporter.RouteURL(plan, day)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.RouteURL: %w", err)
	}
	return u, nil
}

// Share prepares the plan's route for hand-off to a phone.
func (s *ExportService) Share(ctx context.Context, id uuid.UUID, preferDirectOpen bool) (domain.ShareTarget, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return domain.ShareTarget{}, fmt.Errorf("service.ExportService.Share: %w", err)
	}
	target, err := s.exporter.Share(plan, preferDirectOpen)
	if err != nil {
		return domain.ShareTarget{}, fmt.Errorf("service.ExportService.Share: %w", err)
	}
	return target, nil
}

// QRImage fetches the QR code PNG for the plan's route.
func (s *ExportService) QRImage(ctx context.Context, id uuid.UUID) (domain.QRImage, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return domain.QRImage{}, fmt.Errorf("service.ExportService.QRImage: %w", err)
	}
	img, err := s.exporter.RequestQRImage(ctx, plan)
	if err != nil {
		return domain.QRImage{}, fmt.Errorf("service.ExportService.QRImage: %w", err)
	}
	return img, nil
}

// Itinerary builds the printable itinerary for the plan.
func (s *ExportService) Itinerary(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: %w", err)
	}
	it, err := s.exporter.RenderPrintableDocument(plan)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: %w", err)
	}
	return it, nil
}
