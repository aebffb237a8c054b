// export.go implements the route, share, QR and itinerary endpoints.
// The itinerary supports content negotiation via ?format=html (default),
// ?format=json or ?format=csv.
package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/export"
)

// Itinerary formats accepted by GET /plans/{planId}/itinerary.
const (
	formatHTML = "html"
	formatJSON = "json"
	formatCSV  = "csv"
)

// GetRoute handles GET /plans/{planId}/route[?day=n].
// Without a day the route spans the whole plan.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var day *int
	if !queryParam(w, r, "day", &day) {
		return
	}
	d := 0
	if day != nil {
		if *day < 1 {
			writeBadRequest(w, "day must be at least 1")
			return
		}
		d = *day
	}

	u, err := s.exports.RouteURL(r.Context(), id, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RouteResponse{URL: u})
}

// GetShareTarget handles GET /plans/{planId}/share?prefer_direct_open=bool.
func (s *Server) GetShareTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var direct *bool
	if !queryParam(w, r, "prefer_direct_open", &direct) {
		return
	}

	target, err := s.exports.Share(r.Context(), id, direct != nil && *direct)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

// GetQRImage handles GET /plans/{planId}/qr.png by proxying the QR provider.
// A provider failure answers 502.
func (s *Server) GetQRImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	img, err := s.exports.QRImage(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(img.Data)
}

// GetItinerary handles GET /plans/{planId}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	f := formatHTML
	if format != nil {
		f = *format
	}
	if f != formatHTML && f != formatJSON && f != formatCSV {
		writeBadRequest(w, "format must be one of html, json, csv")
		return
	}

	it, err := s.exports.Itinerary(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if f == formatJSON {
		writeJSON(w, http.StatusOK, it)
		return
	}
	s.writeRendered(w, r, f, it)
}

// writeRendered renders it into a buffer first so a template or encoding
// failure can still produce a clean 500.
func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, format string, it domain.Itinerary) {
	var buf bytes.Buffer
	var err error
	switch format {
	case formatCSV:
		err = export.RenderCSV(&buf, it)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	default:
		err = export.RenderHTML(&buf, it)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if err != nil {
		w.Header().Del("Content-Disposition")
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}
