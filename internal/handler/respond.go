package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and error body. Unexpected errors are
// logged and answered with a generic 500 so internals never leak.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, errorBody(err))
}

// writeBadRequest answers 422 for input rejected before reaching a service.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, requestBody(message))
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
// On failure it writes the error response (413 for an oversized body, 422
// otherwise) and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeJSON(w, http.StatusRequestEntityTooLarge,
			requestBody(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)))
	case errors.Is(err, io.EOF):
		writeBadRequest(w, "request body is required")
	default:
		writeBadRequest(w, "malformed JSON body: "+err.Error())
	}
	return false
}

// pathPlanID binds the {planId} path parameter.
func pathPlanID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "planId", chi.URLParam(r, "planId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeBadRequest(w, "invalid planId: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// pathInt binds an integer path parameter such as {day}.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid %s: must be an integer", name))
		return 0, false
	}
	return v, true
}

// queryParam binds an optional query parameter into dst (a pointer to a
// pointer or a slice), leaving it untouched when absent.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	if err := runtime.BindQueryParameter("form", false, false, name, r.URL.Query(), dst); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid query parameter %s", name))
		return false
	}
	return true
}
