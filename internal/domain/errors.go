package domain

import "errors"

// ErrNotFound is returned when the requested plan, event, or planned entry
// does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty event id, malformed start time, duration out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAlreadyPlanned is returned when an event is added to a plan that already
// holds it on any day. The plan is left unchanged.
var ErrAlreadyPlanned = errors.New("already planned")

// ErrDayOutOfRange is returned when a day number is outside [1, TotalDays].
var ErrDayOutOfRange = errors.New("day out of range")

// ErrDayNotEmpty is returned when removing days would drop planned entries.
var ErrDayNotEmpty = errors.New("day not empty")

// ErrNotEnoughLocated is returned by routing and export when fewer than
// MinRouteStops planned events carry coordinates.
var ErrNotEnoughLocated = errors.New("not enough located events")

// ErrExternalService is returned when a best-effort outbound call (QR image
// provider) fails. No retry is attempted.
var ErrExternalService = errors.New("external service unavailable")
