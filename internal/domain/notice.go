package domain

import (
	"errors"
	"fmt"
)

// Notice is the lightweight, user-facing message attached to every rejected
// or no-op mutation. Clients render it as a toast.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// noticeTable lists sentinel errors in match order. The first sentinel found
// in the error chain decides the notice.
var noticeTable = []struct {
	err     error
	code    string
	message string
}{
	{ErrAlreadyPlanned, "already_planned", "This event is already in your trip."},
	{ErrDayNotEmpty, "day_not_empty", "Move or remove the events on this day first."},
	{ErrDayOutOfRange, "day_out_of_range", "That day is not part of your trip."},
	{ErrNotEnoughLocated, "not_enough_located_events", "At least 2 events with a location are required."},
	{ErrExternalService, "external_service_unavailable", "The map or QR code service could not be reached."},
	{ErrNotFound, "not_found", "The requested item could not be found."},
	{ErrValidation, "validation_error", "The request is not valid."},
}

// NoticeFor translates err into a Notice. Errors that wrap no known sentinel
// produce a generic notice so callers never show an empty toast.
func NoticeFor(err error) Notice {
	for _, n := range noticeTable {
		if errors.Is(err, n.err) {
			return Notice{Code: n.code, Message: n.message}
		}
	}
	return Notice{Code: "internal_error", Message: "Something went wrong. Please try again."}
}

// Notices for mutations that succeed without doing exactly what was asked.
var (
	NoticeNotPlanned = Notice{Code: "not_planned", Message: "This event is not in your trip."}
	NoticeNoChange   = Notice{Code: "no_change", Message: "Your trip already looks like that."}
	NoticeNotSaved   = Notice{Code: "not_saved", Message: "Your change was applied but could not be saved yet."}
)

// NoticeDaysClamped reports a requested day count outside [MinDays, MaxDays].
func NoticeDaysClamped(applied int) Notice {
	return Notice{
		Code:    "clamped",
		Message: fmt.Sprintf("Trips have %d to %d days. Your trip now has %d.", MinDays, MaxDays, applied),
	}
}

// NoticeActiveDayClamped reports a requested active day outside the trip.
func NoticeActiveDayClamped(applied int) Notice {
	return Notice{
		Code:    "clamped",
		Message: fmt.Sprintf("That day is not part of your trip. Showing day %d.", applied),
	}
}
