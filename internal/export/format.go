package export

import (
	"fmt"
	"strings"
)

// timeSlots are the suggested visit times by position within a day. Entries
// past the end of the list reuse the last slot.
var timeSlots = []string{"09:00", "11:00", "13:30", "15:30", "18:00", "20:00"}

// TimeSlot returns the label for the entry at index. An explicit start time
// wins over the positional slot.
func TimeSlot(index int, startTime string) string {
	if startTime != "" {
		return startTime
	}
	if index < 0 {
		index = 0
	}
	if index >= len(timeSlots) {
		return timeSlots[len(timeSlots)-1]
	}
	return timeSlots[index]
}

// FormatDuration renders minutes as "Xh Ymin", "Xh" or "Ymin".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dmin", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dmin", m)
	}
}

// FirstSentence returns s up to and including the first '.', '!' or '?'.
// The whole trimmed string is returned when there is no terminator.
func FirstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return s[:i+1]
	}
	return s
}
