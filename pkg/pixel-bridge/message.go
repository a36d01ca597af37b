package pixel_bridge

import (
	"strings"

	"github.com/spf13/cast"
)

// Booking-iframe message markers. The booking provider's cross-document
// message contract is not stable, so matching stays loose on purpose:
// known type/event values plus appointment/booking substrings.
var bookingMessageTypes = map[string]bool{
	"scheduling_success": true,
	"appointment_booked": true,
	"booking_completed":  true,
	"booking-success":    true,
	"msgsndr_booking":    true,
}

var bookingMessageKeys = []string{"type", "event", "action"}

// MatchBookingMessage reports whether a cross-document message from the
// embedded booking iframe looks like a completed booking.
func MatchBookingMessage(msg map[string]interface{}) bool {
	if msg == nil {
		return false
	}
	for _, key := range bookingMessageKeys {
		val := strings.ToLower(strings.TrimSpace(cast.ToString(msg[key])))
		if val == "" {
			continue
		}
		if bookingMessageTypes[val] {
			return true
		}
		if strings.Contains(val, "appointment") || strings.Contains(val, "booking") {
			return true
		}
	}
	return false
}
