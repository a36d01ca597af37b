package facebook_tracking

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"tracking-relay/dto"
	"tracking-relay/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// RequestContext carries the browser/network identifiers available on
// the inbound request. Every field is best effort, absence is fine.
type RequestContext struct {
	ClientIp  string
	UserAgent string
	SourceUrl string
	Fbp       string
	Fbc       string
}

func ContextFromRequest(r *http.Request) RequestContext {
	return RequestContext{
		ClientIp:  utils.ClientIp(r),
		UserAgent: r.Header.Get("User-Agent"),
		SourceUrl: r.Header.Get("Referer"),
	}
}

// Event type strings the CRM is known to send for bookings. Matching is
// deliberately loose because the CRM also delivers unrelated webhook
// types to the same endpoint.
var appointmentEventTypes = map[string]bool{
	"appointmentcreate":  true,
	"appointmentupdate":  true,
	"appointment.create": true,
	"booking_created":    true,
	"bookingcreated":     true,
}

// IsAppointmentEvent reports whether a webhook payload represents a
// booking. Non-appointment payloads are dropped upstream, not rejected.
func IsAppointmentEvent(p *dto.WebhookPayload) bool {
	if p == nil {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(p.Type))
	if appointmentEventTypes[t] || strings.Contains(t, "appointment") {
		return true
	}
	return p.Appointment != nil && strings.EqualFold(p.Appointment.Status, "confirmed")
}

// SplitName splits a full name into first and last: first token is the
// first name, the remaining tokens joined are the last name.
func SplitName(full string) (first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", ""
	}
	first = tokens[0]
	last = strings.Join(tokens[1:], " ")
	return
}

// FromWebhookPayload converts a qualifying booking payload into the two
// events reported for every completed booking: CompleteRegistration and
// Lead. Both share the same event time, hashed contact data and custom
// data core; only the content_name wording differs. The redundancy with
// the client-side pixel is intentional, the platform deduplicates via
// fbp/fbc.
func FromWebhookPayload(p *dto.WebhookPayload, rc RequestContext) []*dto.DataItem {
	first, last, full := p.ContactNames()
	if first == "" && last == "" {
		first, last = SplitName(full)
	}

	userData := map[string]interface{}{}
	setHashed(userData, "em", HashEmail(p.ContactEmail()))
	setHashed(userData, "ph", HashPhone(p.ContactPhone()))
	setHashed(userData, "fn", HashName(first))
	setHashed(userData, "ln", HashName(last))
	if rc.ClientIp != "" {
		userData["client_ip_address"] = rc.ClientIp
	}
	if rc.UserAgent != "" {
		userData["client_user_agent"] = rc.UserAgent
	}
	if rc.Fbp != "" {
		userData["fbp"] = rc.Fbp
	}
	if rc.Fbc != "" {
		userData["fbc"] = rc.Fbc
	}

	customCore := map[string]interface{}{
		"content_category": "booking",
	}
	if p.Appointment != nil && p.Appointment.Title != "" {
		customCore["content_type"] = p.Appointment.Title
	}

	sourceUrl := p.PageUrl
	if sourceUrl == "" {
		sourceUrl = rc.SourceUrl
	}
	eventTime := time.Now().Unix()

	bookingEvent := func(eventName, contentName string) *dto.DataItem {
		customData := map[string]interface{}{
			"content_name": contentName,
		}
		for k, v := range customCore {
			customData[k] = v
		}
		return &dto.DataItem{
			EventName:      eventName,
			EventTime:      eventTime,
			EventId:        uuid.New().String(),
			EventSourceUrl: sourceUrl,
			ActionSource:   ActionSourceWebsite,
			UserData:       userData,
			CustomData:     customData,
		}
	}

	return []*dto.DataItem{
		bookingEvent(FbEventCompleteRegistration, "Booking Confirmed"),
		bookingEvent(FbEventLead, "Booking Lead"),
	}
}

// Payload keys carrying raw PII. Hashed before the event leaves the
// process, the raw values never reach the outbound payload or the logs.
var piiFields = []string{"em", "ph", "fn", "ln"}

// Payload keys forwarded into user_data without hashing.
var passthroughFields = []string{"fbp", "fbc", "external_id"}

// FromTrackingBody converts a client trigger into a single event. The
// remaining payload keys become custom_data as-is.
func FromTrackingBody(body *dto.TrackingBody, rc RequestContext) *dto.DataItem {
	params := body.Payload
	if params == nil {
		params = map[string]interface{}{}
	}

	userData := map[string]interface{}{}
	for _, field := range piiFields {
		raw := cast.ToString(params[field])
		var hashed string
		switch field {
		case "em":
			hashed = HashEmail(raw)
		case "ph":
			hashed = HashPhone(raw)
		default:
			hashed = HashName(raw)
		}
		setHashed(userData, field, hashed)
		delete(params, field)
	}
	for _, field := range passthroughFields {
		if val := cast.ToString(params[field]); val != "" {
			userData[field] = val
		}
		delete(params, field)
	}
	if rc.ClientIp != "" {
		userData["client_ip_address"] = rc.ClientIp
	}
	if rc.UserAgent != "" {
		userData["client_user_agent"] = rc.UserAgent
	}

	sourceUrl := cast.ToString(params["source_url"])
	if sourceUrl == "" {
		sourceUrl = rc.SourceUrl
	}
	delete(params, "source_url")

	eventId := cast.ToString(params["event_id"])
	if eventId == "" {
		eventId = uuid.New().String()
	}
	delete(params, "event_id")
	delete(params, "source")

	return &dto.DataItem{
		EventName:      ToFacebookEvent(body.EventType),
		EventTime:      time.Now().Unix(),
		EventId:        eventId,
		EventSourceUrl: sourceUrl,
		ActionSource:   ActionSourceWebsite,
		UserData:       userData,
		CustomData:     params,
	}
}

func setHashed(userData map[string]interface{}, key, hashed string) {
	if hashed == "" {
		return
	}
	userData[key] = hashed
}

// EventDescription is used in relay logs, it must never include PII.
func EventDescription(item *dto.DataItem) string {
	return fmt.Sprintf("%v@%v", item.EventName, item.EventTime)
}
