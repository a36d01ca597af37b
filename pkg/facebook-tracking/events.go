package facebook_tracking

const (
	ActionSourceWebsite = "website"

	// Site-side event names emitted by the landing pages.
	EventPageView        = "page_view"
	EventLeadSubmit      = "lead_submit"
	EventBookingComplete = "booking_complete"
	EventCalculatorUsed  = "calculator_used"

	FbEventViewContent          = "ViewContent"
	FbEventLead                 = "Lead"
	FbEventCompleteRegistration = "CompleteRegistration"
	FbEventSchedule             = "Schedule"
	FbEventContact              = "Contact"
)

var (
	SiteEventToFacebookEvent = map[string]string{
		EventPageView:        FbEventViewContent,
		EventLeadSubmit:      FbEventLead,
		EventBookingComplete: FbEventCompleteRegistration,
	}

	standardFacebookEvents = map[string]bool{
		FbEventViewContent:          true,
		FbEventLead:                 true,
		FbEventCompleteRegistration: true,
		FbEventSchedule:             true,
		FbEventContact:              true,
	}
)

// ToFacebookEvent maps a site event name to its standard Facebook event.
// Unknown names pass through unchanged and are sent as custom events.
func ToFacebookEvent(siteEvent string) string {
	if fbEvent, ok := SiteEventToFacebookEvent[siteEvent]; ok {
		return fbEvent
	}
	return siteEvent
}

func IsStandardEvent(eventName string) bool {
	return standardFacebookEvents[eventName]
}
