package dto

type TrackingBody struct {
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
}

// WebhookPayload is the untrusted booking-callback body sent by the CRM.
// No schema is enforced upstream, so every field is optional and the
// contact block may arrive nested or flattened onto the top level.
type WebhookPayload struct {
	Type        string              `json:"type"`
	Source      string              `json:"source"`
	Campaign    string              `json:"campaign"`
	LocationId  string              `json:"locationId"`
	Contact     *WebhookContact     `json:"contact"`
	Appointment *WebhookAppointment `json:"appointment"`

	// Flattened contact fields, some CRM webhook versions send these
	// at the top level instead of a contact object.
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	PageUrl   string `json:"page_url"`
}

type WebhookContact struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type WebhookAppointment struct {
	Id         string `json:"id"`
	CalendarId string `json:"calendarId"`
	Title      string `json:"title"`
	Status     string `json:"status"`
}

// ContactEmail returns the contact email regardless of payload shape.
func (p *WebhookPayload) ContactEmail() string {
	if p.Contact != nil && p.Contact.Email != "" {
		return p.Contact.Email
	}
	return p.Email
}

func (p *WebhookPayload) ContactPhone() string {
	if p.Contact != nil && p.Contact.Phone != "" {
		return p.Contact.Phone
	}
	return p.Phone
}

// ContactNames returns explicit first/last names when present and the
// unsplit full name otherwise. Splitting is the normalizer's job.
func (p *WebhookPayload) ContactNames() (first, last, full string) {
	if p.Contact != nil {
		first, last, full = p.Contact.FirstName, p.Contact.LastName, p.Contact.Name
	}
	if first == "" && p.FirstName != "" {
		first = p.FirstName
	}
	if last == "" && p.LastName != "" {
		last = p.LastName
	}
	if full == "" {
		full = p.FullName
	}
	return
}

// SourceTag is the campaign discriminator used for pixel selection.
func (p *WebhookPayload) SourceTag() string {
	if p.Source != "" {
		return p.Source
	}
	return p.Campaign
}
