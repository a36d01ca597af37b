package dto

type Pixel struct {
	Id       string `json:"id"`
	Token    string `json:"token"`
	TestCode string `json:"test_code"`
}

type Data struct {
	Data          []*DataItem `json:"data"`
	TestEventCode string      `json:"test_event_code,omitempty"`
}

type DataItem struct {
	EventName      string                 `json:"event_name"`
	EventTime      int64                  `json:"event_time"`
	EventId        string                 `json:"event_id,omitempty"`
	EventSourceUrl string                 `json:"event_source_url,omitempty"`
	ActionSource   string                 `json:"action_source"`
	UserData       map[string]interface{} `json:"user_data,omitempty"`
	CustomData     map[string]interface{} `json:"custom_data,omitempty"`
	OptOut         bool                   `json:"opt_out,omitempty"`
}

// GraphResponse is the Conversions API response body, success or error.
type GraphResponse struct {
	EventsReceived int64       `json:"events_received"`
	FbTraceId      string      `json:"fbtrace_id"`
	Error          *GraphError `json:"error"`
}

type GraphError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FbTraceId string `json:"fbtrace_id"`
}

// SendResult is the relay outcome for one event sent to one pixel.
// Relay failures are carried here instead of being returned as errors
// so callers can always answer their own caller with success.
type SendResult struct {
	PixelId        string `json:"pixel_id"`
	EventName      string `json:"event_name"`
	Success        bool   `json:"success"`
	StatusCode     int    `json:"status_code,omitempty"`
	EventsReceived int64  `json:"events_received,omitempty"`
	FbTraceId      string `json:"fbtrace_id,omitempty"`
	Error          string `json:"error,omitempty"`
}
