package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"tracking-relay/dto"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"
	"tracking-relay/pkg/utils"

	"github.com/punky97/go-codebase/core/logger"
	"github.com/punky97/go-codebase/core/transport/transhttp"
)

// WebhookHandler receives booking-confirmation callbacks from the CRM
// and relays qualifying appointments to the Conversions API. The CRM
// gets a 200 whenever our own processing succeeded; Graph API outcomes
// are reported in the response body only, so ad-platform availability
// never fails the webhook contract.
type WebhookHandler struct {
	Relay *facebook_tracking.Relay
}

type WebhookResponse struct {
	Message string            `json:"message"`
	Results []*dto.SendResult `json:"results,omitempty"`
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		transhttp.RespondJSON(w, http.StatusMethodNotAllowed, WebhookResponse{
			Message: "method not allowed",
		})
		return
	}

	payload := &dto.WebhookPayload{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		logger.BkLog.Infof("Error during parse webhook body: %v", err)
		transhttp.RespondJSON(w, http.StatusBadRequest, WebhookResponse{
			Message: "invalid body",
		})
		return
	}

	// Other CRM webhook types land here too; accept and drop them.
	if !facebook_tracking.IsAppointmentEvent(payload) {
		logger.BkLog.Infof("Ignoring webhook type %q", payload.Type)
		transhttp.RespondJSON(w, http.StatusOK, WebhookResponse{
			Message: fmt.Sprintf("ignored webhook type %q", payload.Type),
		})
		return
	}

	start := time.Now()
	logger.BkLog.Infof("Start relay booking webhook, type: %v", payload.Type)
	defer func() {
		logger.BkLog.Infof("Complete relay booking webhook, took: %v", time.Since(start))
	}()

	pixels := facebook_tracking.PixelsForSource(payload.SourceTag())
	if len(pixels) == 0 {
		logger.BkLog.Warnf("No pixel configured for source %q, booking not relayed", payload.SourceTag())
		transhttp.RespondJSON(w, http.StatusOK, WebhookResponse{
			Message: "no pixel configured",
		})
		return
	}

	items := facebook_tracking.FromWebhookPayload(payload, facebook_tracking.ContextFromRequest(r))

	attempts := utils.ViperGetIntWithDefault("relay.max_attempts", 1)
	results := make([]*dto.SendResult, 0, len(items)*len(pixels))
	for _, pixel := range pixels {
		for _, item := range items {
			res := h.Relay.SendWithRetry(r.Context(), pixel, item, attempts)
			if !res.Success {
				logger.BkLog.Errorw("Could not relay booking event",
					"error", res.Error, "pid", pixel.Id, "event", item.EventName)
			}
			results = append(results, res)
		}
	}

	transhttp.RespondJSON(w, http.StatusOK, WebhookResponse{
		Message: "forwarded",
		Results: results,
	})
}
