package tracking

import (
	"encoding/json"
	"net/http"
	"time"
	"tracking-relay/dto"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"
	"tracking-relay/pkg/utils"

	"github.com/punky97/go-codebase/core/logger"
	"github.com/punky97/go-codebase/core/transport/transhttp"
	"github.com/spf13/cast"
)

// TrackingHandler is the server-side twin of the browser pixel: landing
// pages POST their view/lead/registration triggers here and the handler
// relays them to the campaign's pixels.
type TrackingHandler struct {
	Relay *facebook_tracking.Relay
}

type TrackingResponse struct {
	Success      bool              `json:"success"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Results      []*dto.SendResult `json:"results,omitempty"`
}

func (h *TrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		transhttp.RespondJSON(w, http.StatusMethodNotAllowed, TrackingResponse{
			ErrorMessage: "method not allowed",
		})
		return
	}

	action := &dto.TrackingBody{}
	if err := json.NewDecoder(r.Body).Decode(action); err != nil {
		logger.BkLog.Infof("Error during parse tracking body: %v", err)
		transhttp.RespondJSON(w, http.StatusBadRequest, TrackingResponse{
			ErrorMessage: "invalid body",
		})
		return
	}

	if len(action.EventType) < 1 {
		transhttp.RespondJSON(w, http.StatusBadRequest, TrackingResponse{
			ErrorMessage: "missing event type",
		})
		return
	}

	start := time.Now()
	logger.BkLog.Infof("Start tracking event: %v", action.EventType)
	defer func() {
		logger.BkLog.Infof("Complete tracking event %v, took: %v", action.EventType, time.Since(start))
	}()

	source := cast.ToString(action.Payload["source"])
	pixels := facebook_tracking.PixelsForSource(source)
	if len(pixels) == 0 {
		logger.BkLog.Warnf("No pixel configured for source %q, dropping event", source)
		transhttp.RespondJSON(w, http.StatusOK, TrackingResponse{
			Success:      false,
			ErrorMessage: "no pixel configured",
		})
		return
	}

	item := facebook_tracking.FromTrackingBody(action, facebook_tracking.ContextFromRequest(r))

	attempts := utils.ViperGetIntWithDefault("relay.max_attempts", 1)
	results := make([]*dto.SendResult, 0, len(pixels))
	for _, pixel := range pixels {
		res := h.Relay.SendWithRetry(r.Context(), pixel, item, attempts)
		if !res.Success {
			logger.BkLog.Errorw("Could not send event", "error", res.Error, "pid", pixel.Id)
		}
		results = append(results, res)
	}

	transhttp.RespondJSON(w, http.StatusOK, TrackingResponse{
		Success: true,
		Results: results,
	})
}
