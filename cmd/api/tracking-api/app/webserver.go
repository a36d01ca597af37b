package app

import (
	"net/http"
	"tracking-relay/cmd/api/tracking-api/app/handlers/tracking"
	"tracking-relay/cmd/api/tracking-api/app/handlers/webhook"
	"tracking-relay/cmd/api/tracking-api/app/middlewares"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"

	"github.com/punky97/go-codebase/core/apimono"
	"github.com/punky97/go-codebase/core/logger"
	"github.com/punky97/go-codebase/core/transport/transhttp"
	"github.com/spf13/viper"
	"github.com/urfave/negroni"
)

type server struct {
	relay *facebook_tracking.Relay
}

var s = &server{}

func NewServer(apimonoApp *apimono.App) {
	apimonoApp.AddRoutes(s.InitTrackingRoutes(apimonoApp.HTTPBasePath))
}

func OnClose() {
}

func (s *server) InitTrackingRoutes(basePath string) transhttp.Routes {
	s.relay = facebook_tracking.NewRelay("")

	if viper.GetString("webhook.secret") == "" {
		logger.BkLog.Warnf("webhook.secret is not configured, webhook secret validation is disabled")
	}

	return transhttp.Routes{
		transhttp.Route{
			Name:     "track",
			Method:   http.MethodPost,
			BasePath: basePath,
			Pattern:  "/track",
			Handler: &tracking.TrackingHandler{
				Relay: s.relay,
			},
		},
		transhttp.Route{
			Name:     "booking-webhook",
			Method:   http.MethodPost,
			BasePath: basePath,
			Pattern:  "/webhook/booking",
			Handler: &webhook.WebhookHandler{
				Relay: s.relay,
			},
			Middlewares: []negroni.Handler{
				middlewares.NewSharedSecret(),
			},
		},
	}
}
