package main

import (
	"net/http"
	"tracking-relay/cmd/api/tracking-api/app"
	"tracking-relay/pkg/codename"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"
	"tracking-relay/pkg/utils"

	"github.com/punky97/go-codebase/core/apimono"
	"github.com/punky97/go-codebase/core/logger"
)

var version string

func main() {
	bkMicroApp, hs := apimono.NewAPIApp(
		codename.TrackingApi.CodeName,
		codename.TrackingApi.HTTPBasePath,
		version,
		onClose,
	)

	logger.BkLog.Infof("Graph API base: %v",
		utils.ViperGetStringWithDefault("http_client.path", facebook_tracking.DefaultGraphApiBase))

	// init server
	app.NewServer(bkMicroApp)

	// register micro app to service discovery (consul)
	defer onClose(bkMicroApp)

	// run api
	err := bkMicroApp.RunAPI(hs)
	if err != nil {
		if err.Error() == http.ErrServerClosed.Error() {
			logger.BkLog.Info(http.ErrServerClosed.Error())
		} else {
			logger.BkLog.Errorf("HTTP server closed with error: %v", err)
		}
	}
}

func onClose(bkMicroApp *apimono.App) {
	app.OnClose()
	bkMicroApp.Shutdown()
}
