package codename

import "github.com/punky97/go-codebase/core/apimono"

var TrackingApi = apimono.NewApiCodeName("tracking_api", "/tracking")
