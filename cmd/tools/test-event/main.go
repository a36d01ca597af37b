package main

import (
	"context"
	"flag"
	"strings"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"
	pixel_bridge "tracking-relay/pkg/pixel-bridge"

	"github.com/punky97/go-codebase/core/logger"
	"github.com/spf13/viper"
)

// Manual test trigger: sends one event through the pixel bridge to
// every pixel configured under tracking.<code>, using each pixel's
// test_event_code so the events land in the platform's test console.
func main() {
	var (
		configFile = flag.String("config", "", "viper config file")
		code       = flag.String("pixel", facebook_tracking.DefaultPixelCode, "pixel config code (tracking.<code>)")
		event      = flag.String("event", facebook_tracking.FbEventViewContent, "event name to send")
		custom     = flag.String("custom", "", "custom data, comma-separated k=v pairs")
	)
	flag.Parse()

	if *configFile != "" {
		viper.SetConfigFile(*configFile)
		if err := viper.ReadInConfig(); err != nil {
			logger.BkLog.Fatalf("Could not read config %v: %v", *configFile, err)
		}
	}

	pixels := facebook_tracking.GetPixelByCode(*code)
	if len(pixels) == 0 {
		logger.BkLog.Fatalf("No pixel configured under tracking.%v", *code)
	}

	ctx := context.Background()
	relay := facebook_tracking.NewRelay("")
	customData := parseCustom(*custom)

	for _, pixel := range pixels {
		bridge := pixel_bridge.New(pixel_bridge.NewHTTPScriptLoader(), &pixel_bridge.RelayEmitter{
			Relay: relay,
			Pixel: pixel,
		})
		if err := bridge.Initialize(ctx, pixel.Id); err != nil {
			logger.BkLog.Errorw("Could not initialize pixel bridge", "pid", pixel.Id, "err", err.Error())
			continue
		}

		var res interface{}
		if facebook_tracking.IsStandardEvent(*event) {
			res = bridge.Track(ctx, *event, customData)
		} else {
			res = bridge.TrackCustom(ctx, *event, customData)
		}
		logger.BkLog.Infow("Sent test event", "pid", pixel.Id, "event", *event, "result", res)
	}
}

func parseCustom(raw string) map[string]interface{} {
	custom := map[string]interface{}{}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		custom[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return custom
}
