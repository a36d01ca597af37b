package facebook_tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"
	"tracking-relay/dto"
	"tracking-relay/pkg/utils"

	"github.com/punky97/go-codebase/core/logger"
	"github.com/spf13/viper"
)

const DefaultGraphApiBase = "https://graph.facebook.com/v11.0"

// Relay posts canonical events to the Conversions API, one event per
// request, one attempt per Send. Delivery guarantees beyond that are
// the caller's business (see SendWithRetry).
type Relay struct {
	BasePath string
	Client   *http.Client
}

// NewRelay builds a relay against the configured Graph API base
// (http_client.path). An explicit basePath overrides config, which the
// tests use to point at a local upstream.
func NewRelay(basePath string) *Relay {
	if basePath == "" {
		basePath = viper.GetString("http_client.path")
	}
	if basePath == "" {
		basePath = DefaultGraphApiBase
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxConnsPerHost = 100
	t.MaxIdleConnsPerHost = 100

	timeout := utils.ViperGetIntWithDefault("http_client.timeout", 30)

	return &Relay{
		BasePath: basePath,
		Client: &http.Client{
			Timeout:   time.Duration(timeout) * time.Second,
			Transport: t,
		},
	}
}

// Send posts one event to one pixel's events endpoint. Failures of any
// kind come back inside the SendResult, never as a panic or an error
// value, so the webhook ingress can always answer the CRM with success.
func (rl *Relay) Send(ctx context.Context, pixel *dto.Pixel, item *dto.DataItem) *dto.SendResult {
	logContext := logger.LoggerCtx(ctx)
	result := &dto.SendResult{PixelId: pixel.Id, EventName: item.EventName}

	body := &dto.Data{
		Data:          []*dto.DataItem{item},
		TestEventCode: pixel.TestCode,
	}
	rawBody, err := json.Marshal(body)
	if err != nil {
		logContext.Errorw("Error marshal body data", "err", err.Error())
		result.Error = err.Error()
		return result
	}

	path := fmt.Sprintf("%v/%v/events?access_token=%v", rl.BasePath, pixel.Id, url.QueryEscape(pixel.Token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewBuffer(rawBody))
	if err != nil {
		logContext.Errorw("Error create request", "err", err.Error())
		result.Error = err.Error()
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := rl.Client.Do(req)
	timeLog(start, "facebook events request")
	if err != nil {
		logContext.Errorw("Error send request", "err", err.Error(), "pid", pixel.Id, "event", EventDescription(item))
		result.Error = err.Error()
		return result
	}
	defer res.Body.Close()

	result.StatusCode = res.StatusCode
	rawRes, err := ioutil.ReadAll(res.Body)
	if err != nil {
		logContext.Errorw("Error read body", "err", err.Error())
	}

	graph := &dto.GraphResponse{}
	if len(rawRes) > 0 {
		if err := json.Unmarshal(rawRes, graph); err != nil {
			logContext.Warnf("Could not parse graph response: %v", err)
		}
	}

	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		result.Success = true
		result.EventsReceived = graph.EventsReceived
		result.FbTraceId = graph.FbTraceId
		return result
	}

	if graph.Error != nil {
		result.Error = graph.Error.Message
		result.FbTraceId = graph.Error.FbTraceId
	} else {
		result.Error = fmt.Sprintf("unexpected status %v", res.StatusCode)
	}
	logContext.Errorw("Graph API rejected event",
		"pid", pixel.Id, "event", EventDescription(item), "status", res.StatusCode, "err", result.Error)
	return result
}

// SendWithRetry wraps Send with a bounded number of attempts. The
// default is a single attempt, fire-and-forget; operators opt into
// more via relay.max_attempts.
func (rl *Relay) SendWithRetry(ctx context.Context, pixel *dto.Pixel, item *dto.DataItem, attempts int) *dto.SendResult {
	if attempts < 1 {
		attempts = 1
	}
	var result *dto.SendResult
	utils.Retry(func() error {
		result = rl.Send(ctx, pixel, item)
		if !result.Success {
			return fmt.Errorf("relay: %v", result.Error)
		}
		return nil
	}, attempts, 200)
	return result
}

func timeLog(ts time.Time, task string) {
	elapsed := time.Since(ts)
	if elapsed < 200*time.Millisecond {
		return
	}
	logger.BkLog.Infof("%v took %v", task, elapsed)
}
