package pixel_bridge

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
	"tracking-relay/dto"
	facebook_tracking "tracking-relay/pkg/facebook-tracking"
	"tracking-relay/pkg/utils"

	"github.com/google/uuid"
	"github.com/punky97/go-codebase/core/logger"
)

// State is the bridge lifecycle. There is no ambient global to poke at,
// the state is owned by the Bridge and nothing else.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// ScriptLoader fetches the platform tracking bundle for a stream.
type ScriptLoader interface {
	Load(ctx context.Context, streamId string) error
}

// Emitter delivers a built event to its destination.
type Emitter interface {
	Emit(ctx context.Context, item *dto.DataItem) *dto.SendResult
}

// Bridge is the tracking client for a single destination stream. Track
// calls made before Initialize completes are dropped with a warning,
// never queued.
type Bridge struct {
	mu       sync.Mutex
	state    State
	streamId string
	loader   ScriptLoader
	emitter  Emitter
}

func New(loader ScriptLoader, emitter Emitter) *Bridge {
	return &Bridge{loader: loader, emitter: emitter}
}

func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Initialize loads the tracking script once for the given stream. Safe
// to call multiple times; calls after the first successful load are
// no-ops. A failed load leaves the bridge uninitialized so a later call
// can try again.
func (b *Bridge) Initialize(ctx context.Context, streamId string) error {
	b.mu.Lock()
	if b.state != StateUninitialized {
		b.mu.Unlock()
		return nil
	}
	b.state = StateLoading
	b.mu.Unlock()

	if err := b.loader.Load(ctx, streamId); err != nil {
		b.mu.Lock()
		b.state = StateUninitialized
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.state = StateReady
	b.streamId = streamId
	b.mu.Unlock()
	return nil
}

// Track fires a standard platform event. Unknown event names are
// refused, use TrackCustom for those.
func (b *Bridge) Track(ctx context.Context, eventName string, custom map[string]interface{}) *dto.SendResult {
	if !facebook_tracking.IsStandardEvent(eventName) {
		logger.BkLog.Warnf("Refusing to track %v as standard event", eventName)
		return nil
	}
	return b.emit(ctx, eventName, custom)
}

func (b *Bridge) TrackCustom(ctx context.Context, eventName string, custom map[string]interface{}) *dto.SendResult {
	return b.emit(ctx, eventName, custom)
}

func (b *Bridge) emit(ctx context.Context, eventName string, custom map[string]interface{}) *dto.SendResult {
	if b.State() != StateReady {
		logger.BkLog.Warnf("Pixel bridge not ready, dropping event %v", eventName)
		return nil
	}
	return b.emitter.Emit(ctx, &dto.DataItem{
		EventName:    eventName,
		EventTime:    time.Now().Unix(),
		EventId:      uuid.New().String(),
		ActionSource: facebook_tracking.ActionSourceWebsite,
		CustomData:   custom,
	})
}

// HTTPScriptLoader fetches the platform's tracking bundle over HTTP.
type HTTPScriptLoader struct {
	Client *http.Client
}

func NewHTTPScriptLoader() *HTTPScriptLoader {
	return &HTTPScriptLoader{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (l *HTTPScriptLoader) Load(ctx context.Context, streamId string) error {
	scriptUrl := utils.ViperGetStringWithDefault("pixel.script_url", "https://connect.facebook.net/en_US/fbevents.js")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%v?id=%v", scriptUrl, streamId), nil)
	if err != nil {
		return err
	}
	res, err := l.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("script load returned status %v", res.StatusCode)
	}
	return nil
}

// RelayEmitter sends bridge events through the Conversions relay.
type RelayEmitter struct {
	Relay *facebook_tracking.Relay
	Pixel *dto.Pixel
}

func (e *RelayEmitter) Emit(ctx context.Context, item *dto.DataItem) *dto.SendResult {
	return e.Relay.Send(ctx, e.Pixel, item)
}
