package facebook_tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"tracking-relay/dto"

	"github.com/stretchr/testify/assert"
)

func testRelay(baseUrl string) *Relay {
	return &Relay{BasePath: baseUrl, Client: &http.Client{Timeout: 5 * time.Second}}
}

func testItem() *dto.DataItem {
	return &dto.DataItem{
		EventName:    FbEventLead,
		EventTime:    time.Now().Unix(),
		EventId:      "evt-1",
		ActionSource: ActionSourceWebsite,
		UserData:     map[string]interface{}{"em": HashEmail("a@b.com")},
	}
}

func TestSendSuccess(t *testing.T) {
	var gotPath, gotToken string
	var gotBody dto.Data
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events_received":1,"fbtrace_id":"trace-1"}`))
	}))
	defer upstream.Close()

	res := testRelay(upstream.URL).Send(context.Background(), &dto.Pixel{Id: "pix1", Token: "tok1"}, testItem())

	assert.True(t, res.Success)
	assert.Equal(t, "pix1", res.PixelId)
	assert.Equal(t, FbEventLead, res.EventName)
	assert.Equal(t, int64(1), res.EventsReceived)
	assert.Equal(t, "trace-1", res.FbTraceId)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "/pix1/events", gotPath)
	assert.Equal(t, "tok1", gotToken)
	assert.Len(t, gotBody.Data, 1)
	assert.Equal(t, FbEventLead, gotBody.Data[0].EventName)
}

func TestSendIncludesTestEventCode(t *testing.T) {
	var gotBody dto.Data
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"events_received":1}`))
	}))
	defer upstream.Close()

	testRelay(upstream.URL).Send(context.Background(), &dto.Pixel{Id: "pix1", TestCode: "TEST123"}, testItem())

	assert.Equal(t, "TEST123", gotBody.TestEventCode)
}

func TestSendGraphError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"fbtrace_id":"trace-err"}}`))
	}))
	defer upstream.Close()

	res := testRelay(upstream.URL).Send(context.Background(), &dto.Pixel{Id: "pix1", Token: "tok1"}, testItem())

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Invalid parameter", res.Error)
	assert.Equal(t, "trace-err", res.FbTraceId)
}

func TestSendNetworkError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	res := testRelay(upstream.URL).Send(context.Background(), &dto.Pixel{Id: "pix1"}, testItem())

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestSendWithRetrySingleAttemptByDefault(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	res := testRelay(upstream.URL).SendWithRetry(context.Background(), &dto.Pixel{Id: "pix1"}, testItem(), 0)

	assert.False(t, res.Success)
	assert.Equal(t, 1, calls)
}

func TestSendWithRetryBoundedAttempts(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"events_received":1}`))
	}))
	defer upstream.Close()

	res := testRelay(upstream.URL).SendWithRetry(context.Background(), &dto.Pixel{Id: "pix1"}, testItem(), 5)

	assert.True(t, res.Success)
	assert.Equal(t, 3, calls)
}
