package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksTrackerByToken(t *testing.T) {
	_, ok := New("").(LogTracker)
	assert.True(t, ok)
	_, ok = New("tok").(*MixpanelTracker)
	assert.True(t, ok)
}

func TestMixpanelTrackerPostsEvent(t *testing.T) {
	var mu sync.Mutex
	var got []mixpanelEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []mixpanelEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		mu.Lock()
		got = append(got, batch...)
		mu.Unlock()
		_, _ = w.Write([]byte("1"))
	}))
	defer srv.Close()

	fixed := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	tr := NewMixpanelTracker("tok")
	tr.Endpoint = srv.URL
	tr.Now = func() time.Time { return fixed }

	tr.Track(context.Background(), "user-1", EventQuizAction, map[string]any{"action": "generate_success"})
	tr.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, EventQuizAction, got[0].Event)
	assert.Equal(t, "tok", got[0].Properties["token"])
	assert.Equal(t, "user-1", got[0].Properties["distinct_id"])
	assert.Equal(t, "generate_success", got[0].Properties["action"])
	assert.Equal(t, "2026-03-02T10:00:00Z", got[0].Properties["timestamp"])
}

func TestMixpanelTrackerSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := NewMixpanelTracker("tok")
	tr.Endpoint = srv.URL
	tr.Track(context.Background(), "", EventError, nil)
	tr.Flush()

	err := tr.send(context.Background(), tr.buildEvent("", EventError, nil))
	assert.Error(t, err)
}

func TestTrackSurvivesCanceledRequestContext(t *testing.T) {
	hits := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		_, _ = w.Write([]byte("1"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	tr := NewMixpanelTracker("tok")
	tr.Endpoint = srv.URL
	tr.Track(ctx, "u", EventTodoAction, nil)
	cancel()
	tr.Flush()

	select {
	case <-hits:
	default:
		t.Fatalf("expected event to be delivered after request context ended")
	}
}
