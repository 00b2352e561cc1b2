package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"career-backend/internal/shared/telemetry"
)

// Event names shared with the web client.
const (
	EventPageView       = "Page View"
	EventFeatureUsed    = "Feature Used"
	EventGoalAction     = "Goal Action"
	EventQuizAction     = "Quiz Action"
	EventJobSearch      = "Job Search Action"
	EventStoryAction    = "Story Action"
	EventResumeAction   = "Resume Action"
	EventTodoAction     = "Todo Action"
	EventCoverLetter    = "Cover Letter Action"
	EventError          = "Error"
	defaultMixpanelURL  = "https://api.mixpanel.com/track"
	defaultTrackTimeout = 5 * time.Second
)

// Tracker records named product events. Implementations never fail the caller.
type Tracker interface {
	Track(ctx context.Context, distinctID, event string, props map[string]any)
}

// LogTracker writes events to the structured log only.
type LogTracker struct{}

// Track logs the event.
func (LogTracker) Track(ctx context.Context, distinctID, event string, props map[string]any) {
	_ = ctx
	telemetry.Info("analytics.event", map[string]any{
		"event":       event,
		"distinct_id": distinctID,
		"props":       props,
	})
}

// MixpanelTracker posts events to the Mixpanel ingestion API in the background.
type MixpanelTracker struct {
	Token      string
	Endpoint   string
	HTTPClient *http.Client
	Now        func() time.Time

	wg sync.WaitGroup
}

// NewMixpanelTracker returns a tracker for the given project token.
func NewMixpanelTracker(token string) *MixpanelTracker {
	return &MixpanelTracker{
		Token:      strings.TrimSpace(token),
		Endpoint:   defaultMixpanelURL,
		HTTPClient: &http.Client{Timeout: defaultTrackTimeout},
		Now:        time.Now,
	}
}

type mixpanelEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

// Track sends the event asynchronously; failures are logged and dropped.
func (m *MixpanelTracker) Track(ctx context.Context, distinctID, event string, props map[string]any) {
	payload := m.buildEvent(distinctID, event, props)
	bg := context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, defaultTrackTimeout)
		defer cancel()
		if err := m.send(sendCtx, payload); err != nil {
			telemetry.Warn("analytics.send_failed", map[string]any{
				"event": event,
				"error": err,
			})
		}
	}()
}

// Flush waits for in-flight events.
func (m *MixpanelTracker) Flush() {
	m.wg.Wait()
}

func (m *MixpanelTracker) buildEvent(distinctID, event string, props map[string]any) mixpanelEvent {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	ts := now().UTC()
	merged := make(map[string]any, len(props)+4)
	for k, v := range props {
		merged[k] = v
	}
	merged["token"] = m.Token
	merged["time"] = ts.Unix()
	merged["timestamp"] = ts.Format(time.RFC3339)
	if distinctID != "" {
		merged["distinct_id"] = distinctID
	}
	return mixpanelEvent{Event: event, Properties: merged}
}

func (m *MixpanelTracker) send(ctx context.Context, ev mixpanelEvent) error {
	body, err := json.Marshal([]mixpanelEvent{ev})
	if err != nil {
		return err
	}
	endpoint := m.Endpoint
	if endpoint == "" {
		endpoint = defaultMixpanelURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")

	client := m.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	reply, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mixpanel http status %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(reply)) == "0" {
		return fmt.Errorf("mixpanel rejected event")
	}
	return nil
}

// New picks the Mixpanel tracker when a token is configured, else the log tracker.
func New(token string) Tracker {
	if strings.TrimSpace(token) == "" {
		return LogTracker{}
	}
	return NewMixpanelTracker(token)
}

// Emit tracks through t when it is set.
func Emit(ctx context.Context, t Tracker, distinctID, event string, props map[string]any) {
	if t == nil {
		return
	}
	t.Track(ctx, distinctID, event, props)
}
