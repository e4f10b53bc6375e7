package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrSyncFailed is returned per platform when a sync call fails.
	// All outcomes are advisory; the appointment state never depends on them.
	ErrSyncFailed = errors.New("calendar client: sync failed")
)

// Logger is the logging interface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// AppointmentDetails is the slice of an appointment pushed to calendars.
type AppointmentDetails struct {
	AppointmentID int64  `json:"appointmentId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	ServiceName   string `json:"serviceName,omitempty"`
	Location      string `json:"location,omitempty"`
}

// Client pushes appointment changes to external calendar platforms.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a calendar sync client. An empty baseURL disables sync.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SyncCreate pushes a new appointment to each platform and returns the
// per-platform outcome.
func (c *Client) SyncCreate(ctx context.Context, details AppointmentDetails, platforms []string) map[string]error {
	return c.sync(ctx, "create", details, platforms)
}

// SyncUpdate pushes an appointment change to each platform.
func (c *Client) SyncUpdate(ctx context.Context, details AppointmentDetails, platforms []string) map[string]error {
	return c.sync(ctx, "update", details, platforms)
}

// SyncDelete removes an appointment from each platform.
func (c *Client) SyncDelete(ctx context.Context, details AppointmentDetails, platforms []string) map[string]error {
	return c.sync(ctx, "delete", details, platforms)
}

func (c *Client) sync(ctx context.Context, action string, details AppointmentDetails, platforms []string) map[string]error {
	results := make(map[string]error, len(platforms))
	if c.baseURL == "" {
		return results
	}

	body, err := json.Marshal(details)
	if err != nil {
		for _, p := range platforms {
			results[p] = fmt.Errorf("%w: marshal details: %v", ErrSyncFailed, err)
		}
		return results
	}

	for _, platform := range platforms {
		url := fmt.Sprintf("%s/internal/calendar/%s/%s", c.baseURL, platform, action)
		results[platform] = c.post(ctx, url, body)
		if results[platform] != nil {
			c.log.Warn("Calendar %s sync to %s failed for appointment id=%d: %v",
				action, platform, details.AppointmentID, results[platform])
		}
	}
	return results
}

func (c *Client) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrSyncFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status code %d", ErrSyncFailed, resp.StatusCode)
	}
	return nil
}
