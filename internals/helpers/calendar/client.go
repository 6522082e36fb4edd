// Package calendar talks to the external calendar/meeting provider that
// issues meeting links for trip-planning calls. Every method can fail;
// callers are expected to degrade (fallback link, log-and-continue) rather
// than surface calendar errors to end users.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripku_backend/internals/configs"
)

type EventInput struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Attendees   []string  `json:"attendees,omitempty"`
}

type EventResult struct {
	ID          string `json:"id"`
	MeetingLink string `json:"meeting_link"`
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(configs.CalendarAPIBaseURL, "/"),
		APIKey:  configs.CalendarAPIKey,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (cl *Client) CreateEvent(ctx context.Context, in EventInput) (*EventResult, error) {
	var out EventResult
	if err := cl.do(ctx, http.MethodPost, "/v1/events", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cl *Client) UpdateEvent(ctx context.Context, id string, in EventInput) error {
	return cl.do(ctx, http.MethodPut, "/v1/events/"+id, in, nil)
}

func (cl *Client) DeleteEvent(ctx context.Context, id string) error {
	return cl.do(ctx, http.MethodDelete, "/v1/events/"+id, nil, nil)
}

func (cl *Client) do(ctx context.Context, method, path string, in, out any) error {
	if cl.BaseURL == "" {
		return fmt.Errorf("calendar: CALENDAR_API_BASE_URL not configured")
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("calendar: marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, cl.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("calendar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cl.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cl.APIKey)
	}

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("calendar: %s %s: status %d: %s", method, path, resp.StatusCode, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("calendar: decode response: %w", err)
		}
	}
	return nil
}
