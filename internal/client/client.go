// Package client talks to the hedgehog HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details []hedgehog.Violation
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]hedgehog.ListItem, error) {
	var out struct {
		Hedgehogs []hedgehog.ListItem `json:"hedgehogs"`
	}
	if err := c.do(ctx, http.MethodGet, "/hedgehog", nil, &out); err != nil {
		return nil, err
	}
	if out.Hedgehogs == nil {
		out.Hedgehogs = []hedgehog.ListItem{}
	}
	return out.Hedgehogs, nil
}

// Get fetches one sighting. A 404 becomes *hedgehog.NotFoundError.
func (c *Client) Get(ctx context.Context, id int64) (hedgehog.Hedgehog, error) {
	var out struct {
		Hedgehog hedgehog.Hedgehog `json:"hedgehog"`
	}
	err := c.do(ctx, http.MethodGet, "/hedgehog/"+strconv.FormatInt(id, 10), nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return hedgehog.Hedgehog{}, &hedgehog.NotFoundError{ID: id}
	}
	if err != nil {
		return hedgehog.Hedgehog{}, err
	}
	return out.Hedgehog, nil
}

// Create submits a sighting. A 400 becomes *hedgehog.ValidationError carrying
// the server's violations.
func (c *Client) Create(ctx context.Context, in hedgehog.Input) (hedgehog.Hedgehog, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return hedgehog.Hedgehog{}, err
	}

	var out struct {
		Hedgehog hedgehog.Hedgehog `json:"hedgehog"`
		Message  string            `json:"message"`
	}
	err = c.do(ctx, http.MethodPost, "/hedgehog", body, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return hedgehog.Hedgehog{}, &hedgehog.ValidationError{Message: apiErr.Message, Violations: apiErr.Details}
	}
	if err != nil {
		return hedgehog.Hedgehog{}, err
	}
	return out.Hedgehog, nil
}

// ServerMessage returns the message the server attached to a failed
// response, if there was a response at all.
func ServerMessage(err error) (string, bool) {
	var (
		apiErr *APIError
		valErr *hedgehog.ValidationError
		nfErr  *hedgehog.NotFoundError
	)
	switch {
	case errors.As(err, &valErr):
		return valErr.Message, true
	case errors.As(err, &nfErr):
		return nfErr.Error(), true
	case errors.As(err, &apiErr):
		return apiErr.Message, true
	}
	return "", false
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &hedgehog.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &hedgehog.NetworkError{Err: err}
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb struct {
			Message string               `json:"message"`
			Details []hedgehog.Violation `json:"details"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			apiErr.Message = eb.Message
			apiErr.Details = eb.Details
		}
		if resp.StatusCode >= 500 {
			return hedgehog.NewDatabaseError(apiErr)
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
