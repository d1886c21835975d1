// Package msgraph implements ports.GraphClient against the Microsoft Graph
// v1.0 REST API. It handles bearer authentication, OData pagination, and
// maps HTTP failures onto domain sentinel errors.
package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "grove"
	pageSize       = "999"
)

// Client is the Microsoft Graph API client.
type Client struct {
	baseURL string
	tokens  ports.TokenProvider
	http    *http.Client
}

// NewClient creates a Graph client rooted at baseURL, e.g.
// "https://graph.microsoft.com/v1.0".
func NewClient(baseURL string, tokens ports.TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// get performs a GET against a Graph endpoint path or absolute URL and
// returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	return c.request(ctx, http.MethodGet, url, nil)
}

func (c *Client) request(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	if strings.HasPrefix(url, "/") {
		url = c.baseURL + url
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, zerr.Wrap(err, "creating graph request")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, "executing graph request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, "reading graph response")
	}

	if resp.StatusCode >= 400 {
		return nil, classify(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// getPaged follows @odata.nextLink until the collection is exhausted.
func (c *Client) getPaged(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	next := endpoint

	for next != "" {
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var page struct {
			Value    []json.RawMessage `json:"value"`
			NextLink string            `json:"@odata.nextLink"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, zerr.Wrap(err, "parsing graph page")
		}

		all = append(all, page.Value...)
		next = page.NextLink
	}
	return all, nil
}

// classify maps a Graph error response onto the domain sentinels. Each
// sentinel is wrapped, never returned bare with metadata attached, so that
// errors.Is still reaches it through the chain. The body is carried as
// metadata, truncated so log lines stay readable.
func classify(status int, body []byte) error {
	detail := truncate(body)

	switch {
	case status == http.StatusNotFound:
		return zerr.With(zerr.Wrap(domain.ErrNotFound, http.StatusText(status)), "status", status)
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return zerr.With(zerr.Wrap(domain.ErrForbidden, http.StatusText(status)), "status", status)
	case status == http.StatusBadRequest && strings.Contains(detail, "already exist"):
		return domain.ErrAlreadyMember
	default:
		err := zerr.With(zerr.Wrap(domain.ErrGraphRequest, http.StatusText(status)), "status", status)
		return zerr.With(err, "body", detail)
	}
}

func truncate(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

var _ ports.GraphClient = (*Client)(nil)
