package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marcelsud/twitch-relay/eventsub"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

/* Helix implementation of eventsub.SubscriptionAPI
 * Authenticates with an app access token (client credentials grant);
 * the oauth2 transport fetches and refreshes it transparently
 */

const (
	DefaultBaseURL    = "https://api.twitch.tv/helix"
	DefaultTokenURL   = "https://id.twitch.tv/oauth2/token"
	subscriptionsPath = "/eventsub/subscriptions"
	maxPages          = 100
)

// Config holds the Helix application credentials
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
}

type Client struct {
	baseURL  string
	clientID string
	http     *http.Client
}

// NewClient creates a Helix client authenticated with the client credentials grant
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("helix client id and secret are required")
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	httpClient := cc.Client(ctx)
	httpClient.Timeout = cfg.Timeout
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return NewClientWithHTTP(cfg.BaseURL, cfg.ClientID, httpClient), nil
}

// NewClientWithHTTP creates a Helix client over an already authenticated http.Client
func NewClientWithHTTP(baseURL, clientID string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		http:     httpClient,
	}
}

// APIError is a non-2xx Helix response
type APIError struct {
	StatusCode int    `json:"status"`
	Kind       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("helix: %d %s", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("helix: %d %s: %s", e.StatusCode, e.Kind, e.Message)
}

type subscriptionsResponse struct {
	Data       []eventsub.Subscription `json:"data"`
	Total      int                     `json:"total"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

// ListEnabled returns every enabled subscription, following the pagination cursor
func (c *Client) ListEnabled(ctx context.Context) ([]eventsub.Subscription, error) {
	subs := make([]eventsub.Subscription, 0)
	cursor := ""

	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("status", eventsub.StatusEnabled)
		if cursor != "" {
			q.Set("after", cursor)
		}

		var resp subscriptionsResponse
		if err := c.do(ctx, http.MethodGet, subscriptionsPath+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}
		subs = append(subs, resp.Data...)

		if resp.Pagination.Cursor == "" || resp.Pagination.Cursor == cursor {
			return subs, nil
		}
		cursor = resp.Pagination.Cursor
	}

	return subs, nil
}

// Create registers a new subscription; the upstream answers 202 with the pending descriptor
func (c *Client) Create(ctx context.Context, req eventsub.CreateRequest) (eventsub.Subscription, error) {
	var resp subscriptionsResponse
	if err := c.do(ctx, http.MethodPost, subscriptionsPath, req, &resp); err != nil {
		return eventsub.Subscription{}, fmt.Errorf("creating subscription: %w", err)
	}
	if len(resp.Data) == 0 {
		return eventsub.Subscription{}, fmt.Errorf("creating subscription: empty response")
	}
	return resp.Data[0], nil
}

// Delete removes a subscription by id
func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	if err := c.do(ctx, http.MethodDelete, subscriptionsPath+"?"+q.Encode(), nil, nil); err != nil {
		return fmt.Errorf("deleting subscription %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if len(data) > 0 {
			_ = json.Unmarshal(data, apiErr)
		}
		apiErr.StatusCode = resp.StatusCode
		if apiErr.Kind == "" {
			apiErr.Kind = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
