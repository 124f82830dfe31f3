package eversend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds credentials and endpoint settings for the Eversend API.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// Client talks to the Eversend collections API. Every call first exchanges
// the client credentials for a short-lived access token.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient returns a client with a bounded request timeout.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CollectionRequest describes a mobile-money charge.
type CollectionRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PhoneNumber string  `json:"phone_number"`
	Network     string  `json:"network"`
	CallbackURL string  `json:"callback_url"`
	Reason      string  `json:"reason"`
}

// CollectionResponse is the provider's acknowledgement of a charge request.
type CollectionResponse struct {
	TransactionID string `json:"transaction_id"`
	ID            string `json:"id"`
	Status        string `json:"status"`
}

// Reference returns the provider-assigned transaction identifier, falling
// back to the generic id field when the dedicated one is absent.
func (r *CollectionResponse) Reference() string {
	if r.TransactionID != "" {
		return r.TransactionID
	}
	if r.ID != "" {
		return r.ID
	}
	return "unknown"
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// InitiateMobileMoney requests a mobile-money collection and returns the
// provider's response.
func (c *Client) InitiateMobileMoney(ctx context.Context, req CollectionRequest) (*CollectionResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal collection request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/collections/mobile-money", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build collection request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("collection request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read collection response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("collection request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var collection CollectionResponse
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, fmt.Errorf("decode collection response: %w", err)
	}

	return &collection, nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/token", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	return token.AccessToken, nil
}
