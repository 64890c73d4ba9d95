package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/khushiag23/POS-System/internal/domain"
)

// Client asks a remote payment service to confirm.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (c *Client) Confirm(ctx context.Context, method domain.PaymentMethod) error {
	data, err := json.Marshal(confirmRequest{PaymentMethod: method})
	if err != nil {
		return fmt.Errorf("marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/confirm", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment service returned status %d", resp.StatusCode)
	}

	var body confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode confirm response: %w", err)
	}
	if body.Status != statusApproved {
		return fmt.Errorf("payment service answered %q", body.Status)
	}

	return nil
}
