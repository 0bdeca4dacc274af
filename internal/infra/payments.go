// README: HTTP client for the external payment-link provider.
package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"airporter/internal/types"
)

// PaymentLinkClient asks an external checkout provider for a hosted payment
// link. The provider itself (Square behind a thin relay) is opaque to us: we
// POST a reference and an amount, we get a URL back.
type PaymentLinkClient struct {
	endpoint string
	http     *http.Client
}

func NewPaymentLinkClient(endpoint string) *PaymentLinkClient {
	return &PaymentLinkClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type paymentLinkRequest struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type paymentLinkResponse struct {
	URL string `json:"url"`
}

func (c *PaymentLinkClient) CreateLink(ctx context.Context, reference string, amount types.Money) (string, error) {
	body, err := json.Marshal(paymentLinkRequest{
		Reference: reference,
		Amount:    amount.Amount,
		Currency:  amount.Currency,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment link request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment link provider returned %d", resp.StatusCode)
	}

	var out paymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding payment link response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("payment link provider returned empty url")
	}
	return out.URL, nil
}
