package bonus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	claimTimeout = 10 * time.Second
	maxBodyBytes = 64 << 10
)

// ErrMalformed is returned when the issuer answered with something that is not JSON.
var ErrMalformed = errors.New("malformed bonus response")

// RejectedError is an application-level refusal from the issuer. Message is
// shown to the player verbatim and may be empty.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bonus rejected: status %d", e.StatusCode)
	}
	return "bonus rejected: " + e.Message
}

// Gateway requests one bonus from the remote issuer.
type Gateway interface {
	Claim(ctx context.Context) (float64, error)
}

// HTTPGateway claims bonuses with a single GET. It never retries.
type HTTPGateway struct {
	URL    string
	Client *http.Client
}

type claimBody struct {
	Bonus   any    `json:"bonus"`
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Claim returns the granted amount. Any response without a positive numeric
// bonus yields a *RejectedError, whatever the status code.
func (g *HTTPGateway) Claim(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: claimTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("bonus request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("read bonus response: %w", err)
	}
	var body claimBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, fmt.Errorf("%w: status %d", ErrMalformed, resp.StatusCode)
	}
	if amount, ok := body.Bonus.(float64); ok && amount > 0 {
		return amount, nil
	}
	msg := body.Message
	if msg == "" && body.Error != nil {
		msg = body.Error.Message
	}
	return 0, &RejectedError{StatusCode: resp.StatusCode, Message: msg}
}
