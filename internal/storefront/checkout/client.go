package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPClient posts purchases as JSON to a single endpoint.
type HTTPClient struct {
	url    string
	client *http.Client
}

func NewHTTPClient(url string, client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{url: url, client: client}
}

func (c *HTTPClient) Finalize(ctx context.Context, req Request) (Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Receipt{}, pkgerror.NewFetch("checkout service is unavailable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Receipt{}, pkgerror.NewFetch("checkout service is unavailable", err)
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return Receipt{}, pkgerror.NewFetch("checkout service returned an unreadable response",
			fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}

	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "checkout was rejected"
		}
		return Receipt{}, pkgerror.NewRemote(msg)
	}
	return Receipt{Message: out.Message}, nil
}
