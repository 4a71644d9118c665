package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// HTTPAirlines reads the airline reference list. The endpoint may answer
// with a bare array or with {"airlines": [...]}.
type HTTPAirlines struct {
	url    string
	client *http.Client
}

func NewHTTPAirlines(url string, client *http.Client) *HTTPAirlines {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAirlines{url: url, client: client}
}

func (h *HTTPAirlines) Airlines(ctx context.Context) ([]entity.Airline, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("airlines request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airlines call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airlines status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("airlines read body: %w", err)
	}

	var rows []wireAirline
	if err := json.Unmarshal(body, &rows); err != nil {
		var wrapped struct {
			Airlines []wireAirline `json:"airlines"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode airlines: %w", err)
		}
		rows = wrapped.Airlines
	}

	airlines := make([]entity.Airline, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		airlines = append(airlines, entity.Airline{Code: code, Name: strings.TrimSpace(r.Name), Logo: r.Logo})
	}
	return airlines, nil
}
