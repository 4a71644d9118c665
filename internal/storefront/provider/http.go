package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

const maxResponseBytes = 8 << 20

type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider queries GET {baseURL}/flights. A nil client uses
// http.DefaultClient; request timeouts come from the caller's context.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (h *HTTPProvider) Name() string {
	return "http"
}

func (h *HTTPProvider) Search(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error) {
	endpoint := h.baseURL + "/flights?" + QueryValues(c).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("flights request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrTemporary, err)
		}
		return nil, fmt.Errorf("flights call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTemporary, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrTemporary, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("flights status %d", resp.StatusCode)
	}

	rows, err := decodeFlights(body)
	if err != nil {
		return nil, err
	}
	return normalize(c, rows), nil
}

// QueryValues maps criteria onto the provider's query parameters.
func QueryValues(c entity.SearchCriteria) url.Values {
	q := url.Values{}
	q.Set("origin", c.OriginCode)
	q.Set("destination", c.DestinationCode)
	q.Set("departure_date", c.DepartureDate.Format(entity.DateLayout))
	if c.ReturnDate != nil {
		q.Set("return_date", c.ReturnDate.Format(entity.DateLayout))
	}
	q.Set("trip_type", string(c.TripType))
	q.Set("adults", strconv.Itoa(c.Passengers.Adults))
	q.Set("children", strconv.Itoa(c.Passengers.Children))
	q.Set("infants", strconv.Itoa(c.Passengers.Infants))
	q.Set("cabin_class", string(c.CabinClass))
	return q
}
