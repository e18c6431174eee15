// Package geocoding resolves delivery addresses to coordinates.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAddressNotFound is returned when the geocoding service has no match for an address.
var ErrAddressNotFound = errors.New("address not found")

// HTTPGeocoder queries a Nominatim-compatible search endpoint:
//
//	GET {baseURL}?q=<address>&format=json&limit=1
//	[{"lat": "6.4969", "lon": "3.3612"}]
type HTTPGeocoder struct {
	client  *http.Client
	baseURL string
}

func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *HTTPGeocoder) Resolve(ctx context.Context, address string) (kernel.Location, error) {
	if address == "" {
		return kernel.Location{}, errs.NewValueIsRequiredError("address")
	}

	endpoint, err := url.Parse(g.baseURL)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("geocoder url: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return kernel.Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Location{}, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return kernel.Location{}, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}
	if len(results) == 0 {
		return kernel.Location{}, fmt.Errorf("geocode %q: %w", address, ErrAddressNotFound)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if err = errors.Join(latErr, lonErr); err != nil {
		return kernel.Location{}, fmt.Errorf("geocode %q: malformed coordinates: %w", address, err)
	}

	return kernel.NewLocation(lat, lon)
}
