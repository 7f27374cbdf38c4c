// Package geo provides an HTTP client adapter for the geocoding service.
// Addresses that the service cannot resolve map to an ObjectNotFound error so
// the core can leave coordinates unset instead of failing order creation.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements the Geocoder port against the geocoding service's REST
// API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoder client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolve turns a postal address into coordinates. Returns an
// ObjectNotFoundError when the service cannot match the address.
func (c *Client) Resolve(ctx context.Context, address order.Address) (kernel.GeoPoint, error) {
	if err := address.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	query := url.Values{}
	query.Set("address", formatAddress(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/geocode?"+query.Encode(), nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", formatAddress(address))
	}

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("geocoding response is malformed: %w", err)
	}

	return kernel.NewGeoPoint(body.Lat, body.Lng)
}

// formatAddress builds the single-line lookup string the service expects,
// skipping empty components.
func formatAddress(address order.Address) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{
		address.Addr1(), address.Addr2(), address.City(),
		address.State(), address.Postal(),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
