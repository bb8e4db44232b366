package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"quoteflow/internal/domain/delivery"
	"quoteflow/internal/pkg/config"
	"quoteflow/internal/pkg/errs"
)

// Geocoder resolves a free-text address to coordinates and a canonical
// place name.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (delivery.Coordinates, string, error)
}

type MapboxClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	country    string
}

func NewMapboxClient(cfg config.GeocodeConfig) *MapboxClient {
	return &MapboxClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.MapboxToken,
		country:    cfg.Country,
	}
}

type mapboxResponse struct {
	Features []struct {
		Center    [2]float64 `json:"center"` // [lng, lat]
		PlaceName string     `json:"place_name"`
	} `json:"features"`
}

// Geocode retries once on transport errors and 5xx responses before giving
// up with ErrDistanceUnavailable.
func (c *MapboxClient) Geocode(ctx context.Context, address string) (delivery.Coordinates, string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		coords, place, err := c.geocodeOnce(ctx, address)
		if err == nil {
			return coords, place, nil
		}
		if ctx.Err() != nil {
			return delivery.Coordinates{}, "", errs.Mark(ctx.Err(), errs.ErrDistanceUnavailable)
		}
		lastErr = err
	}
	return delivery.Coordinates{}, "", errs.Mark(lastErr, errs.ErrDistanceUnavailable)
}

func (c *MapboxClient) geocodeOnce(ctx context.Context, address string) (delivery.Coordinates, string, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", c.baseURL, url.PathEscape(address))

	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", "1")
	if c.country != "" {
		params.Set("country", c.country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return delivery.Coordinates{}, "", errs.Wrap(err, "failed to build geocoding request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return delivery.Coordinates{}, "", errs.Wrap(err, "geocoding request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return delivery.Coordinates{}, "", errs.Newf("geocoding returned status %d", resp.StatusCode)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return delivery.Coordinates{}, "", errs.Wrap(err, "failed to decode geocoding response")
	}
	if len(body.Features) == 0 {
		return delivery.Coordinates{}, "", errs.Newf("no geocoding result for address")
	}

	feature := body.Features[0]
	coords := delivery.Coordinates{
		Lat: feature.Center[1],
		Lng: feature.Center[0],
	}
	return coords, feature.PlaceName, nil
}
