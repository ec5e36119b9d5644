package Maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Escapade/Models"
)

const (
	requestTimeout = 5 * time.Second
	maxRetries     = 2
)

// Backoff before the first and second retry.
var retryBackoff = []time.Duration{200 * time.Millisecond, 800 * time.Millisecond}

// OSRM routing profiles per transport mode. OSRM has no transit profile, so
// public transport and ride sharing reuse the road network and get their
// duration recomputed from the road distance at the mode's reference speed.
var osrmProfiles = map[Models.TransportMode]string{
	Models.Walking:         "foot",
	Models.Cycling:         "bike",
	Models.Driving:         "driving",
	Models.PublicTransport: "driving",
	Models.RideSharing:     "driving",
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// OSRMClient is the production DirectionsProvider backed by an OSRM server.
type OSRMClient struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

func NewOSRMClient(baseURL, apiKey string) *OSRMClient {
	if baseURL == "" {
		baseURL = "http://router.project-osrm.org"
	}
	return &OSRMClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *OSRMClient) Directions(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*RouteInfo, error) {
	profile, ok := osrmProfiles[mode]
	if !ok {
		profile = "driving"
	}

	// OSRM takes lng,lat pairs.
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		c.BaseURL, profile, origin.Lng, origin.Lat, destination.Lng, destination.Lat)
	if c.APIKey != "" {
		url += "&api_key=" + c.APIKey
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff[attempt-1]):
			}
		}

		info, retryable, err := c.request(ctx, url, origin, destination, mode)
		if err == nil {
			return info, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("osrm directions %s: %w", profile, lastErr)
}

// request performs one attempt. The second return reports whether the failure
// is transient and worth retrying.
func (c *OSRMClient) request(ctx context.Context, url string, origin, destination Models.Coordinates, mode Models.TransportMode) (*RouteInfo, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("request failed with status: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("request failed with status: %s", resp.Status)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, true, err
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, false, fmt.Errorf("no route found (code %s)", parsed.Code)
	}

	route := parsed.Routes[0]
	distanceKm := route.Distance / 1000.0
	durationMinutes := route.Duration / 60.0

	// Road profile stand-ins get mode-speed durations over the road distance.
	if mode == Models.PublicTransport || mode == Models.RideSharing {
		durationMinutes = distanceKm / ReferenceSpeed(mode) * 60
	}

	return &RouteInfo{
		DistanceKm:      distanceKm,
		DurationMinutes: durationMinutes,
		Path:            []Models.Coordinates{origin, destination},
	}, false, nil
}
