package Maps

import (
	"context"

	"Escapade/Models"
)

// RouteInfo is the result of resolving one (origin, destination, mode) leg.
// Estimated marks results derived from the haversine fallback rather than the
// external directions source.
type RouteInfo struct {
	DistanceKm      float64              `json:"distance_km"`
	DurationMinutes float64              `json:"duration_minutes"`
	Path            []Models.Coordinates `json:"path,omitempty"`
	Instructions    []string             `json:"instructions,omitempty"`
	Estimated       bool                 `json:"estimated"`
}

// DirectionsProvider resolves distance and duration for a single leg.
type DirectionsProvider interface {
	Directions(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*RouteInfo, error)
}

// Reference speeds in km/h used for haversine-based estimates.
var ReferenceSpeeds = map[Models.TransportMode]float64{
	Models.Driving:         30.0,
	Models.Walking:         5.0,
	Models.Cycling:         15.0,
	Models.PublicTransport: 20.0,
	Models.RideSharing:     25.0,
}

// ReferenceSpeed returns the fixed reference speed for a mode, defaulting to
// driving for unknown modes.
func ReferenceSpeed(mode Models.TransportMode) float64 {
	if speed, ok := ReferenceSpeeds[mode]; ok {
		return speed
	}
	return ReferenceSpeeds[Models.Driving]
}

// Estimate produces a deterministic great-circle estimate for a leg.
func Estimate(origin, destination Models.Coordinates, mode Models.TransportMode) *RouteInfo {
	distance := Haversine(origin, destination)
	return &RouteInfo{
		DistanceKm:      distance,
		DurationMinutes: distance / ReferenceSpeed(mode) * 60,
		Path:            []Models.Coordinates{origin, destination},
		Estimated:       true,
	}
}

// FallbackProvider wraps another provider and degrades to the haversine
// estimate when it fails, so upstream outages never surface as errors.
// Cancellation still propagates.
type FallbackProvider struct {
	Inner DirectionsProvider
}

func NewFallbackProvider(inner DirectionsProvider) *FallbackProvider {
	return &FallbackProvider{Inner: inner}
}

func (p *FallbackProvider) Directions(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*RouteInfo, error) {
	info, err := p.Inner.Directions(ctx, origin, destination, mode)
	if err == nil {
		return info, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return Estimate(origin, destination, mode), nil
}
