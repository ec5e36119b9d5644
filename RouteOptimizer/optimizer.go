package RouteOptimizer

import (
	"context"

	"Escapade/Maps"
	"Escapade/Models"
)

// Optimizer plans multi-stop visits: it orders stops, picks a transport plan
// per hop and scores the result. It holds no state between requests beyond
// whatever caching the provider does.
type Optimizer struct {
	Provider Maps.DirectionsProvider
	Resolver Models.VenueResolver
	Tariffs  *TariffTable
}

func New(provider Maps.DirectionsProvider, resolver Models.VenueResolver, tariffs *TariffTable) *Optimizer {
	if tariffs == nil {
		tariffs = DefaultTariffs()
	}
	return &Optimizer{Provider: provider, Resolver: resolver, Tariffs: tariffs}
}

// OptimizeRoute resolves the venues, sequences the reachable ones and
// assembles the full transport plan. Venues without usable coordinates are
// skipped and listed on the result instead of failing the request.
func (o *Optimizer) OptimizeRoute(ctx context.Context, venueIDs []uint, prefs *RoutePreferences, algorithm string) (*OptimizedRoute, error) {
	if prefs == nil {
		prefs = &RoutePreferences{}
	}
	prefs.ApplyDefaults()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if len(venueIDs) == 0 {
		return nil, ErrNoStops
	}

	stops := make([]Stop, 0, len(venueIDs))
	var skipped []SkippedStop
	var visitMinutes float64
	seen := make(map[uint]bool, len(venueIDs))

	for _, id := range venueIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		info, ok := o.Resolver.Resolve(id)
		if !ok {
			skipped = append(skipped, SkippedStop{
				ID:     id,
				Name:   info.Name,
				Reason: "venue has no usable coordinates",
			})
			continue
		}
		stops = append(stops, Stop{ID: id, Name: info.Name, Coord: info.Coordinates})
		visitMinutes += info.AverageDurationMinutes
	}

	if len(stops) == 0 {
		return nil, ErrNoReachableStops
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered := sequenceStops(stops, prefs.StartLocation, prefs.EndLocation, algorithm)

	route, err := o.assemble(ctx, ordered, prefs)
	if err != nil {
		return nil, err
	}
	route.SkippedStops = skipped
	route.TotalVisitTimeMinutes = visitMinutes
	return route, nil
}

// Travel computes time, cost and distance for a single
// (origin, destination, mode) pair without any sequencing.
func (o *Optimizer) Travel(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*TravelEstimate, error) {
	if !mode.Valid() {
		return nil, ErrUnknownMode
	}
	leg, err := o.legFor(ctx, origin, destination, mode)
	if err != nil {
		return nil, err
	}
	return &TravelEstimate{
		Mode:            mode,
		DistanceKm:      leg.DistanceKm,
		DurationMinutes: leg.DurationMinutes,
		Cost:            leg.Cost,
		Estimated:       leg.Estimated,
	}, nil
}

// BuildSegment computes one full transition between a pair of points under
// the given preferences, without sequencing.
func (o *Optimizer) BuildSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	if prefs == nil {
		prefs = &RoutePreferences{}
	}
	prefs.ApplyDefaults()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return o.selectSegment(ctx, origin, destination, prefs)
}

// LegModes returns the selected primary mode for each leg of an already
// ordered waypoint list, without building a full route.
func (o *Optimizer) LegModes(ctx context.Context, waypoints []Models.Coordinates, prefs *RoutePreferences) ([]Models.TransportMode, error) {
	if prefs == nil {
		prefs = &RoutePreferences{}
	}
	prefs.ApplyDefaults()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	modes := make([]Models.TransportMode, 0, len(waypoints))
	for i := 0; i < len(waypoints)-1; i++ {
		segment, err := o.selectSegment(ctx, waypoints[i], waypoints[i+1], prefs)
		if err != nil {
			return nil, err
		}
		modes = append(modes, segment.PrimaryMode)
	}
	return modes, nil
}
