package RouteOptimizer

import (
	"context"

	"Escapade/Maps"
	"Escapade/Models"
)

type hop struct {
	from Models.Coordinates
	to   Models.Coordinates
}

// hopsFor expands the ordered stops into consecutive pairs, with a leading
// pseudo-pair for a fixed start location and a trailing one for a fixed end.
func hopsFor(ordered []Stop, prefs *RoutePreferences) []hop {
	hops := make([]hop, 0, len(ordered)+2)
	if prefs.StartLocation != nil && len(ordered) > 0 {
		hops = append(hops, hop{from: *prefs.StartLocation, to: ordered[0].Coord})
	}
	for i := 0; i < len(ordered)-1; i++ {
		hops = append(hops, hop{from: ordered[i].Coord, to: ordered[i+1].Coord})
	}
	if prefs.EndLocation != nil && len(ordered) > 0 {
		hops = append(hops, hop{from: ordered[len(ordered)-1].Coord, to: *prefs.EndLocation})
	}
	return hops
}

// assemble walks the sequenced stops pairwise, selects a transport plan per
// hop and aggregates totals and the optimization score. A route exceeding the
// time or budget ceiling is still returned, flagged, never discarded.
func (o *Optimizer) assemble(ctx context.Context, ordered []Stop, prefs *RoutePreferences) (*OptimizedRoute, error) {
	route := &OptimizedRoute{Stops: ordered}
	hops := hopsFor(ordered, prefs)

	for _, h := range hops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segment, err := o.selectSegment(ctx, h.from, h.to, prefs)
		if err != nil {
			return nil, err
		}
		route.Segments = append(route.Segments, *segment)
		route.TotalTimeMinutes += segment.DurationMinutes
		route.TotalCost += segment.Cost
		route.TotalDistanceKm += segment.DistanceKm
		if segment.Estimated() {
			route.Estimated = true
		}
	}

	route.Score = o.score(route, hops)
	route.ExceedsConstraints = (prefs.MaxTotalTimeMinutes > 0 && route.TotalTimeMinutes > prefs.MaxTotalTimeMinutes) ||
		(prefs.MaxBudget > 0 && route.TotalCost > prefs.MaxBudget)

	return route, nil
}

// score maps the aggregate time and cost into a bounded, comparable fitness
// value. Each total is normalized against the direct-haversine driving
// baseline over the same hops, so routes that beat the naive baseline score
// higher and results stay comparable across requests.
func (o *Optimizer) score(route *OptimizedRoute, hops []hop) float64 {
	var baselineTime, baselineCost float64
	for _, h := range hops {
		distance := Maps.Haversine(h.from, h.to)
		duration := distance / Maps.ReferenceSpeed(Models.Driving) * 60
		baselineTime += duration
		baselineCost += o.Tariffs.EstimateCost(distance, duration, Models.Driving)
	}

	normalizedTime := 0.0
	if baselineTime > 0 {
		normalizedTime = route.TotalTimeMinutes / baselineTime
	}
	normalizedCost := 0.0
	if baselineCost > 0 {
		normalizedCost = route.TotalCost / baselineCost
	}

	return 1 / (1 + normalizedTime + normalizedCost)
}
