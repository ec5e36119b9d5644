package RouteOptimizer

import (
	"context"
	"sync"

	"Escapade/Maps"
	"Escapade/Models"
)

// Bound on concurrent outbound directions lookups during automatic mode
// evaluation, so fan-out never overwhelms the external provider.
const maxConcurrentLookups = 4

// Flat walking time assumed to reach or leave a transit point.
const transitWalkMinutes = 5.0

// Weights for the blended objective when both time and cost are active.
// Callers wanting a different balance pre-normalize via preferences.
const (
	blendedTimeWeight = 0.6
	blendedCostWeight = 0.4
)

// selectSegment decides the transport plan for one hop between consecutive
// stops: a single mode or a composed sequence of legs, depending on the
// active strategy. Time and budget ceilings are advisory here; they are
// flagged on the assembled route, never enforced by dropping a stop.
func (o *Optimizer) selectSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	switch prefs.Strategy {
	case DistanceBased:
		return o.distanceBasedSegment(ctx, origin, destination, prefs)
	case ParkAndWalk:
		return o.parkAndWalkSegment(ctx, origin, destination, prefs)
	case PublicTransportAndWalk:
		return o.publicTransportAndWalkSegment(ctx, origin, destination, prefs)
	case Automatic:
		return o.automaticSegment(ctx, origin, destination, prefs)
	default:
		return o.singleModeSegment(ctx, origin, destination, prefs)
	}
}

// singleModeSegment uses the preferred mode when allowed, else the first
// allowed mode in declaration order. Always one leg.
func (o *Optimizer) singleModeSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	leg, err := o.legFor(ctx, origin, destination, prefs.effectiveMode())
	if err != nil {
		return nil, err
	}
	return newSegment(leg), nil
}

// distanceBasedSegment forces walking for short hops and cycling for medium
// ones, falling back to the single-mode rule beyond both thresholds.
func (o *Optimizer) distanceBasedSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	distance := Maps.Haversine(origin, destination)
	mm := prefs.MultiModal

	var mode Models.TransportMode
	switch {
	case distance <= *mm.MaxWalkingDistanceKm && prefs.modeAllowed(Models.Walking):
		mode = Models.Walking
	case distance <= *mm.MaxCyclingDistanceKm && prefs.modeAllowed(Models.Cycling):
		mode = Models.Cycling
	default:
		mode = prefs.effectiveMode()
	}

	leg, err := o.legFor(ctx, origin, destination, mode)
	if err != nil {
		return nil, err
	}
	return newSegment(leg), nil
}

// parkAndWalkSegment composes a driving leg to a synthetic parking point at
// the walking limit from the destination, then a walking leg. Falls back to
// the single-mode rule when driving or walking is not allowed or the whole
// hop is already within walking distance.
func (o *Optimizer) parkAndWalkSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	maxWalk := *prefs.MultiModal.MaxWalkingDistanceKm
	distance := Maps.Haversine(origin, destination)

	if !prefs.modeAllowed(Models.Driving) || !prefs.modeAllowed(Models.Walking) ||
		maxWalk <= 0 || distance <= maxWalk {
		return o.singleModeSegment(ctx, origin, destination, prefs)
	}

	// Parking spot sits on the straight line toward the origin, one walking
	// limit short of the destination.
	parking := Maps.PointAtDistance(destination, Maps.Bearing(destination, origin), maxWalk)

	driveLeg, err := o.legFor(ctx, origin, parking, Models.Driving)
	if err != nil {
		return nil, err
	}
	walkLeg, err := o.legFor(ctx, parking, destination, Models.Walking)
	if err != nil {
		return nil, err
	}
	return newSegment(driveLeg, walkLeg), nil
}

// publicTransportAndWalkSegment composes a flat five-minute walk to a transit
// point with a public transport leg. A transit plan implying more transfers
// than allowed falls back to driving, then to the single-mode rule. The
// transfer wait tolerance is added to the transit duration as a buffer, not
// enforced as a hard constraint.
func (o *Optimizer) publicTransportAndWalkSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	mm := prefs.MultiModal

	if !prefs.modeAllowed(Models.PublicTransport) || !*mm.AllowPublicTransportTransfers {
		return o.singleModeSegment(ctx, origin, destination, prefs)
	}

	walkDistance := transitWalkMinutes / 60 * Maps.ReferenceSpeed(Models.Walking)
	distance := Maps.Haversine(origin, destination)
	composeWalk := prefs.modeAllowed(Models.Walking) && distance > walkDistance

	boarding := origin
	if composeWalk {
		boarding = Maps.PointAtDistance(origin, Maps.Bearing(origin, destination), walkDistance)
	}

	info, err := o.resolveInfo(ctx, boarding, destination, Models.PublicTransport)
	if err != nil {
		return nil, err
	}

	transfers := 0
	if len(info.Instructions) > 1 {
		transfers = len(info.Instructions) - 1
	}
	if transfers > *mm.MaxTransfers {
		if prefs.modeAllowed(Models.Driving) {
			leg, err := o.legFor(ctx, origin, destination, Models.Driving)
			if err != nil {
				return nil, err
			}
			return newSegment(leg), nil
		}
		return o.singleModeSegment(ctx, origin, destination, prefs)
	}

	transitLeg := TransportLeg{
		From:            boarding,
		To:              destination,
		Mode:            Models.PublicTransport,
		DistanceKm:      info.DistanceKm,
		DurationMinutes: info.DurationMinutes + *mm.MaxTransferWaitTimeMinutes,
		Cost:            o.Tariffs.EstimateCost(info.DistanceKm, info.DurationMinutes, Models.PublicTransport),
		Instructions:    info.Instructions,
		Path:            info.Path,
		Estimated:       info.Estimated,
	}

	if !composeWalk {
		return newSegment(transitLeg), nil
	}

	walkLeg := TransportLeg{
		From:            origin,
		To:              boarding,
		Mode:            Models.Walking,
		DistanceKm:      walkDistance,
		DurationMinutes: transitWalkMinutes,
		Cost:            o.Tariffs.EstimateCost(walkDistance, transitWalkMinutes, Models.Walking),
		Path:            []Models.Coordinates{origin, boarding},
		Estimated:       true,
	}
	return newSegment(walkLeg, transitLeg), nil
}

// automaticSegment evaluates every allowed mode through the provider in
// parallel and picks the best scoring candidate. A failing candidate degrades
// to its haversine estimate without blocking sibling modes. Ties break on
// lower cost, then declaration order.
func (o *Optimizer) automaticSegment(ctx context.Context, origin, destination Models.Coordinates, prefs *RoutePreferences) (*RouteSegment, error) {
	modes := dedupeModes(prefs.AllowedTransportModes)

	legs := make([]TransportLeg, len(modes))
	errs := make([]error, len(modes))
	sem := make(chan struct{}, maxConcurrentLookups)
	var wg sync.WaitGroup

	for i, mode := range modes {
		wg.Add(1)
		go func(i int, mode Models.TransportMode) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			legs[i], errs[i] = o.legFor(ctx, origin, destination, mode)
		}(i, mode)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	wantTime := *prefs.OptimizeForTime
	wantCost := *prefs.OptimizeForCost

	best := 0
	bestScore := candidateScore(legs[0], wantTime, wantCost)
	for i := 1; i < len(legs); i++ {
		score := candidateScore(legs[i], wantTime, wantCost)
		switch {
		case score < bestScore:
			best, bestScore = i, score
		case score == bestScore && legs[i].Cost < legs[best].Cost:
			best = i
		case score == bestScore && legs[i].Cost == legs[best].Cost &&
			legs[i].Mode.Ordinal() < legs[best].Mode.Ordinal():
			best = i
		}
	}

	return newSegment(legs[best]), nil
}

func candidateScore(leg TransportLeg, wantTime, wantCost bool) float64 {
	switch {
	case wantTime && wantCost:
		return blendedTimeWeight*leg.DurationMinutes + blendedCostWeight*leg.Cost
	case wantTime:
		return leg.DurationMinutes
	default:
		return leg.Cost
	}
}

func dedupeModes(modes []Models.TransportMode) []Models.TransportMode {
	seen := make(map[Models.TransportMode]bool, len(modes))
	out := make([]Models.TransportMode, 0, len(modes))
	for _, mode := range modes {
		if !seen[mode] {
			seen[mode] = true
			out = append(out, mode)
		}
	}
	return out
}

// legFor resolves one leg through the provider and prices it. Provider
// failures degrade to the deterministic haversine estimate; only
// cancellation propagates as an error.
func (o *Optimizer) legFor(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (TransportLeg, error) {
	info, err := o.resolveInfo(ctx, origin, destination, mode)
	if err != nil {
		return TransportLeg{}, err
	}
	return TransportLeg{
		From:            origin,
		To:              destination,
		Mode:            mode,
		DurationMinutes: info.DurationMinutes,
		DistanceKm:      info.DistanceKm,
		Cost:            o.Tariffs.EstimateCost(info.DistanceKm, info.DurationMinutes, mode),
		Instructions:    info.Instructions,
		Path:            info.Path,
		Estimated:       info.Estimated,
	}, nil
}

func (o *Optimizer) resolveInfo(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*Maps.RouteInfo, error) {
	info, err := o.Provider.Directions(ctx, origin, destination, mode)
	if err == nil {
		return info, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return Maps.Estimate(origin, destination, mode), nil
}
