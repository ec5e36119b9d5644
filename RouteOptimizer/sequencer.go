package RouteOptimizer

import (
	"math"

	"Escapade/Maps"
	"Escapade/Models"

	"golang.org/x/exp/rand"
)

// Sequencing algorithms selectable per request. The default two-phase
// heuristic is fully deterministic; annealing adds a seeded simulated
// annealing pass on top and keeps whichever tour is shorter.
const (
	AlgorithmTwoOpt    = "2opt"
	AlgorithmAnnealing = "annealing"
)

// sequenceStops orders the stop set to minimize haversine tour length:
// nearest-neighbor construction followed by 2-opt improvement. Sequencing
// always uses haversine; mode-aware travel time is applied afterwards by the
// assembler, which does not re-order stops.
func sequenceStops(stops []Stop, start, end *Models.Coordinates, algorithm string) []Stop {
	ordered := nearestNeighborOrder(stops, start)
	improveTwoOpt(ordered, start, end)

	if algorithm == AlgorithmAnnealing && len(ordered) > 3 {
		ordered = annealOrder(ordered, start, end)
	}
	return ordered
}

// nearestNeighborOrder starts from the fixed start location if given, else
// from the stop with the lowest ID, and repeatedly appends the closest
// unvisited stop. Ties break on lower stop ID.
func nearestNeighborOrder(stops []Stop, start *Models.Coordinates) []Stop {
	if len(stops) == 0 {
		return nil
	}
	ordered := make([]Stop, 0, len(stops))
	visited := make([]bool, len(stops))

	var current Models.Coordinates
	if start != nil {
		current = *start
	} else {
		first := 0
		for i := 1; i < len(stops); i++ {
			if stops[i].ID < stops[first].ID {
				first = i
			}
		}
		ordered = append(ordered, stops[first])
		visited[first] = true
		current = stops[first].Coord
	}

	for len(ordered) < len(stops) {
		nearest := -1
		minDist := 0.0
		for i, stop := range stops {
			if visited[i] {
				continue
			}
			d := Maps.Haversine(current, stop.Coord)
			if nearest == -1 || d < minDist || (d == minDist && stop.ID < stops[nearest].ID) {
				nearest = i
				minDist = d
			}
		}
		ordered = append(ordered, stops[nearest])
		visited[nearest] = true
		current = stops[nearest].Coord
	}

	return ordered
}

// improveTwoOpt applies 2-opt moves in place until no move shortens the tour
// or the scan cap is hit. Reversals account for the fixed start/end edges so
// the improvement is monotone on the full path length.
func improveTwoOpt(order []Stop, start, end *Models.Coordinates) {
	n := len(order)
	if n < 3 {
		return
	}

	maxScans := 200 * n
	improved := true
	for scans := 0; improved && scans < maxScans; scans++ {
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if reverseDelta(order, start, end, i, j) < -1e-9 {
					reverseStops(order, i, j)
					improved = true
				}
			}
		}
	}
}

// reverseDelta is the tour-length change from reversing order[i..j]. Only the
// two boundary edges change; a missing boundary edge (open end of the path)
// contributes nothing.
func reverseDelta(order []Stop, start, end *Models.Coordinates, i, j int) float64 {
	var before, after float64

	if i > 0 {
		before += Maps.Haversine(order[i-1].Coord, order[i].Coord)
		after += Maps.Haversine(order[i-1].Coord, order[j].Coord)
	} else if start != nil {
		before += Maps.Haversine(*start, order[i].Coord)
		after += Maps.Haversine(*start, order[j].Coord)
	}

	if j < len(order)-1 {
		before += Maps.Haversine(order[j].Coord, order[j+1].Coord)
		after += Maps.Haversine(order[i].Coord, order[j+1].Coord)
	} else if end != nil {
		before += Maps.Haversine(order[j].Coord, *end)
		after += Maps.Haversine(order[i].Coord, *end)
	}

	return after - before
}

func reverseStops(order []Stop, i, j int) {
	for k, l := i, j; k < l; k, l = k+1, l-1 {
		order[k], order[l] = order[l], order[k]
	}
}

// tourLength is the total haversine path length including the fixed start and
// end edges when present.
func tourLength(order []Stop, start, end *Models.Coordinates) float64 {
	total := 0.0
	if start != nil && len(order) > 0 {
		total += Maps.Haversine(*start, order[0].Coord)
	}
	for i := 0; i < len(order)-1; i++ {
		total += Maps.Haversine(order[i].Coord, order[i+1].Coord)
	}
	if end != nil && len(order) > 0 {
		total += Maps.Haversine(order[len(order)-1].Coord, *end)
	}
	return total
}

// annealOrder runs seeded simulated annealing from the given tour and returns
// the best tour found, never worse than the input.
func annealOrder(order []Stop, start, end *Models.Coordinates) []Stop {
	rng := rand.New(rand.NewSource(uint64(len(order))))

	current := make([]Stop, len(order))
	copy(current, order)
	currentCost := tourLength(current, start, end)

	best := make([]Stop, len(order))
	copy(best, order)
	bestCost := currentCost

	temperature := 100.0
	coolingRate := 0.99
	minTemperature := 0.01

	for temperature > minTemperature {
		candidate := make([]Stop, len(current))
		copy(candidate, current)

		i := rng.Intn(len(candidate))
		j := rng.Intn(len(candidate))
		for i == j {
			j = rng.Intn(len(candidate))
		}
		candidate[i], candidate[j] = candidate[j], candidate[i]

		candidateCost := tourLength(candidate, start, end)
		if acceptCandidate(currentCost, candidateCost, temperature, rng) {
			current = candidate
			currentCost = candidateCost
			if candidateCost < bestCost {
				copy(best, candidate)
				bestCost = candidateCost
			}
		}

		temperature *= coolingRate
	}

	improveTwoOpt(best, start, end)
	return best
}

func acceptCandidate(currentCost, newCost, temperature float64, rng *rand.Rand) bool {
	if newCost < currentCost {
		return true
	}
	delta := newCost - currentCost
	return rng.Float64() < math.Exp(-delta/temperature)
}
