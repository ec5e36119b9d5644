package RouteOptimizer

import (
	"testing"

	"Escapade/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopAt(id uint, lat, lng float64) Stop {
	return Stop{ID: id, Coord: Models.Coordinates{Lat: lat, Lng: lng}}
}

func assertPermutation(t *testing.T, input, output []Stop) {
	t.Helper()
	require.Len(t, output, len(input))
	seen := make(map[uint]int)
	for _, s := range output {
		seen[s.ID]++
	}
	for _, s := range input {
		assert.Equal(t, 1, seen[s.ID], "stop %d should appear exactly once", s.ID)
	}
}

func TestSequenceMonotonicChainKeepsOrder(t *testing.T) {
	stops := []Stop{
		stopAt(1, 0, 0),
		stopAt(2, 0, 1),
		stopAt(3, 0, 2),
	}

	ordered := sequenceStops(stops, nil, nil, "")
	require.Len(t, ordered, 3)
	assert.Equal(t, uint(1), ordered[0].ID)
	assert.Equal(t, uint(2), ordered[1].ID)
	assert.Equal(t, uint(3), ordered[2].ID)
}

func TestSequenceEmptyStops(t *testing.T) {
	assert.Empty(t, sequenceStops(nil, nil, nil, ""))
	assert.Empty(t, nearestNeighborOrder(nil, nil))
}

func TestSequenceIsPermutation(t *testing.T) {
	stops := []Stop{
		stopAt(7, 45.50, -73.57),
		stopAt(3, 45.53, -73.62),
		stopAt(9, 45.48, -73.55),
		stopAt(1, 45.51, -73.56),
		stopAt(5, 45.55, -73.60),
	}

	ordered := sequenceStops(stops, nil, nil, "")
	assertPermutation(t, stops, ordered)
}

func TestSequenceStartsFromLowestIDWithoutFixedStart(t *testing.T) {
	stops := []Stop{
		stopAt(30, 0, 5),
		stopAt(10, 0, 4),
		stopAt(20, 0, 3),
	}

	ordered := nearestNeighborOrder(stops, nil)
	assert.Equal(t, uint(10), ordered[0].ID)
}

func TestSequenceStartsNearFixedStart(t *testing.T) {
	stops := []Stop{
		stopAt(1, 0, 10),
		stopAt(2, 0, 1),
		stopAt(3, 0, 5),
	}
	start := &Models.Coordinates{Lat: 0, Lng: 0}

	ordered := sequenceStops(stops, start, nil, "")
	require.Len(t, ordered, 3)
	assert.Equal(t, uint(2), ordered[0].ID)
	assert.Equal(t, uint(3), ordered[1].ID)
	assert.Equal(t, uint(1), ordered[2].ID)
}

func TestTwoOptNeverIncreasesTourLength(t *testing.T) {
	stops := []Stop{
		stopAt(1, 0, 0),
		stopAt(2, 1, 3),
		stopAt(3, 0, 1),
		stopAt(4, 1, 0),
		stopAt(5, 0, 3),
		stopAt(6, 1, 1),
	}

	constructed := nearestNeighborOrder(stops, nil)
	constructedLength := tourLength(constructed, nil, nil)

	improved := make([]Stop, len(constructed))
	copy(improved, constructed)
	improveTwoOpt(improved, nil, nil)

	assert.LessOrEqual(t, tourLength(improved, nil, nil), constructedLength)
	assertPermutation(t, stops, improved)
}

func TestTwoOptUncrossesEdges(t *testing.T) {
	// A square visited in crossing order; 2-opt must uncross it.
	stops := []Stop{
		stopAt(1, 0, 0),
		stopAt(2, 1, 1),
		stopAt(3, 1, 0),
		stopAt(4, 0, 1),
	}

	order := []Stop{stops[0], stops[1], stops[2], stops[3]}
	crossed := tourLength(order, nil, nil)
	improveTwoOpt(order, nil, nil)

	assert.Less(t, tourLength(order, nil, nil), crossed)
}

func TestAnnealingNeverWorseThanTwoOpt(t *testing.T) {
	stops := []Stop{
		stopAt(1, 45.50, -73.57),
		stopAt(2, 45.53, -73.62),
		stopAt(3, 45.48, -73.55),
		stopAt(4, 45.51, -73.56),
		stopAt(5, 45.55, -73.60),
		stopAt(6, 45.47, -73.58),
	}

	deterministic := sequenceStops(stops, nil, nil, AlgorithmTwoOpt)
	annealed := sequenceStops(stops, nil, nil, AlgorithmAnnealing)

	assert.LessOrEqual(t, tourLength(annealed, nil, nil), tourLength(deterministic, nil, nil)+1e-9)
	assertPermutation(t, stops, annealed)
}

func TestTourLengthIncludesFixedEndpoints(t *testing.T) {
	stops := []Stop{stopAt(1, 0, 1)}
	start := &Models.Coordinates{Lat: 0, Lng: 0}
	end := &Models.Coordinates{Lat: 0, Lng: 2}

	withEnds := tourLength(stops, start, end)
	without := tourLength(stops, nil, nil)

	assert.Equal(t, 0.0, without)
	assert.Greater(t, withEnds, 0.0)
}
