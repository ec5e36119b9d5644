package RouteOptimizer

import (
	"testing"

	"Escapade/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	p := &RoutePreferences{AllowedTransportModes: []Models.TransportMode{Models.Driving}}
	p.ApplyDefaults()

	assert.Equal(t, Models.Driving, p.PreferredTransportMode)
	assert.Equal(t, SingleMode, p.Strategy)
	require.NotNil(t, p.OptimizeForTime)
	assert.True(t, *p.OptimizeForTime)
	require.NotNil(t, p.OptimizeForCost)
	assert.False(t, *p.OptimizeForCost)

	require.NotNil(t, p.MultiModal)
	require.NotNil(t, p.MultiModal.MaxWalkingDistanceKm)
	assert.Equal(t, float64(DefaultMaxWalkingDistanceKm), *p.MultiModal.MaxWalkingDistanceKm)
	require.NotNil(t, p.MultiModal.MaxCyclingDistanceKm)
	assert.Equal(t, float64(DefaultMaxCyclingDistanceKm), *p.MultiModal.MaxCyclingDistanceKm)
	require.NotNil(t, p.MultiModal.MaxTransfers)
	assert.Equal(t, DefaultMaxTransfers, *p.MultiModal.MaxTransfers)
	require.NotNil(t, p.MultiModal.MaxTransferWaitTimeMinutes)
	assert.Equal(t, float64(DefaultMaxTransferWaitTimeMinutes), *p.MultiModal.MaxTransferWaitTimeMinutes)
	require.NotNil(t, p.MultiModal.AllowPublicTransportTransfers)
	assert.True(t, *p.MultiModal.AllowPublicTransportTransfers)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	off := false
	walk := 2.5
	p := &RoutePreferences{
		AllowedTransportModes:  []Models.TransportMode{Models.Walking},
		PreferredTransportMode: Models.Walking,
		Strategy:               Automatic,
		OptimizeForTime:        &off,
		MultiModal:             &MultiModalPreferences{MaxWalkingDistanceKm: &walk},
	}
	p.ApplyDefaults()

	assert.Equal(t, Models.Walking, p.PreferredTransportMode)
	assert.Equal(t, Automatic, p.Strategy)
	assert.False(t, *p.OptimizeForTime)
	assert.Equal(t, 2.5, *p.MultiModal.MaxWalkingDistanceKm)
}

func TestApplyDefaultsKeepsExplicitZeroes(t *testing.T) {
	noWalk := 0.0
	noTransfers := 0
	noWait := 0.0
	p := &RoutePreferences{
		AllowedTransportModes: []Models.TransportMode{Models.Driving},
		MultiModal: &MultiModalPreferences{
			MaxWalkingDistanceKm:       &noWalk,
			MaxTransfers:               &noTransfers,
			MaxTransferWaitTimeMinutes: &noWait,
		},
	}
	p.ApplyDefaults()

	assert.Equal(t, 0.0, *p.MultiModal.MaxWalkingDistanceKm)
	assert.Equal(t, 0, *p.MultiModal.MaxTransfers)
	assert.Equal(t, 0.0, *p.MultiModal.MaxTransferWaitTimeMinutes)
	// omitted fields still take defaults
	require.NotNil(t, p.MultiModal.MaxCyclingDistanceKm)
	assert.Equal(t, float64(DefaultMaxCyclingDistanceKm), *p.MultiModal.MaxCyclingDistanceKm)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	p := &RoutePreferences{AllowedTransportModes: []Models.TransportMode{"hovercraft"}}
	p.ApplyDefaults()
	assert.ErrorIs(t, p.Validate(), ErrUnknownMode)
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	p := &RoutePreferences{
		AllowedTransportModes: []Models.TransportMode{Models.Driving},
		Strategy:              "teleportation",
	}
	p.ApplyDefaults()
	assert.ErrorIs(t, p.Validate(), ErrUnknownStrategy)
}

func TestTransportModeOrdinals(t *testing.T) {
	modes := Models.AllTransportModes()
	require.Len(t, modes, 5)
	for i, mode := range modes {
		assert.Equal(t, i, mode.Ordinal())
	}
	assert.Equal(t, -1, Models.TransportMode("hovercraft").Ordinal())
}

func TestNewSegmentAggregatesAndPicksPrimaryMode(t *testing.T) {
	segment := newSegment(
		TransportLeg{Mode: Models.Driving, DurationMinutes: 20, Cost: 11, DistanceKm: 10},
		TransportLeg{Mode: Models.Walking, DurationMinutes: 12, Cost: 0, DistanceKm: 1, Estimated: true},
	)

	assert.Equal(t, 32.0, segment.DurationMinutes)
	assert.Equal(t, 11.0, segment.Cost)
	assert.Equal(t, 11.0, segment.DistanceKm)
	assert.Equal(t, Models.Driving, segment.PrimaryMode)
	assert.True(t, segment.Estimated())
}
