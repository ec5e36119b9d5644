package RouteOptimizer

import (
	"os"
	"path/filepath"
	"testing"

	"Escapade/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkingAndCyclingAreFree(t *testing.T) {
	tariffs := DefaultTariffs()
	assert.Equal(t, 0.0, tariffs.EstimateCost(12, 140, Models.Walking))
	assert.Equal(t, 0.0, tariffs.EstimateCost(12, 50, Models.Cycling))
}

func TestDrivingCostIsPerKm(t *testing.T) {
	tariffs := DefaultTariffs()
	assert.InDelta(t, 10*1.1, tariffs.EstimateCost(10, 20, Models.Driving), 1e-9)
}

func TestPublicTransportFlatFareUpToCap(t *testing.T) {
	tariffs := DefaultTariffs()

	// Under the cap only the flat fare applies.
	assert.InDelta(t, 2.5, tariffs.EstimateCost(8, 24, Models.PublicTransport), 1e-9)
	// Beyond the cap the excess is billed per km.
	assert.InDelta(t, 2.5+5*0.25, tariffs.EstimateCost(15, 45, Models.PublicTransport), 1e-9)
}

func TestRideSharingChargesTimeAndDistance(t *testing.T) {
	tariffs := DefaultTariffs()
	assert.InDelta(t, 2.0+10*1.5+24*0.3, tariffs.EstimateCost(10, 24, Models.RideSharing), 1e-9)
}

func TestLoadTariffsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.json5")
	content := `{
	// premium fuel prices
	driving: { per_km: 2.0 },
	ride_sharing: { base_fare: 5.0, per_km: 2.5, per_minute: 0.5 },
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tariffs, err := LoadTariffs(path)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, tariffs.EstimateCost(10, 20, Models.Driving), 1e-9)
	// Modes absent from the file keep their defaults.
	assert.InDelta(t, 2.5, tariffs.EstimateCost(5, 15, Models.PublicTransport), 1e-9)
}

func TestLoadTariffsRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{ teleport: { per_km: 0 } }`), 0644))

	_, err := LoadTariffs(path)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestLoadTariffsMissingFile(t *testing.T) {
	_, err := LoadTariffs(filepath.Join(t.TempDir(), "missing.json5"))
	assert.Error(t, err)
}
