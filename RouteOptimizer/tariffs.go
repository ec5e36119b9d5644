package RouteOptimizer

import (
	"fmt"
	"os"

	"Escapade/Models"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ModeTariff prices one transport mode. Cost is
// BaseFare + PerMinute*duration + PerKm*max(0, distance-FlatFareCapKm),
// so a flat fare with a distance cap (public transport) and a plain per-km
// tariff (driving) share one formula.
type ModeTariff struct {
	BaseFare      float64 `json:"base_fare"`
	PerKm         float64 `json:"per_km"`
	PerMinute     float64 `json:"per_minute"`
	FlatFareCapKm float64 `json:"flat_fare_cap_km"`
}

// TariffTable holds per-mode tariffs. Tariffs are configuration: swapping the
// table never touches the sequencer or selector.
type TariffTable struct {
	Modes map[Models.TransportMode]ModeTariff
}

// DefaultTariffs returns the built-in tariff table. Walking and cycling are
// free; public transport is a flat fare up to 10 km, then per-km.
func DefaultTariffs() *TariffTable {
	return &TariffTable{
		Modes: map[Models.TransportMode]ModeTariff{
			Models.Walking: {},
			Models.Cycling: {},
			Models.Driving: {PerKm: 1.1},
			Models.PublicTransport: {
				BaseFare:      2.5,
				PerKm:         0.25,
				FlatFareCapKm: 10,
			},
			Models.RideSharing: {
				BaseFare:  2.0,
				PerKm:     1.5,
				PerMinute: 0.3,
			},
		},
	}
}

// LoadTariffs reads a tariff table from a JSON5 file keyed by mode name.
// Modes missing from the file keep their defaults.
func LoadTariffs(path string) (*TariffTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tariff file: %w", err)
	}

	var raw map[string]ModeTariff
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tariff file %s: %w", path, err)
	}

	table := DefaultTariffs()
	for name, tariff := range raw {
		mode := Models.TransportMode(name)
		if !mode.Valid() {
			return nil, fmt.Errorf("tariff file %s: %w: %q", path, ErrUnknownMode, name)
		}
		table.Modes[mode] = tariff
	}
	return table, nil
}

// EstimateCost converts a resolved distance and duration into money for one
// leg. Pure function of the table.
func (t *TariffTable) EstimateCost(distanceKm, durationMinutes float64, mode Models.TransportMode) float64 {
	tariff, ok := t.Modes[mode]
	if !ok {
		return 0
	}
	billableKm := distanceKm - tariff.FlatFareCapKm
	if billableKm < 0 {
		billableKm = 0
	}
	return tariff.BaseFare + tariff.PerMinute*durationMinutes + tariff.PerKm*billableKm
}
