package Models

// TransportMode is one way of covering a single leg. Declaration order in
// transportModeOrder doubles as the deterministic tie-break order.
type TransportMode string

const (
	Walking         TransportMode = "walking"
	Driving         TransportMode = "driving"
	PublicTransport TransportMode = "public_transport"
	Cycling         TransportMode = "cycling"
	RideSharing     TransportMode = "ride_sharing"
)

var transportModeOrder = []TransportMode{
	Walking,
	Driving,
	PublicTransport,
	Cycling,
	RideSharing,
}

// AllTransportModes returns every known mode in declaration order.
func AllTransportModes() []TransportMode {
	modes := make([]TransportMode, len(transportModeOrder))
	copy(modes, transportModeOrder)
	return modes
}

// Ordinal returns the declaration-order index of the mode, or -1 for an
// unknown mode. Used only for tie-breaking, never for semantic comparison.
func (m TransportMode) Ordinal() int {
	for i, mode := range transportModeOrder {
		if mode == m {
			return i
		}
	}
	return -1
}

// Valid reports whether the mode is one of the declared constants.
func (m TransportMode) Valid() bool {
	return m.Ordinal() >= 0
}
