package Models

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the pair is the (0,0) null-island sentinel used by
// the venue store for addresses that were never geocoded.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
