package Models

import (
	"gorm.io/gorm"
)

// Company owns one or more escape room venues.
type Company struct {
	gorm.Model
	Name    string `json:"name"`
	Website string `json:"website"`
}

// Venue is a physical escape room location. Lat/Lng stay at the (0,0)
// sentinel until the address has been geocoded.
type Venue struct {
	gorm.Model
	Name                   string  `json:"name"`
	Slug                   string  `json:"slug" gorm:"uniqueIndex"`
	CompanyID              uint    `json:"company_id"`
	Company                Company `json:"company,omitempty"`
	Address                string  `json:"address"`
	Lat                    float64 `json:"lat"`
	Lng                    float64 `json:"lng"`
	AverageDurationMinutes float64 `json:"average_duration_minutes"`
}

// Coordinates returns the venue position as a value pair.
func (v *Venue) Coordinates() Coordinates {
	return Coordinates{Lat: v.Lat, Lng: v.Lng}
}

// VenueInfo is the slice of a venue the route engine needs.
type VenueInfo struct {
	ID                     uint
	Name                   string
	Coordinates            Coordinates
	AverageDurationMinutes float64
}

// VenueResolver resolves a venue ID to its coordinates. The second return is
// false when the venue does not exist or has no usable coordinates, in which
// case the engine must skip the stop instead of routing through (0,0).
type VenueResolver interface {
	Resolve(id uint) (VenueInfo, bool)
}

// DBVenueResolver is the production resolver backed by the venue table.
type DBVenueResolver struct {
	DB *gorm.DB
}

func NewDBVenueResolver(db *gorm.DB) *DBVenueResolver {
	return &DBVenueResolver{DB: db}
}

func (r *DBVenueResolver) Resolve(id uint) (VenueInfo, bool) {
	var venue Venue
	if err := r.DB.First(&venue, id).Error; err != nil {
		return VenueInfo{ID: id}, false
	}
	info := VenueInfo{
		ID:                     venue.ID,
		Name:                   venue.Name,
		Coordinates:            venue.Coordinates(),
		AverageDurationMinutes: venue.AverageDurationMinutes,
	}
	if info.Coordinates.IsZero() {
		return info, false
	}
	return info, true
}

// MapVenueResolver is a deterministic in-memory resolver used by tests and
// by callers that already hold venue data.
type MapVenueResolver struct {
	Venues map[uint]VenueInfo
}

func (r *MapVenueResolver) Resolve(id uint) (VenueInfo, bool) {
	info, ok := r.Venues[id]
	if !ok {
		return VenueInfo{ID: id}, false
	}
	return info, !info.Coordinates.IsZero()
}
