package RouteOptimizer

import (
	"errors"
	"fmt"
	"strings"

	"Escapade/Models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// MultiModalStrategy governs whether and how the transition between two stops
// is split across transport modes.
type MultiModalStrategy string

const (
	SingleMode             MultiModalStrategy = "single_mode"
	DistanceBased          MultiModalStrategy = "distance_based"
	ParkAndWalk            MultiModalStrategy = "park_and_walk"
	PublicTransportAndWalk MultiModalStrategy = "public_transport_and_walk"
	Automatic              MultiModalStrategy = "automatic"
)

var knownStrategies = map[MultiModalStrategy]bool{
	SingleMode:             true,
	DistanceBased:          true,
	ParkAndWalk:            true,
	PublicTransportAndWalk: true,
	Automatic:              true,
}

// Validation errors for invalid optimization input.
var (
	ErrInvalidPreferences = errors.New("invalid preferences")

	ErrNoStops          = errors.New("at least one venue is required")
	ErrNoAllowedModes   = errors.New("at least one allowed transport mode is required")
	ErrNoObjective      = errors.New("at least one of optimize_for_time and optimize_for_cost must be enabled")
	ErrNoReachableStops = errors.New("none of the requested venues have usable coordinates")
	ErrUnknownMode      = errors.New("unknown transport mode")
	ErrUnknownStrategy  = errors.New("unknown multi-modal strategy")
)

// Preference defaults applied when a field is omitted.
const (
	DefaultMaxWalkingDistanceKm       = 1.0
	DefaultMaxCyclingDistanceKm       = 5.0
	DefaultMaxTransfers               = 2
	DefaultMaxTransferWaitTimeMinutes = 15.0
)

// MultiModalPreferences tune the strategies that split a segment into
// multiple legs.
type MultiModalPreferences struct {
	// Pointer fields distinguish an explicit zero (forbid walking, forbid
	// transfers) from an omitted field, which takes the default.
	MaxWalkingDistanceKm          *float64 `json:"max_walking_distance_km,omitempty" validate:"omitempty,gte=0"`
	MaxCyclingDistanceKm          *float64 `json:"max_cycling_distance_km,omitempty" validate:"omitempty,gte=0"`
	PreferParkAndWalk             bool     `json:"prefer_park_and_walk,omitempty"`
	AllowPublicTransportTransfers *bool    `json:"allow_public_transport_transfers,omitempty"`
	MaxTransfers                  *int     `json:"max_transfers,omitempty" validate:"omitempty,gte=0"`
	MaxTransferWaitTimeMinutes    *float64 `json:"max_transfer_wait_time_minutes,omitempty" validate:"omitempty,gte=0"`
}

// RoutePreferences configures one optimization request.
type RoutePreferences struct {
	AllowedTransportModes  []Models.TransportMode `json:"allowed_transport_modes" validate:"required,min=1"`
	PreferredTransportMode Models.TransportMode   `json:"preferred_transport_mode,omitempty"`
	Strategy               MultiModalStrategy     `json:"strategy,omitempty"`
	MaxTotalTimeMinutes    float64                `json:"max_total_time_minutes,omitempty" validate:"omitempty,gt=0"`
	MaxBudget              float64                `json:"max_budget,omitempty" validate:"omitempty,gt=0"`
	OptimizeForTime        *bool                  `json:"optimize_for_time,omitempty"`
	OptimizeForCost        *bool                  `json:"optimize_for_cost,omitempty"`
	StartLocation          *Models.Coordinates    `json:"start_location,omitempty"`
	EndLocation            *Models.Coordinates    `json:"end_location,omitempty"`
	MultiModal             *MultiModalPreferences `json:"multi_modal,omitempty"`
}

// ApplyDefaults fills omitted optional fields with the documented defaults:
// preferred mode driving, strategy single-mode, optimize for time.
func (p *RoutePreferences) ApplyDefaults() {
	if p.PreferredTransportMode == "" {
		p.PreferredTransportMode = Models.Driving
	}
	if p.Strategy == "" {
		p.Strategy = SingleMode
	}
	if p.OptimizeForTime == nil {
		v := true
		p.OptimizeForTime = &v
	}
	if p.OptimizeForCost == nil {
		v := false
		p.OptimizeForCost = &v
	}
	if p.MultiModal == nil {
		p.MultiModal = &MultiModalPreferences{}
	}
	if p.MultiModal.MaxWalkingDistanceKm == nil {
		v := float64(DefaultMaxWalkingDistanceKm)
		p.MultiModal.MaxWalkingDistanceKm = &v
	}
	if p.MultiModal.MaxCyclingDistanceKm == nil {
		v := float64(DefaultMaxCyclingDistanceKm)
		p.MultiModal.MaxCyclingDistanceKm = &v
	}
	if p.MultiModal.AllowPublicTransportTransfers == nil {
		v := true
		p.MultiModal.AllowPublicTransportTransfers = &v
	}
	if p.MultiModal.MaxTransfers == nil {
		v := DefaultMaxTransfers
		p.MultiModal.MaxTransfers = &v
	}
	if p.MultiModal.MaxTransferWaitTimeMinutes == nil {
		v := float64(DefaultMaxTransferWaitTimeMinutes)
		p.MultiModal.MaxTransferWaitTimeMinutes = &v
	}
}

// Validate rejects invalid preference sets before any computation. Call after
// ApplyDefaults.
func (p *RoutePreferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			if len(p.AllowedTransportModes) == 0 {
				return ErrNoAllowedModes
			}
			return fmt.Errorf("%w: %s", ErrInvalidPreferences, translateValidationError(err))
		}
		return err
	}
	for _, mode := range p.AllowedTransportModes {
		if !mode.Valid() {
			return ErrUnknownMode
		}
	}
	if !knownStrategies[p.Strategy] {
		return ErrUnknownStrategy
	}
	if !*p.OptimizeForTime && !*p.OptimizeForCost {
		return ErrNoObjective
	}
	return nil
}

func (p *RoutePreferences) modeAllowed(mode Models.TransportMode) bool {
	for _, m := range p.AllowedTransportModes {
		if m == mode {
			return true
		}
	}
	return false
}

// effectiveMode resolves the single-mode choice: the preferred mode when
// allowed, otherwise the first allowed mode in declaration order.
func (p *RoutePreferences) effectiveMode() Models.TransportMode {
	if p.modeAllowed(p.PreferredTransportMode) {
		return p.PreferredTransportMode
	}
	best := p.AllowedTransportModes[0]
	for _, m := range p.AllowedTransportModes[1:] {
		if m.Ordinal() < best.Ordinal() {
			best = m
		}
	}
	return best
}

// Stop is one venue to visit, already resolved to coordinates.
type Stop struct {
	ID    uint               `json:"id"`
	Name  string             `json:"name,omitempty"`
	Coord Models.Coordinates `json:"coord"`
}

// TransportLeg is one atomic hop under a single mode. Immutable once computed.
type TransportLeg struct {
	From            Models.Coordinates   `json:"from"`
	To              Models.Coordinates   `json:"to"`
	Mode            Models.TransportMode `json:"mode"`
	DurationMinutes float64              `json:"duration_minutes"`
	Cost            float64              `json:"cost"`
	DistanceKm      float64              `json:"distance_km"`
	Instructions    []string             `json:"instructions,omitempty"`
	Path            []Models.Coordinates `json:"path,omitempty"`
	Estimated       bool                 `json:"estimated"`
}

// RouteSegment is the full transition between two consecutive stops: one or
// more legs plus aggregates. PrimaryMode is the mode of the dominant leg by
// distance.
type RouteSegment struct {
	Legs            []TransportLeg       `json:"legs"`
	DurationMinutes float64              `json:"duration_minutes"`
	Cost            float64              `json:"cost"`
	DistanceKm      float64              `json:"distance_km"`
	PrimaryMode     Models.TransportMode `json:"primary_mode"`
}

func newSegment(legs ...TransportLeg) *RouteSegment {
	seg := &RouteSegment{Legs: legs}
	for _, leg := range legs {
		seg.DurationMinutes += leg.DurationMinutes
		seg.Cost += leg.Cost
		seg.DistanceKm += leg.DistanceKm
	}
	if len(legs) > 0 {
		primary := legs[0]
		for _, leg := range legs[1:] {
			if leg.DistanceKm > primary.DistanceKm {
				primary = leg
			}
		}
		seg.PrimaryMode = primary.Mode
	}
	return seg
}

// Estimated reports whether any leg of the segment fell back to a
// haversine-derived estimate.
func (s *RouteSegment) Estimated() bool {
	for _, leg := range s.Legs {
		if leg.Estimated {
			return true
		}
	}
	return false
}

// SkippedStop is a venue excluded from the route because it could not be
// resolved to usable coordinates.
type SkippedStop struct {
	ID     uint   `json:"id"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// OptimizedRoute is the final result of one optimization request.
type OptimizedRoute struct {
	Stops                 []Stop         `json:"stops"`
	Segments              []RouteSegment `json:"segments"`
	TotalTimeMinutes      float64        `json:"total_time_minutes"`
	TotalCost             float64        `json:"total_cost"`
	TotalDistanceKm       float64        `json:"total_distance_km"`
	TotalVisitTimeMinutes float64        `json:"total_visit_time_minutes,omitempty"`
	Score                 float64        `json:"score"`
	Estimated             bool           `json:"estimated"`
	ExceedsConstraints    bool           `json:"exceeds_constraints"`
	SkippedStops          []SkippedStop  `json:"skipped_stops,omitempty"`
}

// TravelEstimate is the narrow one-leg result exposed without full sequencing.
type TravelEstimate struct {
	Mode            Models.TransportMode `json:"mode"`
	DistanceKm      float64              `json:"distance_km"`
	DurationMinutes float64              `json:"duration_minutes"`
	Cost            float64              `json:"cost"`
	Estimated       bool                 `json:"estimated"`
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	enTranslations.RegisterDefaultTranslations(validate, trans)
}

func translateValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fieldErr := range verrs {
			parts = append(parts, fieldErr.Translate(trans))
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}
