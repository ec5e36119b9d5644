package RouteOptimizer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"Escapade/Models"

	"github.com/gofiber/fiber/v2"
)

// RouteHandler exposes the optimization engine over HTTP.
type RouteHandler struct {
	Optimizer *Optimizer
}

func NewRouteHandler(optimizer *Optimizer) *RouteHandler {
	return &RouteHandler{Optimizer: optimizer}
}

// OptimizeRouteRequest is the structure of the incoming optimization request.
type OptimizeRouteRequest struct {
	VenueIDs    []uint            `json:"venue_ids"`
	Preferences *RoutePreferences `json:"preferences"`
	Algorithm   string            `json:"algorithm,omitempty"` // "2opt" (default) or "annealing"
}

// OptimizeRouteResponse is the optimized route plus a shareable maps link.
type OptimizeRouteResponse struct {
	*OptimizedRoute
	GoogleMapsURL string `json:"google_maps_url,omitempty"`
}

func (h *RouteHandler) OptimizeRoute(c *fiber.Ctx) error {
	var req OptimizeRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	route, err := h.Optimizer.OptimizeRoute(c.UserContext(), req.VenueIDs, req.Preferences, req.Algorithm)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}

	return c.JSON(OptimizeRouteResponse{
		OptimizedRoute: route,
		GoogleMapsURL:  generateGoogleMapsURL(route, req.Preferences),
	})
}

// TravelRequest asks for time, cost and distance of one leg.
type TravelRequest struct {
	Origin      Models.Coordinates   `json:"origin"`
	Destination Models.Coordinates   `json:"destination"`
	Mode        Models.TransportMode `json:"mode"`
}

func (h *RouteHandler) TravelEstimate(c *fiber.Ctx) error {
	var req TravelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Origin.IsZero() || req.Destination.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Origin and destination are required")
	}

	estimate, err := h.Optimizer.Travel(c.UserContext(), req.Origin, req.Destination, req.Mode)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(estimate)
}

// SegmentRequest asks for the full transport plan of one hop.
type SegmentRequest struct {
	Origin      Models.Coordinates `json:"origin"`
	Destination Models.Coordinates `json:"destination"`
	Preferences *RoutePreferences  `json:"preferences"`
}

func (h *RouteHandler) RouteSegment(c *fiber.Ctx) error {
	var req SegmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Origin.IsZero() || req.Destination.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Origin and destination are required")
	}

	segment, err := h.Optimizer.BuildSegment(c.UserContext(), req.Origin, req.Destination, req.Preferences)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(segment)
}

// LegModesRequest asks for the selected mode of each leg of an ordered
// waypoint list.
type LegModesRequest struct {
	Waypoints   []Models.Coordinates `json:"waypoints"`
	Preferences *RoutePreferences    `json:"preferences"`
}

type LegModesResponse struct {
	Modes []Models.TransportMode `json:"modes"`
}

func (h *RouteHandler) LegModes(c *fiber.Ctx) error {
	var req LegModesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if len(req.Waypoints) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "At least two waypoints are required")
	}

	modes, err := h.Optimizer.LegModes(c.UserContext(), req.Waypoints, req.Preferences)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return c.JSON(LegModesResponse{Modes: modes})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout
	case errors.Is(err, ErrNoStops),
		errors.Is(err, ErrNoAllowedModes),
		errors.Is(err, ErrNoObjective),
		errors.Is(err, ErrNoReachableStops),
		errors.Is(err, ErrUnknownMode),
		errors.Is(err, ErrUnknownStrategy),
		errors.Is(err, ErrInvalidPreferences):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Google Maps travel modes per transport mode; ride sharing has no own mode.
var googleMapsTravelModes = map[Models.TransportMode]string{
	Models.Walking:         "walking",
	Models.Driving:         "driving",
	Models.Cycling:         "bicycling",
	Models.PublicTransport: "transit",
	Models.RideSharing:     "driving",
}

// generateGoogleMapsURL creates a shareable directions link for the route.
func generateGoogleMapsURL(route *OptimizedRoute, prefs *RoutePreferences) string {
	if len(route.Stops) == 0 {
		return ""
	}

	points := make([]Models.Coordinates, 0, len(route.Stops)+2)
	if prefs != nil && prefs.StartLocation != nil {
		points = append(points, *prefs.StartLocation)
	}
	for _, stop := range route.Stops {
		points = append(points, stop.Coord)
	}
	if prefs != nil && prefs.EndLocation != nil {
		points = append(points, *prefs.EndLocation)
	}
	if len(points) < 2 {
		return ""
	}

	params := url.Values{}
	params.Add("origin", fmt.Sprintf("%.6f,%.6f", points[0].Lat, points[0].Lng))
	params.Add("destination", fmt.Sprintf("%.6f,%.6f", points[len(points)-1].Lat, points[len(points)-1].Lng))

	if len(points) > 2 {
		waypoints := make([]string, 0, len(points)-2)
		for _, p := range points[1 : len(points)-1] {
			waypoints = append(waypoints, fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng))
		}
		params.Add("waypoints", strings.Join(waypoints, "|"))
	}

	params.Add("travelmode", googleMapsTravelModes[routePrimaryMode(route)])

	return "https://www.google.com/maps/dir/?api=1&" + params.Encode()
}

// routePrimaryMode is the mode covering the most distance across the route.
func routePrimaryMode(route *OptimizedRoute) Models.TransportMode {
	distances := make(map[Models.TransportMode]float64)
	for _, segment := range route.Segments {
		for _, leg := range segment.Legs {
			distances[leg.Mode] += leg.DistanceKm
		}
	}

	best := Models.Driving
	bestDistance := -1.0
	for _, mode := range Models.AllTransportModes() {
		if d, ok := distances[mode]; ok && d > bestDistance {
			best = mode
			bestDistance = d
		}
	}
	return best
}
