package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Escapade/Models"
)

// VenueController handles venue-related API endpoints
type VenueController struct {
	DB *gorm.DB
}

// NewVenueController creates a new VenueController
func NewVenueController(db *gorm.DB) *VenueController {
	return &VenueController{DB: db}
}

// GetVenues retrieves all venues, optionally filtered by company
func (c *VenueController) GetVenues(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Company")

	if companyID := ctx.Query("company_id"); companyID != "" {
		id, err := strconv.Atoi(companyID)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid company ID"})
		}
		query = query.Where("company_id = ?", id)
	}

	var venues []Models.Venue
	if result := query.Find(&venues); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve venues"})
	}

	return ctx.JSON(venues)
}

// GetVenue retrieves a single venue by ID
func (c *VenueController) GetVenue(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid venue ID"})
	}

	var venue Models.Venue
	if result := c.DB.Preload("Company").First(&venue, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
	}

	return ctx.JSON(venue)
}
