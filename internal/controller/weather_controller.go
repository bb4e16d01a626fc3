package controller

import (
	"math"
	"strconv"

	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWeatherController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
}

type weatherController struct {
	service service.IWeatherService
}

func NewWeatherController(service service.IWeatherService) IWeatherController {
	return &weatherController{service: service}
}

func (c *weatherController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/weather")
	h.Get("/", c.Current)
}

func (c *weatherController) Current(ctx *fiber.Ctx) error {
	rawLat, rawLon := ctx.Query("lat"), ctx.Query("lon")
	if rawLat == "" || rawLon == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Latitude and Longitude required"))
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) ||
		lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Latitude and Longitude must be valid coordinates"))
	}

	body, err := c.service.Current(ctx.Context(), lat, lon)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(body)
}
