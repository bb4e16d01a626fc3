package controller

import (
	"strconv"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISchemeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type schemeController struct {
	service service.ISchemeService
}

func NewSchemeController(service service.ISchemeService) ISchemeController {
	return &schemeController{service: service}
}

func (c *schemeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/schemes")
	h.Get("/", c.List)
}

func (c *schemeController) List(ctx *fiber.Ctx) error {
	query := dto.SchemeQuery{State: ctx.Query("state")}

	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("limit must be a positive integer"))
		}
		query.Limit = n
	}

	return ctx.JSON(c.service.List(ctx.Context(), query))
}
