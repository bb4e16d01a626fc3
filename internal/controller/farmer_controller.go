package controller

import (
	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFarmerController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
}

type farmerController struct {
	service service.IFarmerService
}

func NewFarmerController(service service.IFarmerService) IFarmerController {
	return &farmerController{service: service}
}

func (c *farmerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/farmer")
	h.Post("/register", c.Register)
}

// Register answers 201 for a new farmer and 200 when the phone is already known.
func (c *farmerController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterFarmerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}

	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return ctx.Status(status).JSON(res)
}
