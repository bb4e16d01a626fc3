package controller

import (
	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	AddCropHistory(ctx *fiber.Ctx) error
	RemoveCropHistory(ctx *fiber.Ctx) error
}

type authController struct {
	service        service.IAuthService
	authMiddleware fiber.Handler
}

func NewAuthController(service service.IAuthService, authMiddleware fiber.Handler) IAuthController {
	return &authController{service: service, authMiddleware: authMiddleware}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)

	h.Get("/me", c.authMiddleware, c.Me)
	h.Put("/profile", c.authMiddleware, c.UpdateProfile)
	h.Post("/crop-history", c.authMiddleware, c.AddCropHistory)
	h.Delete("/crop-history/:id", c.authMiddleware, c.RemoveCropHistory)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	res, err := c.service.Signup(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	user, err := c.service.Me(ctx.Context(), userId)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"user": user})
}

func (c *authController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	user, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Profile updated!", "user": user})
}

func (c *authController) AddCropHistory(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	var req dto.AddCropHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	history, err := c.service.AddCropHistory(ctx.Context(), userId, &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Crop history added!", "history": history})
}

func (c *authController) RemoveCropHistory(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	recordId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid record id"))
	}

	history, err := c.service.RemoveCropHistory(ctx.Context(), userId, recordId)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Record removed", "history": history})
}
