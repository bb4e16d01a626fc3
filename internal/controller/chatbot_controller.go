package controller

import (
	"strconv"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service        service.IChatbotService
	authMiddleware fiber.Handler
}

func NewChatbotController(service service.IChatbotService, authMiddleware fiber.Handler) IChatbotController {
	return &chatbotController{service: service, authMiddleware: authMiddleware}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(c.authMiddleware)
	h.Post("/", c.Chat)
	h.Get("/history", c.GetHistory)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}
	if req.Language == "" {
		req.Language = "english"
	}

	res, err := c.service.Chat(ctx.Context(), userId, &req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnavailable {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(service.ChatUnavailableBody())
		}
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Authentication required"))
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("limit must be a positive integer"))
		}
		limit = n
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, limit)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}
