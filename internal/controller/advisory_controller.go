package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxImageBytes = 8 << 20

var errNoImage = errors.New("no image uploaded")

type IAdvisoryController interface {
	RegisterRoutes(r fiber.Router)
	CropAdvice(ctx *fiber.Ctx) error
	FinancialGuidance(ctx *fiber.Ctx) error
	LocationSchemes(ctx *fiber.Ctx) error
	AnalyzeSoil(ctx *fiber.Ctx) error
	AnalyzePlant(ctx *fiber.Ctx) error
}

type advisoryController struct {
	service        service.IAdvisoryService
	authMiddleware fiber.Handler
}

func NewAdvisoryController(service service.IAdvisoryService, authMiddleware fiber.Handler) IAdvisoryController {
	return &advisoryController{service: service, authMiddleware: authMiddleware}
}

func (c *advisoryController) RegisterRoutes(r fiber.Router) {
	r.Post("/crop-advice", c.authMiddleware, c.CropAdvice)
	r.Post("/financial-guidance", c.authMiddleware, c.FinancialGuidance)
	r.Post("/location-schemes", c.authMiddleware, c.LocationSchemes)
	r.Post("/analyze-soil", c.authMiddleware, c.AnalyzeSoil)
	r.Post("/analyze-plant", c.authMiddleware, c.AnalyzePlant)
}

func (c *advisoryController) CropAdvice(ctx *fiber.Ctx) error {
	var req dto.CropAdviceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	res, err := c.service.CropAdvice(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *advisoryController) FinancialGuidance(ctx *fiber.Ctx) error {
	var req dto.FinancialGuidanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	res, err := c.service.FinancialGuidance(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *advisoryController) LocationSchemes(ctx *fiber.Ctx) error {
	var req dto.LocationSchemesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.WriteError(ctx, err)
	}

	res, err := c.service.LocationSchemes(ctx.Context(), &req)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *advisoryController) AnalyzeSoil(ctx *fiber.Ctx) error {
	image, err := readImage(ctx, "soilImage")
	if err != nil {
		return writeUploadError(ctx, err)
	}

	res, err := c.service.AnalyzeSoil(ctx.Context(), image)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *advisoryController) AnalyzePlant(ctx *fiber.Ctx) error {
	image, err := readImage(ctx, "plantImage")
	if err != nil {
		return writeUploadError(ctx, err)
	}

	res, err := c.service.AnalyzePlant(ctx.Context(), image)
	if err != nil {
		return serverutils.WriteError(ctx, err)
	}
	return ctx.JSON(res)
}

// readImage loads the multipart field into memory. Nothing touches the disk.
func readImage(ctx *fiber.Ctx, field string) (*dto.ImageUpload, error) {
	header, err := ctx.FormFile(field)
	if err != nil || header == nil {
		return nil, errNoImage
	}
	if header.Size > maxImageBytes {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image is too large")
	}

	data, err := readMultipartFile(header)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoImage
	}

	mimeType := header.Header.Get(fiber.HeaderContentType)
	if mimeType == "" || mimeType == fiber.MIMEOctetStream {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return &dto.ImageUpload{MIMEType: mimeType, Data: data}, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageBytes+1))
}

func writeUploadError(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, errNoImage):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("No image uploaded"))
	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(serverutils.ErrorResponse(fiberErr.Message))
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Could not read uploaded image"))
	}
}
