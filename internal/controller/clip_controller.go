package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
)

type ClipController struct {
	clipService service.IClipService
}

func NewClipController(clipService service.IClipService) *ClipController {
	return &ClipController{clipService: clipService}
}

func (c *ClipController) RegisterRoutes(r fiber.Router) {
	clips := r.Group("/clips", serverutils.JwtMiddleware)
	clips.Get("/", c.List)
	clips.Post("/", c.Create)
	clips.Delete("/:id", c.Delete)
}

func (c *ClipController) List(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	clips, err := c.clipService.List(ctx.Context(), userID)
	if err != nil {
		return err
	}

	items := make([]dto.ClipItem, 0, len(clips))
	for _, cl := range clips {
		items = append(items, dto.ClipItem{
			Id:        cl.Id,
			Url:       cl.Url,
			Title:     cl.Title,
			Note:      cl.Note,
			CreatedAt: cl.CreatedAt,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("clips retrieved", items))
}

func (c *ClipController) Create(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateClipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	clip, err := c.clipService.Create(ctx.Context(), userID, req.Url, req.Title, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrEmptyURL) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("clip created", dto.CreateClipResponse{Id: clip.Id}))
}

func (c *ClipController) Delete(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	clipID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid clip id"))
	}

	if err := c.clipService.Delete(ctx.Context(), userID, clipID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("clip deleted", nil))
}
