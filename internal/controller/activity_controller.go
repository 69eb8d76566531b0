package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
)

type ActivityController struct {
	activityService service.IActivityService
}

func NewActivityController(activityService service.IActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

func (c *ActivityController) RegisterRoutes(r fiber.Router) {
	activities := r.Group("/activities", serverutils.JwtMiddleware)
	activities.Get("/", c.List)
	activities.Get("/unread-count", c.UnreadCount)
	activities.Post("/:id/read", c.MarkRead)
	activities.Post("/read-all", c.MarkAllRead)
}

func (c *ActivityController) List(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	resp, err := c.activityService.List(ctx.Context(), userID, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("activities retrieved", resp))
}

func (c *ActivityController) UnreadCount(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	count, err := c.activityService.UnreadCount(ctx.Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("unread count retrieved", fiber.Map{"count": count}))
}

func (c *ActivityController) MarkRead(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid activity id"))
	}

	if err := c.activityService.MarkRead(ctx.Context(), userID, activityID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("activity marked read", nil))
}

func (c *ActivityController) MarkAllRead(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := c.activityService.MarkAllRead(ctx.Context(), userID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("all activities marked read", nil))
}
