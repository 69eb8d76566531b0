package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
)

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) RegisterRoutes(r fiber.Router) {
	users := r.Group("/users", serverutils.JwtMiddleware)
	users.Get("/me", c.Me)
	users.Put("/me", c.UpdateProfile)
}

// Me tells a reconnecting client who it is. The frontend polls this
// on load to decide between the dashboard and the login page.
func (c *UserController) Me(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	profile, err := c.userService.GetProfile(ctx.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "account no longer exists"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("profile retrieved", profile))
}

func (c *UserController) UpdateProfile(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	profile, err := c.userService.UpdateProfile(ctx.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "user not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("profile updated", profile))
}
