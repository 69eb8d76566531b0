package controller

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"

	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
)

const oauthStateCookie = "oauth_state"

type OAuthController struct {
	oauthService service.IOAuthService
}

func NewOAuthController(oauthService service.IOAuthService) *OAuthController {
	return &OAuthController{oauthService: oauthService}
}

func (c *OAuthController) RegisterRoutes(r fiber.Router) {
	oauth := r.Group("/auth/google")
	oauth.Get("/login", c.Login)
	oauth.Get("/callback", c.Callback)
}

func (c *OAuthController) Login(ctx *fiber.Ctx) error {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	state := hex.EncodeToString(raw)

	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		MaxAge:   300,
	})

	return ctx.Redirect(c.oauthService.GetLoginURL(state), fiber.StatusTemporaryRedirect)
}

func (c *OAuthController) Callback(ctx *fiber.Ctx) error {
	state := ctx.Query("state")
	if state == "" || state != ctx.Cookies(oauthStateCookie) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid oauth state"))
	}

	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "missing authorization code"))
	}

	resp, err := c.oauthService.HandleCallback(ctx.Context(), code)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "google sign-in failed"))
	}

	ctx.ClearCookie(oauthStateCookie)
	return ctx.JSON(serverutils.SuccessResponse("login successful", resp))
}
