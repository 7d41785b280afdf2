package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/serverutils"
	"github.com/yamanekazuki/hr-qa-assistant/internal/service"
)

type IOAuthController interface {
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type oauthController struct {
	oauthService service.IOAuthService
	clientURL    string
}

func NewOAuthController(oauthService service.IOAuthService, clientURL string) IOAuthController {
	return &oauthController{oauthService: oauthService, clientURL: clientURL}
}

// GoogleLogin redirects the browser to Google's consent screen. The state
// value is a throwaway nonce; the short-lived code exchange is the actual
// protection here.
func (c *oauthController) GoogleLogin(ctx *fiber.Ctx) error {
	state := uuid.NewString()
	ctx.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return ctx.Redirect(c.oauthService.AuthURL(state), fiber.StatusTemporaryRedirect)
}

func (c *oauthController) GoogleCallback(ctx *fiber.Ctx) error {
	if state := ctx.Query("state"); state == "" || state != ctx.Cookies("oauth_state") {
		return fiber.NewError(fiber.StatusUnauthorized, "state mismatch")
	}
	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing authorization code")
	}

	login, err := c.oauthService.HandleCallback(ctx.Context(), code)
	if err != nil {
		return err
	}

	return ctx.Redirect(fmt.Sprintf("%s/auth/callback?token=%s", c.clientURL, login.AccessToken), fiber.StatusTemporaryRedirect)
}

func (c *oauthController) Me(ctx *fiber.Ctx) error {
	email, _ := ctx.Locals("email").(string)
	if email == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	me, err := c.oauthService.Me(ctx.Context(), email)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current user", me))
}
