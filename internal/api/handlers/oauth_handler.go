package handlers

import (
	"net/url"
	"strings"
	"time"

	"volunteerhub-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

const (
	oauthNonceCookie = "vh_oauth_nonce"
	oauthNonceTTL    = 10 * time.Minute
)

type (
	OAuthHandler interface {
		Redirect(provider string) fiber.Handler
		Callback(provider string) fiber.Handler
		Failure(c *fiber.Ctx) error
	}

	oauthHandler struct {
		oauthService user.OAuthService
		frontendURL  string
	}
)

func NewOAuthHandler(oauthService user.OAuthService, frontendURL string) OAuthHandler {
	return &oauthHandler{
		oauthService: oauthService,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
	}
}

func (h *oauthHandler) Redirect(provider string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, nonce, err := h.oauthService.Begin(provider)
		if err != nil {
			return h.fail(c, "oauth_unavailable")
		}
		c.Cookie(&fiber.Cookie{
			Name:     oauthNonceCookie,
			Value:    nonce,
			Path:     "/api/auth",
			Expires:  time.Now().Add(oauthNonceTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(target, fiber.StatusTemporaryRedirect)
	}
}

func (h *oauthHandler) Callback(provider string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nonce := c.Cookies(oauthNonceCookie)
		c.ClearCookie(oauthNonceCookie)

		if c.Query("error") != "" || c.Query("code") == "" {
			return h.fail(c, "oauth_failed")
		}

		res, err := h.oauthService.Complete(c.UserContext(), provider, c.Query("code"), c.Query("state"), nonce)
		if err != nil {
			return h.fail(c, "oauth_failed")
		}

		return c.Redirect(h.frontendURL+"/auth/callback?token="+url.QueryEscape(res.Token), fiber.StatusTemporaryRedirect)
	}
}

func (h *oauthHandler) Failure(c *fiber.Ctx) error {
	return h.fail(c, "oauth_failed")
}

func (h *oauthHandler) fail(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.frontendURL+"/login?error="+url.QueryEscape(reason), fiber.StatusTemporaryRedirect)
}
