package exts

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// PathParam returns a route parameter with percent-encoding removed.
func PathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if val, err := url.PathUnescape(raw); err == nil {
		return val
	}
	return raw
}

func IndexURL() string {
	return "/"
}

func PostURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func ProfileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", url.PathEscape(username))
}

func SignInURL(next string) string {
	if len(next) == 0 {
		return "/auth/login/"
	}
	return "/auth/login/?next=" + url.QueryEscape(next)
}

// SafeNext keeps redirects after sign in on this site.
func SafeNext(next string) string {
	parsed, err := url.Parse(next)
	if err != nil || len(next) == 0 || parsed.IsAbs() || len(parsed.Host) > 0 || next[0] != '/' {
		return IndexURL()
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return IndexURL()
	}
	return next
}
