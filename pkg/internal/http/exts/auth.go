package exts

import (
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/cache"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const sessionAccountKey = "account_id"

var Sessions *session.Store

func NewSessionStore() *session.Store {
	ttl := viper.GetDuration("security.session_ttl")
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	return session.New(session.Config{
		Storage:        cache.NewSessionStorage("session"),
		Expiration:     ttl,
		KeyLookup:      "cookie:session_id",
		CookieSecure:   viper.GetBool("security.cookie_secure"),
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ContextUser loads the signed in account into c.Locals("user").
func ContextUser(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		log.Warn().Err(err).Msg("Unable to load session...")
		return c.Next()
	}

	if id, ok := sess.Get(sessionAccountKey).(uint); ok {
		if account, err := services.GetCachedAccount(id); err == nil && account.IsActive {
			c.Locals("user", account)
		}
	}

	return c.Next()
}

func GetCurrentUser(c *fiber.Ctx) *models.Account {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user
	}
	return nil
}

func SignIn(c *fiber.Ctx, account models.Account) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := sess.Regenerate(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	sess.Set(sessionAccountKey, account.ID)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("user", account)
	return nil
}

func SignOut(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := sess.Destroy(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("user", nil)
	return nil
}

// EnsureAuthenticated returns the signed in account, or a decision sending
// the actor to the sign-in page with the current path as next.
func EnsureAuthenticated(c *fiber.Ctx) (models.Account, services.Decision) {
	user := GetCurrentUser(c)
	decision := services.EnsureAuthenticated(user, SignInURL(c.OriginalURL()))
	if !decision.Allowed {
		return models.Account{}, decision
	}
	return *user, decision
}

// EnsureStaff guards the back office. Anonymous actors are sent to sign in,
// signed in actors without the staff flag get a 403.
func EnsureStaff(c *fiber.Ctx) error {
	user, decision := EnsureAuthenticated(c)
	if !decision.Allowed {
		return ApplyDecision(c, decision)
	}
	if !user.IsStaff {
		return fiber.NewError(fiber.StatusForbidden, "you do not have permission to access this page")
	}
	return c.Next()
}

func ApplyDecision(c *fiber.Ctx, decision services.Decision) error {
	return c.Redirect(decision.RedirectTo, fiber.StatusFound)
}
