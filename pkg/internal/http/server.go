package http

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/cache"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/admin"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type HTTPApp struct {
	app *fiber.App
}

func NewServer() *HTTPApp {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Blogicum",
		AppName:               "Blogicum",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             16 * 1024 * 1024,
		ErrorHandler:          exts.ErrorHandler,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: viper.GetBool("debug.enabled"),
	}))

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	exts.Sessions = exts.NewSessionStore()

	if viper.GetBool("security.csrf") {
		app.Use(csrf.New(csrf.Config{
			Extractor:      csrfExtractor,
			CookieName:     "csrftoken",
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			CookieSecure:   viper.GetBool("security.cookie_secure"),
			Storage:        cache.NewSessionStorage("csrf"),
			ContextKey:     "csrf",
		}))
	}

	app.Use(exts.ContextUser)

	app.Static(mediaPrefix(), services.MediaRoot())

	admin.MapControllers(app, "/admin")
	api.MapControllers(app, "/")

	return &HTTPApp{app}
}

func mediaPrefix() string {
	prefix := viper.GetString("media.url")
	if len(prefix) == 0 {
		prefix = "/media"
	}
	return strings.TrimRight(prefix, "/")
}

// csrfExtractor reads the token from the X-CSRFToken header or the
// csrfmiddlewaretoken form field.
func csrfExtractor(c *fiber.Ctx) (string, error) {
	if token := c.Get("X-CSRFToken"); len(token) > 0 {
		return token, nil
	}
	if token := c.FormValue("csrfmiddlewaretoken"); len(token) > 0 {
		return token, nil
	}
	return "", errors.New("missing csrf token")
}

func (v *HTTPApp) App() *fiber.App {
	return v.app
}

func (v *HTTPApp) Listen() {
	bind := viper.GetString("bind")
	if len(bind) == 0 {
		bind = "0.0.0.0:8445"
	}
	if err := v.app.Listen(bind); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
