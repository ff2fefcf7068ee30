package admin

import (
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL, exts.EnsureStaff).Name("Admin")
	{
		admin.Get("/", getAdminIndex)

		posts := admin.Group("/posts")
		{
			posts.Get("/", listAdminRows(services.AdminPosts))
			posts.Patch("/:id<int>/", editAdminRow(services.AdminPosts))
			posts.Post("/:id<int>/", editAdminRow(services.AdminPosts))
			posts.Post("/:id<int>/delete/", deleteAdminPost)
		}

		categories := admin.Group("/categories")
		{
			categories.Get("/", listAdminRows(services.AdminCategories))
			categories.Post("/", createAdminCategory)
			categories.Get("/:id<int>/", getAdminCategory)
			categories.Patch("/:id<int>/", editAdminRow(services.AdminCategories))
			categories.Put("/:id<int>/", editAdminCategory)
			categories.Post("/:id<int>/delete/", deleteAdminCategory)
		}

		locations := admin.Group("/locations")
		{
			locations.Get("/", listAdminRows(services.AdminLocations))
			locations.Post("/", createAdminLocation)
			locations.Get("/:id<int>/", getAdminLocation)
			locations.Patch("/:id<int>/", editAdminRow(services.AdminLocations))
			locations.Put("/:id<int>/", editAdminLocation)
			locations.Post("/:id<int>/delete/", deleteAdminLocation)
		}

		comments := admin.Group("/comments")
		{
			comments.Get("/", listAdminRows(services.AdminComments))
			comments.Post("/:id<int>/delete/", deleteAdminComment)
		}

		users := admin.Group("/users")
		{
			users.Get("/", listAdminRows(services.AdminAccounts))
			users.Post("/:id<int>/delete/", deleteAdminAccount)
		}
	}
}

func getAdminIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": []services.AdminDescriptor{
			services.AdminPosts.Describe(),
			services.AdminCategories.Describe(),
			services.AdminLocations.Describe(),
			services.AdminComments.Describe(),
			services.AdminAccounts.Describe(),
		},
	})
}
