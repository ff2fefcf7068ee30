package api

import "github.com/gofiber/fiber/v2"

func getAboutPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "about",
		"title": "About the project",
	})
}

func getRulesPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "rules",
		"title": "Our rules",
	})
}
