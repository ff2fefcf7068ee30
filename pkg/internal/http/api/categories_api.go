package api

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func listCategoryPost(c *fiber.Ctx) error {
	category, err := services.GetCategory(exts.PathParam(c, "slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	tx := services.FilterPostPublished(database.C, time.Now())
	tx = services.FilterPostWithCategory(tx, category.ID)

	resp, err := listPostPage(c, tx)
	if err != nil {
		return err
	}
	resp["category"] = category

	return c.JSON(resp)
}
