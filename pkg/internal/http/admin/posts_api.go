package admin

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func deleteAdminPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id", 0)

	item, err := services.GetPost(database.C, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := services.DeletePost(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func deleteAdminComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id", 0)

	var item models.Comment
	if err := database.C.Where("id = ?", id).First(&item).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "comment not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := services.DeleteComment(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
