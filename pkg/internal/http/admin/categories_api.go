package admin

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type categoryForm struct {
	Title       string `json:"title" form:"title" validate:"required,max=256"`
	Description string `json:"description" form:"description" validate:"required"`
	Slug        string `json:"slug" form:"slug" validate:"required,max=64,slug"`
	IsPublished bool   `json:"is_published" form:"is_published"`
}

func getCategoryParam(c *fiber.Ctx) (models.Category, error) {
	id, _ := c.ParamsInt("id", 0)
	item, err := services.GetCategoryWithID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, fiber.NewError(fiber.StatusNotFound, "category not found")
	} else if err != nil {
		return item, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return item, nil
}

func getAdminCategory(c *fiber.Ctx) error {
	item, err := getCategoryParam(c)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func createAdminCategory(c *fiber.Ctx) error {
	var data categoryForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: data.IsPublished},
		Title:            data.Title,
		Description:      data.Description,
		Slug:             data.Slug,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editAdminCategory(c *fiber.Ctx) error {
	item, err := getCategoryParam(c)
	if err != nil {
		return err
	}

	var data categoryForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item.Title = data.Title
	item.Description = data.Description
	item.Slug = data.Slug
	item.IsPublished = data.IsPublished

	if item, err = services.EditCategory(item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deleteAdminCategory(c *fiber.Ctx) error {
	item, err := getCategoryParam(c)
	if err != nil {
		return err
	}

	if err := services.DeleteCategory(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
