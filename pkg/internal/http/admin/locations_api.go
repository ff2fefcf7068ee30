package admin

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type locationForm struct {
	Name        string `json:"name" form:"name" validate:"required,max=256"`
	IsPublished bool   `json:"is_published" form:"is_published"`
}

func getLocationParam(c *fiber.Ctx) (models.Location, error) {
	id, _ := c.ParamsInt("id", 0)
	item, err := services.GetLocationWithID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, fiber.NewError(fiber.StatusNotFound, "location not found")
	} else if err != nil {
		return item, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return item, nil
}

func getAdminLocation(c *fiber.Ctx) error {
	item, err := getLocationParam(c)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func createAdminLocation(c *fiber.Ctx) error {
	var data locationForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewLocation(models.Location{
		PublishableModel: models.PublishableModel{IsPublished: data.IsPublished},
		Name:             data.Name,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editAdminLocation(c *fiber.Ctx) error {
	item, err := getLocationParam(c)
	if err != nil {
		return err
	}

	var data locationForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item.Name = data.Name
	item.IsPublished = data.IsPublished

	if item, err = services.EditLocation(item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deleteAdminLocation(c *fiber.Ctx) error {
	item, err := getLocationParam(c)
	if err != nil {
		return err
	}

	if err := services.DeleteLocation(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
