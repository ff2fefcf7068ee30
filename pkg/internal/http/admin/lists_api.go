package admin

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func listAdminRows[T any](list services.AdminList[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := make(map[string]string)
		for _, name := range list.Filters {
			filters[name] = c.Query(name)
		}

		tx := list.Query(database.C, c.Query("q"), filters)

		count, err := list.Count(tx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		pagination, err := exts.GetPage(c, count, list.PerPage)
		if err != nil {
			return err
		}

		items, err := list.List(tx, pagination.PageSize, pagination.Offset())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"list":       list.Describe(),
			"count":      count,
			"pagination": pagination,
			"data":       list.Rows(items),
		})
	}
}

func editAdminRow[T any](list services.AdminList[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id", 0)

		data := make(map[string]any)
		if c.Is("json") {
			if err := c.BodyParser(&data); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		} else {
			c.Request().PostArgs().VisitAll(func(key, value []byte) {
				if name := string(key); name != "csrfmiddlewaretoken" {
					data[name] = string(value)
				}
			})
		}

		if err := list.ApplyEdit(database.C, uint(id), data); errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "record not found")
		} else if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.SendStatus(fiber.StatusOK)
	}
}
