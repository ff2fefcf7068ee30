package exts

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func PageSize() int {
	if size := viper.GetInt("blog.page_size"); size > 0 {
		return size
	}
	return 10
}

// GetPage resolves the page query parameter, missing pages become a 404.
func GetPage(c *fiber.Ctx, count int64, size int) (services.Pagination, error) {
	pagination, err := services.NewPagination(count, c.Query("page"), size)
	if errors.Is(err, services.ErrInvalidPage) {
		return pagination, fiber.NewError(fiber.StatusNotFound, "invalid page")
	}
	return pagination, err
}
