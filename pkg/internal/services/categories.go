package services

import (
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"gorm.io/gorm"
)

func ListCategory() ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Order("title ASC").Find(&categories).Error

	return categories, err
}

// GetCategory looks a category up by its slug. Unpublished categories are
// reported as missing.
func GetCategory(slug string) (models.Category, error) {
	var category models.Category
	if err := database.C.
		Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func GetCategoryWithID(id uint) (models.Category, error) {
	var category models.Category
	if err := database.C.Where("id = ?", id).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func NewCategory(category models.Category) (models.Category, error) {
	category.ID = 0
	err := database.C.Create(&category).Error

	return category, err
}

func EditCategory(category models.Category) (models.Category, error) {
	err := database.C.Save(&category).Error

	return category, err
}

func DeleteCategory(category models.Category) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, category.ID).Error
	})
}

func ListLocation() ([]models.Location, error) {
	var locations []models.Location
	err := database.C.Order("name ASC").Find(&locations).Error

	return locations, err
}

func GetLocationWithID(id uint) (models.Location, error) {
	var location models.Location
	if err := database.C.Where("id = ?", id).First(&location).Error; err != nil {
		return location, err
	}
	return location, nil
}

func NewLocation(location models.Location) (models.Location, error) {
	location.ID = 0
	err := database.C.Create(&location).Error

	return location, err
}

func EditLocation(location models.Location) (models.Location, error) {
	err := database.C.Save(&location).Error

	return location, err
}

func DeleteLocation(location models.Location) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("location_id = ?", location.ID).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, location.ID).Error
	})
}
