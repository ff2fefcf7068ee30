package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"gorm.io/gorm/clause"
)

const CommentDefaultOrder = "created_at ASC, id ASC"

func GetComment(postId, id uint) (models.Comment, error) {
	var item models.Comment
	if err := database.C.
		Preload("Author").
		Where("id = ? AND post_id = ?", id, postId).
		First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func CountComment(postId uint) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", postId).
		Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListComment(postId uint, take int, offset int) ([]models.Comment, error) {
	var items []models.Comment
	if err := database.C.
		Preload("Author").
		Where("post_id = ?", postId).
		Limit(take).Offset(offset).
		Order(CommentDefaultOrder).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

func NewComment(user models.Account, post models.Post, text string) (models.Comment, error) {
	if len(text) == 0 {
		return models.Comment{}, fmt.Errorf("comment cannot be empty")
	}

	item := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func EditComment(item models.Comment) (models.Comment, error) {
	if len(item.Text) == 0 {
		return item, fmt.Errorf("comment cannot be empty")
	}
	err := database.C.Omit(clause.Associations).Save(&item).Error
	return item, err
}

func DeleteComment(item models.Comment) error {
	return database.C.Delete(&models.Comment{}, item.ID).Error
}
