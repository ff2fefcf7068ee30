package services

import (
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const PostDefaultOrder = "pub_date DESC, id DESC"

// FilterPostPublished keeps the posts anyone may read: published, scheduled
// at or before date, and either uncategorized or in a published category.
func FilterPostPublished(tx *gorm.DB, date time.Time) *gorm.DB {
	publishedCategories := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Category{}).
		Select("id").
		Where("is_published = ?", true)

	return tx.
		Where("is_published = ? AND pub_date <= ?", true, date.UTC()).
		Where("(category_id IS NULL OR category_id IN (?))", publishedCategories)
}

func FilterPostWithAuthor(tx *gorm.DB, uid uint) *gorm.DB {
	return tx.Where("author_id = ?", uid)
}

func FilterPostWithCategory(tx *gorm.DB, id uint) *gorm.DB {
	return tx.Where("category_id = ?", id)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

// GetReadablePost resolves a post for the given reader. Authors always get
// their own posts back, everyone else only sees published ones.
func GetReadablePost(id uint, reader *models.Account) (models.Post, error) {
	item, err := GetPost(database.C, id)
	if err != nil {
		return item, err
	}
	if reader != nil && reader.ID == item.AuthorID {
		return item, nil
	}

	return GetPost(FilterPostPublished(database.C, time.Now()), id)
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Session(&gorm.Session{}).
		Model(&models.Post{}).
		Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int) ([]*models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Post
	if err := PreloadGeneral(tx.Session(&gorm.Session{})).
		Limit(take).Offset(offset).
		Order(PostDefaultOrder).
		Find(&items).Error; err != nil {
		return items, err
	}

	if len(items) == 0 {
		return items, nil
	}

	idx := lo.Map(items, func(item *models.Post, index int) uint {
		return item.ID
	})

	var counts []struct {
		PostID uint
		Count  int64
	}
	if err := database.C.Model(&models.Comment{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", idx).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return items, err
	}

	itemMap := lo.SliceToMap(items, func(item *models.Post) (uint, *models.Post) {
		return item.ID, item
	})
	for _, info := range counts {
		if post, ok := itemMap[info.PostID]; ok {
			post.CommentCount = info.Count
		}
	}

	return items, nil
}

func NewPost(user models.Account, item models.Post) (models.Post, error) {
	if len(item.Title) == 0 {
		return item, fmt.Errorf("post title cannot be empty")
	}
	if item.PubDate.IsZero() {
		item.PubDate = time.Now()
	}

	item.ID = 0
	item.AuthorID = user.ID
	item.PubDate = item.PubDate.UTC()
	item.Language = DetectLanguage(item.Text)

	log.Debug().Uint("author", user.ID).Msg("Saving post record into database...")
	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func EditPost(item models.Post) (models.Post, error) {
	if len(item.Title) == 0 {
		return item, fmt.Errorf("post title cannot be empty")
	}

	item.PubDate = item.PubDate.UTC()
	item.Language = DetectLanguage(item.Text)

	// Save writes the pointer columns too, so clearing a location or image sticks.
	err := database.C.Omit(clause.Associations).Save(&item).Error

	return item, err
}

func DeletePost(item models.Post) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, item.ID).Error
	})
}
