package services

import (
	"testing"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupDatabase(t *testing.T) {
	t.Helper()

	viper.Set("language.detect", false)
	viper.Set("security.bcrypt_cost", bcrypt.MinCost)

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	t.Cleanup(func() {
		if raw, err := db.DB(); err == nil {
			_ = raw.Close()
		}
	})
}

func newAccount(t *testing.T, username string) models.Account {
	t.Helper()
	account, err := RegisterAccount(username, "correct-horse")
	require.NoError(t, err)
	return account
}

func newCategory(t *testing.T, slug string, published bool) models.Category {
	t.Helper()
	category, err := NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: published},
		Title:            "Category " + slug,
		Description:      "About " + slug,
		Slug:             slug,
	})
	require.NoError(t, err)
	return category
}

func newLocation(t *testing.T, name string, published bool) models.Location {
	t.Helper()
	location, err := NewLocation(models.Location{
		PublishableModel: models.PublishableModel{IsPublished: published},
		Name:             name,
	})
	require.NoError(t, err)
	return location
}

type postOption func(item *models.Post)

func withCategory(category models.Category) postOption {
	return func(item *models.Post) {
		item.CategoryID = lo.ToPtr(category.ID)
	}
}

func withLocation(location models.Location) postOption {
	return func(item *models.Post) {
		item.LocationID = lo.ToPtr(location.ID)
	}
}

func withPubDate(date time.Time) postOption {
	return func(item *models.Post) {
		item.PubDate = date
	}
}

func unpublished() postOption {
	return func(item *models.Post) {
		item.IsPublished = false
	}
}

func newPost(t *testing.T, author models.Account, title string, options ...postOption) models.Post {
	t.Helper()
	item := models.Post{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            title,
		Text:             "Text of " + title,
		PubDate:          time.Now().Add(-time.Hour),
	}
	for _, option := range options {
		option(&item)
	}
	post, err := NewPost(author, item)
	require.NoError(t, err)
	return post
}
