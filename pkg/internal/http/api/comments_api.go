package api

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// createComment only accepts posts everyone can read, authors included.
func createComment(c *fiber.Ctx) error {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return exts.ApplyDecision(c, decision)
	}

	id, _ := c.ParamsInt("postId", 0)
	post, err := services.GetPost(services.FilterPostPublished(database.C, time.Now()), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var data commentForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.NewComment(user, post, data.Text); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(exts.PostURL(post.ID), fiber.StatusFound)
}

func guardCommentOwner(c *fiber.Ctx) (*models.Comment, error) {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return nil, exts.ApplyDecision(c, decision)
	}

	postId, _ := c.ParamsInt("postId", 0)
	commentId, _ := c.ParamsInt("commentId", 0)

	item, err := services.GetComment(uint(postId), uint(commentId))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "comment not found")
	} else if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if decision := services.EnsureOwner(&user, item.AuthorID, exts.PostURL(uint(postId))); !decision.Allowed {
		return nil, exts.ApplyDecision(c, decision)
	}

	return &item, nil
}

func getCommentForm(c *fiber.Ctx) error {
	item, err := guardCommentOwner(c)
	if item == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"comment":    item,
		"form":       fiber.Map{"text": item.Text},
		"csrf_token": csrfToken(c),
	})
}

func editComment(c *fiber.Ctx) error {
	item, err := guardCommentOwner(c)
	if item == nil {
		return err
	}

	var data commentForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item.Text = data.Text
	if _, err := services.EditComment(*item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(exts.PostURL(item.PostID), fiber.StatusFound)
}

func getCommentDeleteForm(c *fiber.Ctx) error {
	item, err := guardCommentOwner(c)
	if item == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"comment":    item,
		"csrf_token": csrfToken(c),
	})
}

func deleteComment(c *fiber.Ctx) error {
	item, err := guardCommentOwner(c)
	if item == nil {
		return err
	}

	if err := services.DeleteComment(*item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(exts.PostURL(item.PostID), fiber.StatusFound)
}
