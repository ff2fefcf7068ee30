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

// listPostPage counts and lists one page of tx, the shared body of every
// post listing.
func listPostPage(c *fiber.Ctx, tx *gorm.DB) (fiber.Map, error) {
	count, err := services.CountPost(tx)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pagination, err := exts.GetPage(c, count, exts.PageSize())
	if err != nil {
		return nil, err
	}

	items, err := services.ListPost(tx, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return fiber.Map{
		"count":      count,
		"pagination": pagination,
		"data":       items,
	}, nil
}

func listPost(c *fiber.Ctx) error {
	tx := services.FilterPostPublished(database.C, time.Now())

	resp, err := listPostPage(c, tx)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func getPostParam(c *fiber.Ctx) (models.Post, error) {
	id, _ := c.ParamsInt("postId", 0)
	item, err := services.GetPost(database.C, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, fiber.NewError(fiber.StatusNotFound, "post not found")
	} else if err != nil {
		return item, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return item, nil
}

func getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetReadablePost(uint(id), exts.GetCurrentUser(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	count, err := services.CountComment(item.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	item.CommentCount = count

	pagination, err := exts.GetPage(c, count, exts.PageSize())
	if err != nil {
		return err
	}

	comments, err := services.ListComment(item.ID, pagination.PageSize, pagination.Offset())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"post": item,
		"comments": fiber.Map{
			"count":      count,
			"pagination": pagination,
			"data":       comments,
		},
		"form":       fiber.Map{"text": ""},
		"csrf_token": csrfToken(c),
	})
}

func getPostForm(c *fiber.Ctx) error {
	if _, decision := exts.EnsureAuthenticated(c); !decision.Allowed {
		return exts.ApplyDecision(c, decision)
	}

	choices, err := postFormChoices()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"form":       postFormInitial(nil),
		"choices":    choices,
		"csrf_token": csrfToken(c),
	})
}

func createPost(c *fiber.Ctx) error {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return exts.ApplyDecision(c, decision)
	}

	var data postForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var item models.Post
	if err := data.apply(&item); err != nil {
		return err
	}
	if err := saveImage(c, &item); err != nil {
		return err
	}

	if _, err := services.NewPost(user, item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(exts.ProfileURL(user.Username), fiber.StatusFound)
}

// guardPostOwner runs the authentication gate, the lookup and the ownership
// gate in that order. A nil post with a nil error means the actor has
// already been redirected.
func guardPostOwner(c *fiber.Ctx) (*models.Account, *models.Post, error) {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return nil, nil, exts.ApplyDecision(c, decision)
	}

	item, err := getPostParam(c)
	if err != nil {
		return nil, nil, err
	}

	if decision := services.EnsureOwner(&user, item.AuthorID, exts.PostURL(item.ID)); !decision.Allowed {
		return nil, nil, exts.ApplyDecision(c, decision)
	}

	return &user, &item, nil
}

func getPostEditForm(c *fiber.Ctx) error {
	_, item, err := guardPostOwner(c)
	if item == nil {
		return err
	}

	choices, err := postFormChoices()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"post":       item,
		"form":       postFormInitial(item),
		"choices":    choices,
		"csrf_token": csrfToken(c),
	})
}

func editPost(c *fiber.Ctx) error {
	user, item, err := guardPostOwner(c)
	if item == nil {
		return err
	}

	var data postForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := data.apply(item); err != nil {
		return err
	}
	if parseFormBool(data.ImageClear) {
		item.Image = nil
	}
	if err := saveImage(c, item); err != nil {
		return err
	}

	if _, err := services.EditPost(*item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(exts.ProfileURL(user.Username), fiber.StatusFound)
}

func getPostDeleteForm(c *fiber.Ctx) error {
	_, item, err := guardPostOwner(c)
	if item == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"post":       item,
		"form":       postFormInitial(item),
		"csrf_token": csrfToken(c),
	})
}

func deletePost(c *fiber.Ctx) error {
	user, item, err := guardPostOwner(c)
	if item == nil {
		return err
	}

	if err := services.DeletePost(*item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(exts.ProfileURL(user.Username), fiber.StatusFound)
}
