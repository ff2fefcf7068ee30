package api

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// listUserPost is the profile page. The owner also sees drafts and
// scheduled posts.
func listUserPost(c *fiber.Ctx) error {
	account, err := services.GetAccountByName(exts.PathParam(c, "username"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	tx := services.FilterPostWithAuthor(database.C, account.ID)
	if user := exts.GetCurrentUser(c); user == nil || user.ID != account.ID {
		tx = services.FilterPostPublished(tx, time.Now())
	}

	resp, err := listPostPage(c, tx)
	if err != nil {
		return err
	}
	resp["profile"] = account

	return c.JSON(resp)
}

func getProfileForm(c *fiber.Ctx) error {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return exts.ApplyDecision(c, decision)
	}

	return c.JSON(fiber.Map{
		"form": fiber.Map{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		},
		"csrf_token": csrfToken(c),
	})
}

// editProfile always edits the signed in account, the path username only
// decides where to go afterwards.
func editProfile(c *fiber.Ctx) error {
	user, decision := exts.EnsureAuthenticated(c)
	if !decision.Allowed {
		return exts.ApplyDecision(c, decision)
	}

	var data profileForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.EditProfile(user, data.FirstName, data.LastName, data.Email); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(exts.ProfileURL(exts.PathParam(c, "username")), fiber.StatusFound)
}
