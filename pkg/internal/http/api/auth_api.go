package api

import (
	"errors"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getRegistrationForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": fiber.Map{
			"username":  "",
			"password1": "",
			"password2": "",
		},
		"csrf_token": csrfToken(c),
	})
}

func doRegister(c *fiber.Ctx) error {
	var data struct {
		Username  string `json:"username" form:"username" validate:"required,max=150,username"`
		Password1 string `json:"password1" form:"password1" validate:"required"`
		Password2 string `json:"password2" form:"password2" validate:"required,eqfield=Password1"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.RegisterAccount(data.Username, data.Password1); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(exts.IndexURL(), fiber.StatusFound)
}

func getSignInForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": fiber.Map{
			"username": "",
			"password": "",
		},
		"next":       c.Query("next"),
		"csrf_token": csrfToken(c),
	})
}

func doSignIn(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
		Next     string `json:"next" form:"next"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.Authenticate(data.Username, data.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := exts.SignIn(c, account); err != nil {
		return err
	}

	next := data.Next
	if len(next) == 0 {
		next = c.Query("next")
	}

	return c.Redirect(exts.SafeNext(next), fiber.StatusFound)
}

func doSignOut(c *fiber.Ctx) error {
	if err := exts.SignOut(c); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"signed_out": true,
	})
}
