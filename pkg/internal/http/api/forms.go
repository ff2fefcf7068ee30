package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const dateTimeLocalLayout = "2006-01-02T15:04"

// formValue is a form field that JSON bodies may send as a string, number,
// boolean or null, the same shapes the form initial values come in.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case nil:
		*v = ""
	case string:
		*v = formValue(val)
	case bool:
		*v = formValue(strconv.FormatBool(val))
	case float64:
		*v = formValue(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("unexpected value %s", data)
	}
	return nil
}

func (v formValue) String() string {
	return string(v)
}

type postForm struct {
	Title       string    `json:"title" form:"title" validate:"required,max=256"`
	Text        string    `json:"text" form:"text" validate:"required"`
	PubDate     formValue `json:"pub_date" form:"pub_date"`
	Category    formValue `json:"category" form:"category" validate:"required"`
	Location    formValue `json:"location" form:"location"`
	IsPublished formValue `json:"is_published" form:"is_published"`
	ImageClear  formValue `json:"image-clear" form:"image-clear"`
}

type commentForm struct {
	Text string `json:"text" form:"text" validate:"required"`
}

type profileForm struct {
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
	Email     string `json:"email" form:"email" validate:"omitempty,email,max=254"`
}

func parseFormBool(val formValue) bool {
	switch strings.ToLower(strings.TrimSpace(val.String())) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func parseFormID(raw formValue) (*uint, error) {
	val := strings.TrimSpace(raw.String())
	if len(val) == 0 {
		return nil, nil
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return nil, errors.New("select a valid choice")
	}
	return lo.ToPtr(uint(id)), nil
}

// apply copies the submitted fields onto item. The image is handled by the
// caller because it comes from the multipart body.
func (v postForm) apply(item *models.Post) error {
	item.Title = v.Title
	item.Text = v.Text
	item.IsPublished = parseFormBool(v.IsPublished)

	if len(strings.TrimSpace(v.PubDate.String())) == 0 {
		item.PubDate = time.Now()
	} else if date, err := services.ParseDateTime(v.PubDate.String()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		item.PubDate = date
	}

	categoryId, err := parseFormID(v.Category)
	if err != nil || categoryId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "category: select a valid choice")
	}
	if _, err := services.GetCategoryWithID(*categoryId); err != nil {
		return lookupChoiceError("category", err)
	}
	item.CategoryID = categoryId
	item.Category = nil

	locationId, err := parseFormID(v.Location)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "location: select a valid choice")
	}
	if locationId != nil {
		if _, err := services.GetLocationWithID(*locationId); err != nil {
			return lookupChoiceError("location", err)
		}
	}
	item.LocationID = locationId
	item.Location = nil

	return nil
}

func lookupChoiceError(field string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, field+": select a valid choice")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

func postFormInitial(item *models.Post) fiber.Map {
	if item == nil {
		return fiber.Map{
			"title":        "",
			"text":         "",
			"pub_date":     time.Now().UTC().Format(dateTimeLocalLayout),
			"category":     nil,
			"location":     nil,
			"is_published": true,
			"image":        nil,
		}
	}
	return fiber.Map{
		"title":        item.Title,
		"text":         item.Text,
		"pub_date":     item.PubDate.UTC().Format(dateTimeLocalLayout),
		"category":     item.CategoryID,
		"location":     item.LocationID,
		"is_published": item.IsPublished,
		"image":        imageURL(item.Image),
	}
}

func postFormChoices() (fiber.Map, error) {
	categories, err := services.ListCategory()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	locations, err := services.ListLocation()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return fiber.Map{
		"category": categories,
		"location": locations,
	}, nil
}

func imageURL(name *string) *string {
	if name == nil || len(*name) == 0 {
		return nil
	}
	return lo.ToPtr(services.MediaURL(*name))
}

// saveImage stores the uploaded image, if any, and points item at it.
func saveImage(c *fiber.Ctx, item *models.Post) error {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}

	name, path, err := services.NewImagePath(file.Filename)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := c.SaveFile(file, path); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	item.Image = &name
	return nil
}

func csrfToken(c *fiber.Ctx) any {
	return c.Locals("csrf")
}
