package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	AdminTextThreshold = 50
	AdminPerPage       = 10
)

func TruncateAdminText(content string) string {
	runes := []rune(content)
	if len(runes) > AdminTextThreshold {
		return string(runes[:AdminTextThreshold]) + "..."
	}
	return content
}

type AdminColumn[T any] struct {
	Name   string
	Label  string
	Render func(item T) any
}

// AdminField is a column that can be changed straight from the listing.
type AdminField struct {
	Name   string
	Column string
	Parse  func(raw any) (any, error)
}

type AdminList[T any] struct {
	Name         string
	Columns      []AdminColumn[T]
	Editable     []AdminField
	SearchFields []string
	Filters      []string
	Relations    map[string]any
	Preloads     []string
	Order        string
	PerPage      int
}

type AdminDescriptor struct {
	Name         string   `json:"name"`
	Columns      []string `json:"columns"`
	Labels       []string `json:"labels"`
	Editable     []string `json:"editable"`
	SearchFields []string `json:"search_fields"`
	Filters      []string `json:"filters"`
	PerPage      int      `json:"per_page"`
}

func (v AdminList[T]) Describe() AdminDescriptor {
	return AdminDescriptor{
		Name: v.Name,
		Columns: lo.Map(v.Columns, func(item AdminColumn[T], _ int) string {
			return item.Name
		}),
		Labels: lo.Map(v.Columns, func(item AdminColumn[T], _ int) string {
			return item.Label
		}),
		Editable: lo.Map(v.Editable, func(item AdminField, _ int) string {
			return item.Name
		}),
		SearchFields: v.SearchFields,
		Filters:      v.Filters,
		PerPage:      v.PerPage,
	}
}

// Query applies the search probe over the declared search fields and exact
// matches for the declared filters. Unknown filter keys are ignored.
func (v AdminList[T]) Query(tx *gorm.DB, probe string, filters map[string]string) *gorm.DB {
	tx = tx.Model(new(T))

	if probe = strings.TrimSpace(probe); len(probe) > 0 && len(v.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(probe) + "%"
		group := tx.Session(&gorm.Session{NewDB: true})
		for idx, field := range v.SearchFields {
			var cond *gorm.DB
			if relation, column, ok := strings.Cut(field, "__"); ok {
				related := tx.Session(&gorm.Session{NewDB: true}).
					Model(v.Relations[relation]).
					Select("id").
					Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), pattern)
				cond = tx.Session(&gorm.Session{NewDB: true}).
					Where(fmt.Sprintf("%s_id IN (?)", relation), related)
			} else {
				cond = tx.Session(&gorm.Session{NewDB: true}).
					Where(fmt.Sprintf("LOWER(%s) LIKE ?", field), pattern)
			}
			if idx == 0 {
				group = group.Where(cond)
			} else {
				group = group.Or(cond)
			}
		}
		tx = tx.Where(group)
	}

	for _, name := range v.Filters {
		if value, ok := filters[name]; ok && len(value) > 0 {
			tx = tx.Where(fmt.Sprintf("%s = ?", name), value)
		}
	}

	return tx
}

func (v AdminList[T]) Count(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Session(&gorm.Session{}).Count(&count).Error
	return count, err
}

func (v AdminList[T]) List(tx *gorm.DB, take int, offset int) ([]T, error) {
	tx = tx.Session(&gorm.Session{})
	for _, preload := range v.Preloads {
		tx = tx.Preload(preload)
	}
	if len(v.Order) > 0 {
		tx = tx.Order(v.Order)
	}

	var items []T
	err := tx.Limit(take).Offset(offset).Find(&items).Error
	return items, err
}

func (v AdminList[T]) Rows(items []T) []map[string]any {
	return lo.Map(items, func(item T, _ int) map[string]any {
		row := make(map[string]any, len(v.Columns))
		for _, column := range v.Columns {
			row[column.Name] = column.Render(item)
		}
		return row
	})
}

// ApplyEdit updates the editable columns present in data on the record
// with the given id. Keys that are not declared editable are rejected.
func (v AdminList[T]) ApplyEdit(tx *gorm.DB, id uint, data map[string]any) error {
	item := new(T)
	if err := tx.Where("id = ?", id).First(item).Error; err != nil {
		return err
	}

	updates := make(map[string]any)
	for key, raw := range data {
		field, ok := lo.Find(v.Editable, func(item AdminField) bool {
			return item.Name == key
		})
		if !ok {
			return fmt.Errorf("field %s is not editable", key)
		}
		value, err := field.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %v", key, err)
		}
		updates[field.Column] = value
	}
	if len(updates) == 0 {
		return nil
	}

	return tx.Model(item).Updates(updates).Error
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func ParseAdminBool(raw any) (any, error) {
	switch val := raw.(type) {
	case bool:
		return val, nil
	case string:
		if val == "on" {
			return true, nil
		}
		return strconv.ParseBool(val)
	}
	return nil, fmt.Errorf("expected a boolean")
}

func ParseAdminNullableID(raw any) (any, error) {
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		if val < 1 || val != float64(uint(val)) {
			return nil, fmt.Errorf("expected a positive integer")
		}
		return uint(val), nil
	case string:
		if len(val) == 0 {
			return nil, nil
		}
		id, err := strconv.ParseUint(val, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("expected a positive integer")
		}
		return uint(id), nil
	}
	return nil, fmt.Errorf("expected a positive integer")
}

func ParseAdminTime(raw any) (any, error) {
	val, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a date time string")
	}
	return ParseDateTime(val)
}

func ParseAdminSlug(raw any) (any, error) {
	val, ok := raw.(string)
	if !ok || !slugPattern.MatchString(val) {
		return nil, fmt.Errorf("enter a valid slug consisting of letters, numbers, underscores or hyphens")
	}
	return val, nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts RFC 3339 and the datetime-local input formats.
// Values without an offset are read as UTC.
func ParseDateTime(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, val, time.UTC); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("enter a valid date/time")
}

func renderRelated[T fmt.Stringer](item *T) any {
	if item == nil {
		return nil
	}
	return (*item).String()
}

var AdminPosts = AdminList[models.Post]{
	Name: "posts",
	Columns: []AdminColumn[models.Post]{
		{Name: "title", Label: "Title", Render: func(item models.Post) any { return item.Title }},
		{Name: "text_short", Label: "Text", Render: func(item models.Post) any { return TruncateAdminText(item.Text) }},
		{Name: "location", Label: "Location", Render: func(item models.Post) any { return renderRelated(item.Location) }},
		{Name: "category", Label: "Category", Render: func(item models.Post) any { return renderRelated(item.Category) }},
		{Name: "pub_date", Label: "Publication date", Render: func(item models.Post) any { return item.PubDate }},
		{Name: "is_published", Label: "Published", Render: func(item models.Post) any { return item.IsPublished }},
	},
	Editable: []AdminField{
		{Name: "location", Column: "location_id", Parse: ParseAdminNullableID},
		{Name: "category", Column: "category_id", Parse: ParseAdminNullableID},
		{Name: "pub_date", Column: "pub_date", Parse: ParseAdminTime},
		{Name: "is_published", Column: "is_published", Parse: ParseAdminBool},
	},
	SearchFields: []string{"title", "text", "location__name"},
	Relations: map[string]any{
		"location": &models.Location{},
	},
	Preloads: []string{"Location", "Category"},
	Order:    PostDefaultOrder,
	PerPage:  AdminPerPage,
}

var AdminCategories = AdminList[models.Category]{
	Name: "categories",
	Columns: []AdminColumn[models.Category]{
		{Name: "title", Label: "Title", Render: func(item models.Category) any { return item.Title }},
		{Name: "description_short", Label: "Description", Render: func(item models.Category) any { return TruncateAdminText(item.Description) }},
		{Name: "slug", Label: "Slug", Render: func(item models.Category) any { return item.Slug }},
		{Name: "is_published", Label: "Published", Render: func(item models.Category) any { return item.IsPublished }},
		{Name: "created_at", Label: "Created at", Render: func(item models.Category) any { return item.CreatedAt }},
	},
	Editable: []AdminField{
		{Name: "slug", Column: "slug", Parse: ParseAdminSlug},
	},
	Filters: []string{"title", "description"},
	Order:   "id ASC",
	PerPage: AdminPerPage,
}

var AdminLocations = AdminList[models.Location]{
	Name: "locations",
	Columns: []AdminColumn[models.Location]{
		{Name: "name", Label: "Name", Render: func(item models.Location) any { return item.Name }},
		{Name: "is_published", Label: "Published", Render: func(item models.Location) any { return item.IsPublished }},
		{Name: "created_at", Label: "Created at", Render: func(item models.Location) any { return item.CreatedAt }},
	},
	Editable: []AdminField{
		{Name: "is_published", Column: "is_published", Parse: ParseAdminBool},
	},
	Filters: []string{"name"},
	Order:   "id ASC",
	PerPage: AdminPerPage,
}

var AdminComments = AdminList[models.Comment]{
	Name: "comments",
	Columns: []AdminColumn[models.Comment]{
		{Name: "text", Label: "Text", Render: func(item models.Comment) any { return TruncateAdminText(item.Text) }},
		{Name: "post", Label: "Post", Render: func(item models.Comment) any { return renderRelated(item.Post) }},
		{Name: "author", Label: "Author", Render: func(item models.Comment) any { return item.Author.Username }},
		{Name: "created_at", Label: "Created at", Render: func(item models.Comment) any { return item.CreatedAt }},
	},
	Filters:  []string{"text"},
	Preloads: []string{"Post", "Author"},
	Order:    CommentDefaultOrder,
	PerPage:  AdminPerPage,
}

var AdminAccounts = AdminList[models.Account]{
	Name: "users",
	Columns: []AdminColumn[models.Account]{
		{Name: "username", Label: "Username", Render: func(item models.Account) any { return item.Username }},
		{Name: "email", Label: "Email", Render: func(item models.Account) any { return item.Email }},
		{Name: "first_name", Label: "First name", Render: func(item models.Account) any { return item.FirstName }},
		{Name: "last_name", Label: "Last name", Render: func(item models.Account) any { return item.LastName }},
		{Name: "is_staff", Label: "Staff", Render: func(item models.Account) any { return item.IsStaff }},
	},
	SearchFields: []string{"username", "first_name", "last_name", "email"},
	Filters:      []string{"is_staff", "is_active"},
	Order:        "username ASC",
	PerPage:      AdminPerPage,
}
