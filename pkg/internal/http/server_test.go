package http

import (
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/cache"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie *nethttp.Cookie
}

func setupServer(t *testing.T) *fiber.App {
	t.Helper()

	viper.Set("language.detect", false)
	viper.Set("security.bcrypt_cost", bcrypt.MinCost)
	viper.Set("security.csrf", false)
	viper.Set("media.root", t.TempDir())

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	t.Cleanup(func() {
		if raw, err := db.DB(); err == nil {
			_ = raw.Close()
		}
	})

	require.NoError(t, cache.NewStore())

	return NewServer().App()
}

func anonymous(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app}
}

// signIn registers the account when needed and signs in through the login
// form, keeping the session cookie for later requests.
func signIn(t *testing.T, app *fiber.App, username string) *testClient {
	t.Helper()

	if _, err := services.GetAccountByName(username); err != nil {
		_, err := services.RegisterAccount(username, "correct-horse")
		require.NoError(t, err)
	}

	client := anonymous(t, app)
	resp := client.post("/auth/login/", url.Values{
		"username": {username},
		"password": {"correct-horse"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			client.cookie = cookie
		}
	}
	require.NotNil(t, client.cookie)

	return client
}

func (v *testClient) do(req *nethttp.Request) *nethttp.Response {
	v.t.Helper()
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	resp, err := v.app.Test(req, -1)
	require.NoError(v.t, err)
	return resp
}

func (v *testClient) get(path string) *nethttp.Response {
	return v.do(httptest.NewRequest(fiber.MethodGet, path, nil))
}

func (v *testClient) post(path string, form url.Values) *nethttp.Response {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return v.do(req)
}

func (v *testClient) postJSON(path string, body string) *nethttp.Response {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return v.do(req)
}

func (v *testClient) patchJSON(path string, body string) *nethttp.Response {
	req := httptest.NewRequest(fiber.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return v.do(req)
}

func decode(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createPost(t *testing.T, author string, title string, modify ...func(item *models.Post)) models.Post {
	t.Helper()

	account, err := services.GetAccountByName(author)
	if err != nil {
		account, err = services.RegisterAccount(author, "correct-horse")
		require.NoError(t, err)
	}

	item := models.Post{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            title,
		Text:             "Text of " + title,
		PubDate:          time.Now().Add(-time.Hour),
	}
	for _, fn := range modify {
		fn(&item)
	}

	post, err := services.NewPost(account, item)
	require.NoError(t, err)
	return post
}

func postPath(id uint, suffix string) string {
	return fmt.Sprintf("/posts/%d/%s", id, suffix)
}

func hidden(item *models.Post) {
	item.IsPublished = false
}

func inCategory(category models.Category) func(item *models.Post) {
	return func(item *models.Post) {
		item.CategoryID = lo.ToPtr(category.ID)
	}
}
