package http

import (
	"net/url"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/blogicum/pkg/internal/database"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/models"
	"git.solsynth.dev/hypernet/blogicum/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexListsVisiblePosts(t *testing.T) {
	app := setupServer(t)

	hiddenCategory, err := services.NewCategory(models.Category{Title: "Hidden", Description: "-", Slug: "hidden"})
	require.NoError(t, err)

	createPost(t, "author", "visible")
	createPost(t, "author", "draft", hidden)
	createPost(t, "author", "scheduled", func(item *models.Post) {
		item.PubDate = time.Now().Add(time.Hour)
	})
	createPost(t, "author", "in hidden category", inCategory(hiddenCategory))

	resp := anonymous(t, app).get("/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.EqualValues(t, 1, body["count"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "visible", data[0].(map[string]any)["title"])
}

func TestIndexRejectsMissingPages(t *testing.T) {
	app := setupServer(t)
	createPost(t, "author", "only")

	client := anonymous(t, app)
	assert.Equal(t, fiber.StatusOK, client.get("/?page=1").StatusCode)
	assert.Equal(t, fiber.StatusOK, client.get("/?page=last").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, client.get("/?page=2").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, client.get("/?page=abc").StatusCode)
}

func TestPostDetailOwnerBypass(t *testing.T) {
	app := setupServer(t)
	draft := createPost(t, "author", "draft", hidden)

	assert.Equal(t, fiber.StatusNotFound, anonymous(t, app).get(postPath(draft.ID, "")).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, signIn(t, app, "stranger").get(postPath(draft.ID, "")).StatusCode)

	resp := signIn(t, app, "author").get(postPath(draft.ID, ""))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "draft", body["post"].(map[string]any)["title"])
	assert.NotNil(t, body["comments"])
	assert.NotNil(t, body["form"])

	assert.Equal(t, fiber.StatusNotFound, anonymous(t, app).get("/posts/999/").StatusCode)
}

func TestCategoryListing(t *testing.T) {
	app := setupServer(t)

	travel, err := services.NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            "Travel",
		Description:      "Trips",
		Slug:             "travel",
	})
	require.NoError(t, err)
	_, err = services.NewCategory(models.Category{Title: "Drafts", Description: "-", Slug: "drafts"})
	require.NoError(t, err)

	createPost(t, "author", "trip", inCategory(travel))
	createPost(t, "author", "hidden trip", inCategory(travel), hidden)
	createPost(t, "author", "elsewhere")

	client := anonymous(t, app)

	resp := client.get("/category/travel/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "travel", body["category"].(map[string]any)["slug"])

	assert.Equal(t, fiber.StatusNotFound, client.get("/category/drafts/").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, client.get("/category/missing/").StatusCode)
}

func TestAnonymousMutationsRedirectToSignIn(t *testing.T) {
	app := setupServer(t)
	post := createPost(t, "author", "post")

	client := anonymous(t, app)

	resp := client.get("/posts/create/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next=%2Fposts%2Fcreate%2F", resp.Header.Get(fiber.HeaderLocation))

	resp = client.post(postPath(post.ID, "comment/"), url.Values{"text": {"hi"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderLocation), "/auth/login/?next=")

	resp = client.post(postPath(post.ID, "delete/"), nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, err := services.GetPost(database.C, post.ID)
	assert.NoError(t, err)
}

func TestCreatePost(t *testing.T) {
	app := setupServer(t)

	category, err := services.NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            "Travel",
		Description:      "Trips",
		Slug:             "travel",
	})
	require.NoError(t, err)

	client := signIn(t, app, "author")

	resp := client.get("/posts/create/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["form"].(map[string]any)["is_published"])

	resp = client.post("/posts/create/", url.Values{
		"title":        {"First trip"},
		"text":         {"We went to the mountains."},
		"pub_date":     {"2024-01-02T03:04"},
		"category":     {"1"},
		"is_published": {"on"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/author/", resp.Header.Get(fiber.HeaderLocation))

	var items []models.Post
	require.NoError(t, database.C.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "First trip", items[0].Title)
	assert.True(t, items[0].IsPublished)
	assert.Equal(t, category.ID, *items[0].CategoryID)
	assert.Nil(t, items[0].LocationID)

	resp = client.post("/posts/create/", url.Values{
		"title": {"No category"},
		"text":  {"text"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = client.post("/posts/create/", url.Values{
		"title":    {"Bad category"},
		"text":     {"text"},
		"category": {"42"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPostFormAcceptsJSON(t *testing.T) {
	app := setupServer(t)

	category, err := services.NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            "Travel",
		Description:      "Trips",
		Slug:             "travel",
	})
	require.NoError(t, err)
	location, err := services.NewLocation(models.Location{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Name:             "Alps",
	})
	require.NoError(t, err)

	client := signIn(t, app, "author")

	resp := client.postJSON("/posts/create/", `{"title":"Hello","text":"World","pub_date":"2024-01-02T03:04","category":1,"location":null,"is_published":true}`)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/author/", resp.Header.Get(fiber.HeaderLocation))

	var items []models.Post
	require.NoError(t, database.C.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Hello", items[0].Title)
	assert.True(t, items[0].IsPublished)
	assert.Equal(t, category.ID, *items[0].CategoryID)
	assert.Nil(t, items[0].LocationID)

	resp = client.get(postPath(items[0].ID, "edit/"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	form := decode(t, resp)["form"].(map[string]any)
	assert.EqualValues(t, category.ID, form["category"])
	assert.Equal(t, true, form["is_published"])

	resp = client.postJSON(postPath(items[0].ID, "edit/"), `{"title":"Edited","text":"World","category":"1","location":`+itoa(location.ID)+`,"is_published":false}`)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	item, err := services.GetPost(database.C, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", item.Title)
	assert.False(t, item.IsPublished)
	require.NotNil(t, item.LocationID)
	assert.Equal(t, location.ID, *item.LocationID)

	resp = client.postJSON("/posts/create/", `{"title":"Broken","text":"World","category":{}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "malformed request body", decode(t, resp)["error"])
}

func TestNonAuthorCannotMutatePost(t *testing.T) {
	app := setupServer(t)
	post := createPost(t, "author", "original")

	client := signIn(t, app, "stranger")

	resp := client.get(postPath(post.ID, "edit/"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath(post.ID, ""), resp.Header.Get(fiber.HeaderLocation))

	resp = client.post(postPath(post.ID, "edit/"), url.Values{
		"title":    {"hijacked"},
		"text":     {"hijacked"},
		"category": {"1"},
	})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath(post.ID, ""), resp.Header.Get(fiber.HeaderLocation))

	resp = client.post(postPath(post.ID, "delete/"), nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath(post.ID, ""), resp.Header.Get(fiber.HeaderLocation))

	item, err := services.GetPost(database.C, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", item.Title)

	assert.Equal(t, fiber.StatusNotFound, client.get("/posts/999/edit/").StatusCode)
}

func TestAuthorEditsAndDeletesPost(t *testing.T) {
	app := setupServer(t)

	_, err := services.NewCategory(models.Category{
		PublishableModel: models.PublishableModel{IsPublished: true},
		Title:            "Travel",
		Description:      "Trips",
		Slug:             "travel",
	})
	require.NoError(t, err)

	post := createPost(t, "author", "original")
	client := signIn(t, app, "author")

	resp := client.get(postPath(post.ID, "edit/"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = client.post(postPath(post.ID, "edit/"), url.Values{
		"title":    {"edited"},
		"text":     {"edited text"},
		"category": {"1"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/author/", resp.Header.Get(fiber.HeaderLocation))

	item, err := services.GetPost(database.C, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", item.Title)
	assert.False(t, item.IsPublished)

	resp = client.post(postPath(post.ID, "delete/"), nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/author/", resp.Header.Get(fiber.HeaderLocation))

	_, err = services.GetPost(database.C, post.ID)
	assert.Error(t, err)
}

func TestCommentOnOwnUnpublishedPostIsNotFound(t *testing.T) {
	app := setupServer(t)
	draft := createPost(t, "author", "draft", hidden)

	resp := signIn(t, app, "author").post(postPath(draft.ID, "comment/"), url.Values{"text": {"hello"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	count, err := services.CountComment(draft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestCommentLifecycle(t *testing.T) {
	app := setupServer(t)
	post := createPost(t, "author", "post")
	other := createPost(t, "author", "other")

	reader := signIn(t, app, "reader")
	resp := reader.post(postPath(post.ID, "comment/"), url.Values{"text": {"first!"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath(post.ID, ""), resp.Header.Get(fiber.HeaderLocation))

	comments, err := services.ListComment(post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	comment := comments[0]
	editPath := postPath(post.ID, "edit_comment/") + itoa(comment.ID) + "/"
	deletePath := postPath(post.ID, "delete_comment/") + itoa(comment.ID) + "/"

	stranger := signIn(t, app, "stranger")
	resp = stranger.post(editPath, url.Values{"text": {"defaced"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath(post.ID, ""), resp.Header.Get(fiber.HeaderLocation))
	resp = stranger.post(deletePath, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	item, err := services.GetComment(post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", item.Text)

	wrongPost := postPath(other.ID, "edit_comment/") + itoa(comment.ID) + "/"
	assert.Equal(t, fiber.StatusNotFound, reader.get(wrongPost).StatusCode)

	resp = reader.post(editPath, url.Values{"text": {"second thoughts"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	item, err = services.GetComment(post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "second thoughts", item.Text)

	body := decode(t, anonymous(t, app).get(postPath(post.ID, "")))
	assert.EqualValues(t, 1, body["comments"].(map[string]any)["count"])

	resp = reader.post(deletePath, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	_, err = services.GetComment(post.ID, comment.ID)
	assert.Error(t, err)
}

func TestProfileListing(t *testing.T) {
	app := setupServer(t)
	createPost(t, "author", "public")
	createPost(t, "author", "draft", hidden)

	body := decode(t, anonymous(t, app).get("/profile/author/"))
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "author", body["profile"].(map[string]any)["username"])
	_, leaked := body["profile"].(map[string]any)["password"]
	assert.False(t, leaked)

	body = decode(t, signIn(t, app, "stranger").get("/profile/author/"))
	assert.EqualValues(t, 1, body["count"])

	body = decode(t, signIn(t, app, "author").get("/profile/author/"))
	assert.EqualValues(t, 2, body["count"])

	assert.Equal(t, fiber.StatusNotFound, anonymous(t, app).get("/profile/ghost/").StatusCode)
}

func TestProfileEditTargetsCurrentUser(t *testing.T) {
	app := setupServer(t)
	_, err := services.RegisterAccount("bob", "correct-horse")
	require.NoError(t, err)

	alice := signIn(t, app, "alice")

	resp := alice.post("/profile/bob/edit/", url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
		"email":      {"alice@example.com"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob/", resp.Header.Get(fiber.HeaderLocation))

	account, err := services.GetAccountByName("alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.FirstName)
	assert.Equal(t, "alice@example.com", account.Email)

	bob, err := services.GetAccountByName("bob")
	require.NoError(t, err)
	assert.Empty(t, bob.FirstName)

	resp = alice.post("/profile/alice/edit/", url.Values{"email": {"not an email"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = anonymous(t, app).get("/profile/alice/edit/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestProfileUsernameIsUnescaped(t *testing.T) {
	app := setupServer(t)
	client := signIn(t, app, "a@b")

	resp := client.post("/profile/a%40b/edit/", url.Values{"first_name": {"Ann"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/a@b/", resp.Header.Get(fiber.HeaderLocation))

	resp = anonymous(t, app).get("/profile/a%40b/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := decode(t, resp)["profile"].(map[string]any)
	assert.Equal(t, "a@b", profile["username"])
	assert.Equal(t, "Ann", profile["first_name"])
}

func TestRegistrationAndSignOut(t *testing.T) {
	app := setupServer(t)
	client := anonymous(t, app)

	resp := client.post("/auth/registration/", url.Values{
		"username":  {"newbie"},
		"password1": {"secret-one"},
		"password2": {"secret-two"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = client.post("/auth/registration/", url.Values{
		"username":  {"bad name!"},
		"password1": {"secret-one"},
		"password2": {"secret-one"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = client.post("/auth/registration/", url.Values{
		"username":  {"newbie"},
		"password1": {"secret-one"},
		"password2": {"secret-one"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp = client.post("/auth/login/?next=/posts/create/", url.Values{
		"username": {"newbie"},
		"password": {"wrong"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = client.post("/auth/login/?next=/posts/create/", url.Values{
		"username": {"newbie"},
		"password": {"secret-one"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/posts/create/", resp.Header.Get(fiber.HeaderLocation))

	member := signIn(t, app, "member")
	assert.Equal(t, fiber.StatusOK, member.get("/posts/create/").StatusCode)
	assert.Equal(t, fiber.StatusOK, member.get("/auth/logout/").StatusCode)
	assert.Equal(t, fiber.StatusFound, member.get("/posts/create/").StatusCode)
}

func TestStaticPages(t *testing.T) {
	app := setupServer(t)
	client := anonymous(t, app)

	assert.Equal(t, fiber.StatusOK, client.get("/pages/about/").StatusCode)
	assert.Equal(t, fiber.StatusOK, client.get("/pages/rules/").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, client.get("/pages/missing/").StatusCode)
}
