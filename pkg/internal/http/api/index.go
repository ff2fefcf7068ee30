package api

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("Blog")
	{
		api.Get("/", listPost)

		posts := api.Group("/posts").Name("Posts")
		{
			posts.Get("/create/", getPostForm)
			posts.Post("/create/", createPost)

			posts.Get("/:postId<int>/", getPost)
			posts.Get("/:postId<int>/edit/", getPostEditForm)
			posts.Post("/:postId<int>/edit/", editPost)
			posts.Get("/:postId<int>/delete/", getPostDeleteForm)
			posts.Post("/:postId<int>/delete/", deletePost)

			posts.Post("/:postId<int>/comment/", createComment)
			posts.Get("/:postId<int>/edit_comment/:commentId<int>/", getCommentForm)
			posts.Post("/:postId<int>/edit_comment/:commentId<int>/", editComment)
			posts.Get("/:postId<int>/delete_comment/:commentId<int>/", getCommentDeleteForm)
			posts.Post("/:postId<int>/delete_comment/:commentId<int>/", deleteComment)
		}

		api.Get("/category/:slug/", listCategoryPost)

		profiles := api.Group("/profile").Name("Profiles")
		{
			profiles.Get("/:username/", listUserPost)
			profiles.Get("/:username/edit/", getProfileForm)
			profiles.Post("/:username/edit/", editProfile)
		}

		auth := api.Group("/auth").Name("Auth")
		{
			auth.Get("/registration/", getRegistrationForm)
			auth.Post("/registration/", doRegister)
			auth.Get("/login/", getSignInForm)
			auth.Post("/login/", doSignIn)
			auth.Get("/logout/", doSignOut)
			auth.Post("/logout/", doSignOut)
		}

		pages := api.Group("/pages").Name("Pages")
		{
			pages.Get("/about/", getAboutPage)
			pages.Get("/rules/", getRulesPage)
		}
	}
}
