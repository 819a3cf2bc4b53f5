package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public, authenticated and admin route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	// Public routes; a valid session token still identifies the caller so
	// like state reflects the logged-in user.
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.identify)

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{slug}", handlers.projectHandler.getProject())
		r.Post("/project/{slug}/like", handlers.projectHandler.toggleLike())

		r.Get("/achievements", handlers.achievementHandler.getAllAchievements())
		r.Get("/achievement/{slug}", handlers.achievementHandler.getAchievement())
		r.Post("/achievement/{slug}/like", handlers.achievementHandler.toggleLike())

		r.Get("/categories", handlers.categoryHandler.getAllCategories())

		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/forgot-password", handlers.authHandler.forgotPassword())
		r.Post("/auth/reset-password", handlers.authHandler.resetPassword())
		r.Get("/auth/{provider}", handlers.authHandler.oauthRedirect())
		r.Get("/auth/{provider}/callback", handlers.authHandler.oauthCallback())
	})

	// Routes requiring a session
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)

		r.Post("/auth/logout", handlers.authHandler.logout())

		r.Post("/project/{slug}/comment", handlers.projectHandler.submitComment())
		r.Post("/achievement/{slug}/comment", handlers.achievementHandler.submitComment())

		r.Get("/profile", handlers.authHandler.getProfile())
		r.Put("/profile", handlers.authHandler.updateProfile())

		r.Get("/notifications", handlers.adminHandler.listNotifications())
		r.Post("/notification/{notificationID}/read", handlers.adminHandler.markNotificationRead())
	})

	// Admin routes. The middleware only establishes identity; each handler
	// checks the admin capability against the account row itself.
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)

		r.Get("/admin/dashboard", handlers.adminHandler.dashboard())

		r.Get("/admin/projects", handlers.projectHandler.adminListProjects())
		r.Post("/admin/project", handlers.projectHandler.createProject())
		r.Put("/admin/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/admin/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/admin/project/{projectID}/media", handlers.projectHandler.uploadMedia())
		r.Delete("/admin/media/{mediaID}", handlers.projectHandler.deleteMedia())

		r.Get("/admin/achievements", handlers.achievementHandler.adminListAchievements())
		r.Post("/admin/achievement", handlers.achievementHandler.createAchievement())
		r.Put("/admin/achievement/{achievementID}", handlers.achievementHandler.updateAchievement())
		r.Delete("/admin/achievement/{achievementID}", handlers.achievementHandler.deleteAchievement())

		r.Post("/admin/category", handlers.categoryHandler.createCategory())
		r.Put("/admin/category/{categoryID}", handlers.categoryHandler.updateCategory())
		r.Delete("/admin/category/{categoryID}", handlers.categoryHandler.deleteCategory())

		r.Get("/admin/comments", handlers.commentHandler.listComments())
		r.Post("/admin/comment/{commentID}/approve", handlers.commentHandler.approveComment())
		r.Delete("/admin/comment/{commentID}", handlers.commentHandler.deleteComment())
	})
}
