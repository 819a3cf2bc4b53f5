package api

import (
	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/rs/zerolog/log"
)

// Dependencies carries the collaborators handlers need beyond the database.
type Dependencies struct {
	Tokens      *services.TokenService
	OAuth       *services.OAuthService
	Mailer      services.Mailer
	Store       services.FileStore
	Actors      services.ActorResolver
	AdminEmail  string
	FrontendURL string
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps Dependencies) *routeHandlers {
	content := services.NewContentService(db, log.Logger)
	interactions := services.NewInteractionService(
		db.LikeRepo(),
		db.CommentRepo(),
		db.NotificationRepo(),
		db.UserRepo(),
		deps.Mailer,
		deps.AdminEmail,
		log.Logger,
	)

	admin := adminGate{userRepo: db.UserRepo()}

	return &routeHandlers{
		authHandler: newAuthHandler(
			db.UserRepo(),
			deps.Tokens,
			deps.OAuth,
			deps.Mailer,
			deps.AdminEmail,
			deps.FrontendURL,
		),
		projectHandler: newProjectHandler(
			admin,
			db.ProjectRepo(),
			db.CommentRepo(),
			db.LikeRepo(),
			db.MediaRepo(),
			content,
			interactions,
			deps.Actors,
			deps.Store,
		),
		achievementHandler: newAchievementHandler(
			admin,
			db.AchievementRepo(),
			db.CommentRepo(),
			db.LikeRepo(),
			content,
			interactions,
			deps.Actors,
		),
		categoryHandler: newCategoryHandler(admin, db.CategoryRepo(), content),
		commentHandler:  newCommentHandler(admin, db.CommentRepo(), interactions),
		adminHandler: newAdminHandler(
			admin,
			db.ProjectRepo(),
			db.AchievementRepo(),
			db.CommentRepo(),
			db.NotificationRepo(),
		),
	}
}
