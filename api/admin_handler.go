package api

import (
	"net/http"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder        Responder
	logger           zerolog.Logger
	admin            adminGate
	projectRepo      *database.ProjectRepo
	achievementRepo  *database.AchievementRepo
	commentRepo      *database.CommentRepo
	notificationRepo *database.NotificationRepo
}

func newAdminHandler(
	admin adminGate,
	projectRepo *database.ProjectRepo,
	achievementRepo *database.AchievementRepo,
	commentRepo *database.CommentRepo,
	notificationRepo *database.NotificationRepo,
) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		admin:            admin,
		projectRepo:      projectRepo,
		achievementRepo:  achievementRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
	}
}

// DashboardStats summarizes site content for the admin panel
type DashboardStats struct {
	Projects        int64 `json:"projects"`
	Achievements    int64 `json:"achievements"`
	Comments        int64 `json:"comments"`
	PendingComments int64 `json:"pendingComments"`
}

// dashboard reports content counts and the moderation backlog
func (h adminHandler) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var stats DashboardStats
		var err error

		if stats.Projects, err = h.projectRepo.Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count projects", "projects", err))
			return
		}
		if stats.Achievements, err = h.achievementRepo.Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count achievements", "achievements", err))
			return
		}
		if stats.Comments, err = h.commentRepo.Count(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count comments", "comments", err))
			return
		}
		if stats.PendingComments, err = h.commentRepo.CountPending(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count pending comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}

// listNotifications returns the authenticated user's notifications,
// newest first
func (h adminHandler) listNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		notifications, err := h.notificationRepo.ForUser(*userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find notifications", "notifications", err))
			return
		}

		h.responder.WriteJSON(w, notifications)
	}
}

// markNotificationRead marks one of the caller's notifications as read.
// The update is scoped to the caller, so another user's notification is
// never touched.
func (h adminHandler) markNotificationRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		notificationID, err := pathID(r, "notificationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.notificationRepo.MarkRead(notificationID, *userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("mark notification read", "notification", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "notification marked as read",
		})
	}
}
