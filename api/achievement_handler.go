package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type achievementHandler struct {
	responder       Responder
	logger          zerolog.Logger
	admin           adminGate
	achievementRepo *database.AchievementRepo
	commentRepo     *database.CommentRepo
	likeRepo        *database.LikeRepo
	content         *services.ContentService
	interactions    *services.InteractionService
	actors          services.ActorResolver
}

func newAchievementHandler(
	admin adminGate,
	achievementRepo *database.AchievementRepo,
	commentRepo *database.CommentRepo,
	likeRepo *database.LikeRepo,
	content *services.ContentService,
	interactions *services.InteractionService,
	actors services.ActorResolver,
) achievementHandler {
	logger := log.With().Str("handlerName", "achievementHandler").Logger()

	return achievementHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		admin:           admin,
		achievementRepo: achievementRepo,
		commentRepo:     commentRepo,
		likeRepo:        likeRepo,
		content:         content,
		interactions:    interactions,
		actors:          actors,
	}
}

// AchievementCollection represents a paginated achievement listing
type AchievementCollection struct {
	Achievements []*models.Achievement `json:"achievements"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
}

// AchievementDetail represents an achievement with its approved comments
// and the caller's like state
type AchievementDetail struct {
	Achievement *models.Achievement `json:"achievement"`
	Comments    []*models.Comment   `json:"comments"`
	Liked       bool                `json:"liked"`
}

// getAllAchievements retrieves published achievements ordered by the date
// they were achieved
func (h achievementHandler) getAllAchievements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.AchievementFilter{
			Status:       models.StatusPublished,
			TagSlug:      r.URL.Query().Get("tag"),
			Search:       r.URL.Query().Get("search"),
			FeaturedOnly: r.URL.Query().Get("featured") == "true",
			Page:         queryInt(r, "page", 1),
			PerPage:      queryInt(r, "per_page", 12),
		}
		if categoryID, err := strconv.ParseUint(r.URL.Query().Get("category"), 10, 32); err == nil {
			id := uint(categoryID)
			filter.CategoryID = &id
		}

		achievements, total, err := h.achievementRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievements", "achievements", err))
			return
		}

		h.responder.WriteJSON(w, AchievementCollection{
			Achievements: achievements,
			Total:        total,
			Page:         filter.Page,
			PerPage:      filter.PerPage,
		})
	}
}

// getAchievement retrieves a published achievement by slug with approved
// comments and the caller's like state
func (h achievementHandler) getAchievement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		achievement, err := h.achievementRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		ref := models.AchievementRef(achievement.ID)

		comments, err := h.commentRepo.ApprovedFor(ref)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		actor := h.actors.Resolve(r, ctxUserID(r.Context()))
		liked, err := h.likeRepo.Exists(actor, ref)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to check like state")
		}

		h.responder.WriteJSON(w, AchievementDetail{
			Achievement: achievement,
			Comments:    comments,
			Liked:       liked,
		})
	}
}

// toggleLike flips the caller's like on a published achievement
func (h achievementHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		achievement, err := h.achievementRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		actor := h.actors.Resolve(r, ctxUserID(r.Context()))
		result, err := h.interactions.ToggleLike(actor, models.AchievementRef(achievement.ID))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// submitComment records a comment on a published achievement for moderation
func (h achievementHandler) submitComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		slug := chi.URLParam(r, "slug")
		achievement, err := h.achievementRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		comment, err := h.interactions.SubmitComment(*userID, models.AchievementRef(achievement.ID), req.Content, achievement.Title)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// adminListAchievements retrieves all achievements, drafts included
func (h achievementHandler) adminListAchievements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.AchievementFilter{
			Status:  r.URL.Query().Get("status"),
			Page:    queryInt(r, "page", 1),
			PerPage: queryInt(r, "per_page", 20),
		}

		achievements, total, err := h.achievementRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievements", "achievements", err))
			return
		}

		h.responder.WriteJSON(w, AchievementCollection{
			Achievements: achievements,
			Total:        total,
			Page:         filter.Page,
			PerPage:      filter.PerPage,
		})
	}
}

// createAchievement creates a new achievement with derived slug and tags
func (h achievementHandler) createAchievement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.admin.requireAdmin(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.AchievementInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("achievement", err))
			return
		}

		achievement, err := h.content.CreateAchievement(admin.ID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, achievement)
	}
}

// updateAchievement updates an existing achievement
func (h achievementHandler) updateAchievement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		achievementID, err := pathID(r, "achievementID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.AchievementInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("achievement", err))
			return
		}

		achievement, err := h.content.UpdateAchievement(achievementID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, achievement)
	}
}

// deleteAchievement removes an achievement and its comments and likes
func (h achievementHandler) deleteAchievement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		achievementID, err := pathID(r, "achievementID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		achievement, err := h.achievementRepo.FindByID(achievementID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		if err := h.achievementRepo.Delete(achievementID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete achievement", "achievement", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "achievement deleted successfully",
		})
	}
}
