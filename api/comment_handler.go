package api

import (
	"net/http"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// commentHandler is the moderation surface. Public comment submission
// lives on the project and achievement handlers; everything here is
// admin-only.
type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	admin        adminGate
	commentRepo  *database.CommentRepo
	interactions *services.InteractionService
}

func newCommentHandler(admin adminGate, commentRepo *database.CommentRepo, interactions *services.InteractionService) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		admin:        admin,
		commentRepo:  commentRepo,
		interactions: interactions,
	}
}

// CommentCollection represents a paginated moderation listing
type CommentCollection struct {
	Comments []*models.Comment `json:"comments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
}

// listComments retrieves comments for moderation, filtered by status:
// "pending" (default), "approved" or "all"
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.CommentFilter{
			Page:    queryInt(r, "page", 1),
			PerPage: queryInt(r, "per_page", 20),
		}
		switch r.URL.Query().Get("status") {
		case "approved":
			approved := true
			filter.Approved = &approved
		case "all":
			// no approval filter
		default:
			pending := false
			filter.Approved = &pending
		}

		comments, total, err := h.commentRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, CommentCollection{
			Comments: comments,
			Total:    total,
			Page:     filter.Page,
			PerPage:  filter.PerPage,
		})
	}
}

// approveComment makes a comment publicly visible. Approving an already
// approved comment succeeds without effect.
func (h commentHandler) approveComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		commentID, err := pathID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.interactions.ApproveComment(commentID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment approved",
		})
	}
}

// deleteComment permanently removes a comment, approved or not
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		commentID, err := pathID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.interactions.DeleteComment(commentID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
