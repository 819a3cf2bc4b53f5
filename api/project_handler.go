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

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	admin        adminGate
	projectRepo  *database.ProjectRepo
	commentRepo  *database.CommentRepo
	likeRepo     *database.LikeRepo
	mediaRepo    *database.MediaRepo
	content      *services.ContentService
	interactions *services.InteractionService
	actors       services.ActorResolver
	store        services.FileStore
}

func newProjectHandler(
	admin adminGate,
	projectRepo *database.ProjectRepo,
	commentRepo *database.CommentRepo,
	likeRepo *database.LikeRepo,
	mediaRepo *database.MediaRepo,
	content *services.ContentService,
	interactions *services.InteractionService,
	actors services.ActorResolver,
	store services.FileStore,
) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		admin:        admin,
		projectRepo:  projectRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		mediaRepo:    mediaRepo,
		content:      content,
		interactions: interactions,
		actors:       actors,
		store:        store,
	}
}

// ProjectCollection represents a paginated project listing
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
}

// ProjectDetail represents a project with its approved comments and the
// caller's like state
type ProjectDetail struct {
	Project  *models.Project   `json:"project"`
	Comments []*models.Comment `json:"comments"`
	Liked    bool              `json:"liked"`
}

// getAllProjects retrieves published projects with filters and pagination
// @Summary List projects
// @Description Retrieves published projects, optionally filtered by category, tag, search text or featured flag
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "Paginated list of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProjectFilter{
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

		projects, total, err := h.projectRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    total,
			Page:     filter.Page,
			PerPage:  filter.PerPage,
		})
	}
}

// getProject retrieves a published project by slug
// @Summary Get project
// @Description Retrieves a published project by slug with approved comments and the caller's like state. Bumps the view counter.
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectDetail "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{slug} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		project, err := h.projectRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.IncrementViews(project.ID); err != nil {
			h.logger.Error().Err(err).Uint("projectID", project.ID).Msg("Failed to increment view counter")
		} else {
			project.ViewsCount++
		}

		ref := models.ProjectRef(project.ID)

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

		h.responder.WriteJSON(w, ProjectDetail{
			Project:  project,
			Comments: comments,
			Liked:    liked,
		})
	}
}

// toggleLike flips the caller's like on a published project
// @Summary Toggle project like
// @Description Likes the project if the caller has not liked it, removes the like otherwise. Works for both logged-in users and anonymous visitors.
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} services.LikeResult "Resulting like state and count"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{slug}/like [post]
func (h projectHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		project, err := h.projectRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		actor := h.actors.Resolve(r, ctxUserID(r.Context()))
		result, err := h.interactions.ToggleLike(actor, models.ProjectRef(project.ID))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// submitComment records a comment on a published project for moderation
// @Summary Comment on project
// @Description Submits a comment on a published project. The comment stays hidden until an admin approves it.
// @Tags Projects
// @Accept json
// @Produce json
// @Param slug path string true "Project slug"
// @Success 201 {object} models.Comment "Created comment awaiting approval"
// @Failure 401 {object} ErrorResponse "Unauthorized - login required"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{slug}/comment [post]
func (h projectHandler) submitComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		slug := chi.URLParam(r, "slug")
		project, err := h.projectRepo.FindBySlug(slug, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		comment, err := h.interactions.SubmitComment(*userID, models.ProjectRef(project.ID), req.Content, project.Title)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// adminListProjects retrieves all projects, drafts included
func (h projectHandler) adminListProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.ProjectFilter{
			Status:  r.URL.Query().Get("status"),
			Page:    queryInt(r, "page", 1),
			PerPage: queryInt(r, "per_page", 20),
		}

		projects, total, err := h.projectRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    total,
			Page:     filter.Page,
			PerPage:  filter.PerPage,
		})
	}
}

// createProject creates a new project with derived slug and tags
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.admin.requireAdmin(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.content.CreateProject(admin.ID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates an existing project. The slug never changes on
// update so published links stay stable.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.content.UpdateProject(projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes a project and its comments, likes and media
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// 32 MB cap on upload request bodies
const maxUploadBytes = 32 << 20

// uploadMedia stores an uploaded file and attaches it to a project
func (h projectHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing file upload"))
			return
		}
		defer file.Close()

		fileType, err := services.FileTypeOf(header.Filename)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "unsupported file type"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		storedName, err := h.store.Store(r.Context(), header.Filename, file, contentType)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to store uploaded file")
			h.responder.WriteError(w, errs.NewInternalError("failed to store file"))
			return
		}

		media := &models.ProjectMedia{
			Filename:         storedName,
			OriginalFilename: header.Filename,
			FileType:         fileType,
			FileSize:         header.Size,
			MimeType:         contentType,
			Caption:          r.FormValue("caption"),
			ProjectID:        project.ID,
		}
		if err := h.mediaRepo.Add(media); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create media", "media", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, media)
	}
}

// deleteMedia removes a media record. The stored file is left behind;
// storage cleanup is a separate concern.
func (h projectHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		mediaID, err := pathID(r, "mediaID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.mediaRepo.Delete(mediaID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete media", "media", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "media deleted successfully",
		})
	}
}
