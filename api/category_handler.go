package api

import (
	"encoding/json"
	"net/http"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	admin        adminGate
	categoryRepo *database.CategoryRepo
	content      *services.ContentService
}

func newCategoryHandler(admin adminGate, categoryRepo *database.CategoryRepo, content *services.ContentService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		admin:        admin,
		categoryRepo: categoryRepo,
		content:      content,
	}
}

// getAllCategories lists every category
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		h.responder.WriteJSON(w, categories)
	}
}

// createCategory creates a new category with a derived slug
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.CategoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("category", err))
			return
		}

		category, err := h.content.CreateCategory(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// updateCategory renames a category. The slug keeps its original value so
// existing filter links keep working.
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		categoryID, err := pathID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		var input services.CategoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("category", err))
			return
		}

		if input.Name != "" {
			category.Name = input.Name
		}
		if input.Description != "" {
			category.Description = input.Description
		}
		if input.Color != "" {
			category.Color = input.Color
		}

		if err := h.categoryRepo.Update(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update category", "category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a category. Content in the category is kept and
// becomes uncategorized.
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.admin.requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		categoryID, err := pathID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		if err := h.categoryRepo.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete category", "category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "category deleted successfully",
		})
	}
}
