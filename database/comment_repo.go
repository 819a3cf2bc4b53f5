package database

import (
	"errors"

	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID returns a comment by id, or nil when no such comment exists.
func (r *CommentRepo) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Approve marks a comment as publicly visible. Approving an already
// approved comment is a no-op.
func (r *CommentRepo) Approve(id uint) error {
	res := r.db.Model(&models.Comment{}).Where("id = ?", id).Update("is_approved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete permanently removes a comment.
func (r *CommentRepo) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// ApprovedFor returns the approved comments for a content item, newest first.
// Unapproved comments never appear here.
func (r *CommentRepo) ApprovedFor(ref models.ContentRef) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := refScope(r.db.Where("is_approved = ?", true), ref).
		Preload("Author").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// CommentFilter narrows the moderation listing.
type CommentFilter struct {
	Approved *bool
	Page     int
	PerPage  int
}

// FindAll returns comments for the moderation queue plus the total match
// count before pagination.
func (r *CommentRepo) FindAll(f CommentFilter) ([]*models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	if f.Approved != nil {
		query = query.Where("is_approved = ?", *f.Approved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.PerPage).Limit(f.PerPage)
	}

	var comments []*models.Comment
	err := query.Preload("Author").Order("created_at DESC").Find(&comments).Error
	return comments, total, err
}

// CountPending returns the number of comments awaiting moderation.
func (r *CommentRepo) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("is_approved = ?", false).Count(&count).Error
	return count, err
}

// Count returns the total number of comments.
func (r *CommentRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}
