package database

import (
	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// Add inserts a new media record into the database
func (r *MediaRepo) Add(media *models.ProjectMedia) error {
	return r.db.Create(media).Error
}

// ForProject returns the media records for a project in display order.
func (r *MediaRepo) ForProject(projectID uint) ([]*models.ProjectMedia, error) {
	var media []*models.ProjectMedia
	err := r.db.Where("project_id = ?", projectID).
		Order("order_index, created_at").
		Find(&media).Error
	return media, err
}

// Delete removes a media record by id
func (r *MediaRepo) Delete(id uint) error {
	return r.db.Delete(&models.ProjectMedia{}, id).Error
}
