package database

import (
	"errors"

	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter narrows project listings. Zero values mean "no filter".
type ProjectFilter struct {
	Status       string
	CategoryID   *uint
	TagSlug      string
	Search       string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

// FindAll returns projects matching the filter plus the total match count
// before pagination.
func (r *ProjectRepo) FindAll(f ProjectFilter) ([]*models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if f.Status != "" {
		query = query.Where("projects.status = ?", f.Status)
	}
	if f.CategoryID != nil {
		query = query.Where("projects.category_id = ?", *f.CategoryID)
	}
	if f.FeaturedOnly {
		query = query.Where("projects.is_featured = ?", true)
	}
	if f.TagSlug != "" {
		query = query.
			Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"projects.title LIKE ? OR projects.description LIKE ? OR projects.technologies LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Distinct("projects.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.PerPage).Limit(f.PerPage)
	}

	var projects []*models.Project
	err := query.
		Preload("Tags").
		Preload("Category").
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project by id, or nil when no such project exists.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Tags").Preload("Category").Preload("Media").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by slug, or nil when no such project exists.
// With publishedOnly set, drafts are treated as absent.
func (r *ProjectRepo) FindBySlug(slug string, publishedOnly bool) (*models.Project, error) {
	query := r.db.Preload("Tags").Preload("Category").Preload("Media").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", models.StatusPublished)
	}
	var project models.Project
	err := query.First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether a project already uses the given slug.
func (r *ProjectRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Select("Comments", "Likes", "Media").Delete(&models.Project{ID: id}).Error
}

// IncrementViews bumps the view counter without read-modify-write. The
// counter is best effort under concurrent requests.
func (r *ProjectRepo) IncrementViews(id uint) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// ReplaceTags swaps the project's tag associations for the given set. The
// project owns the association; the tags themselves are shared and untouched.
func (r *ProjectRepo) ReplaceTags(project *models.Project, tags []models.Tag) error {
	return r.db.Model(project).Association("Tags").Replace(tags)
}

// AttachTag links a tag to the project. Linking an already attached tag is
// a no-op.
func (r *ProjectRepo) AttachTag(project *models.Project, tag *models.Tag) error {
	return r.db.Model(project).Association("Tags").Append(tag)
}

// DetachTag unlinks a tag from the project without deleting the tag.
func (r *ProjectRepo) DetachTag(project *models.Project, tag *models.Tag) error {
	return r.db.Model(project).Association("Tags").Delete(tag)
}

// ListTags returns the tags currently attached to the project.
func (r *ProjectRepo) ListTags(project *models.Project) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Model(project).Association("Tags").Find(&tags)
	return tags, err
}

// Count returns the total number of projects.
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}
