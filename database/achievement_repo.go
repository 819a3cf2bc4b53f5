package database

import (
	"errors"

	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type AchievementRepo struct {
	db *gorm.DB
}

func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db}
}

// AchievementFilter narrows achievement listings. Zero values mean "no filter".
type AchievementFilter struct {
	Status       string
	CategoryID   *uint
	TagSlug      string
	Search       string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

// FindAll returns achievements matching the filter plus the total match
// count before pagination. Ordered by the date achieved, newest first.
func (r *AchievementRepo) FindAll(f AchievementFilter) ([]*models.Achievement, int64, error) {
	query := r.db.Model(&models.Achievement{})

	if f.Status != "" {
		query = query.Where("achievements.status = ?", f.Status)
	}
	if f.CategoryID != nil {
		query = query.Where("achievements.category_id = ?", *f.CategoryID)
	}
	if f.FeaturedOnly {
		query = query.Where("achievements.is_featured = ?", true)
	}
	if f.TagSlug != "" {
		query = query.
			Joins("JOIN achievement_tags ON achievement_tags.achievement_id = achievements.id").
			Joins("JOIN tags ON tags.id = achievement_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"achievements.title LIKE ? OR achievements.description LIKE ? OR achievements.organization LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Distinct("achievements.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.PerPage).Limit(f.PerPage)
	}

	var achievements []*models.Achievement
	err := query.
		Preload("Tags").
		Preload("Category").
		Order("achievements.date_achieved DESC").
		Find(&achievements).Error
	return achievements, total, err
}

// FindByID returns an achievement by id, or nil when no such achievement exists.
func (r *AchievementRepo) FindByID(id uint) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.db.Preload("Tags").Preload("Category").First(&achievement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// FindBySlug returns an achievement by slug, or nil when no such
// achievement exists. With publishedOnly set, drafts are treated as absent.
func (r *AchievementRepo) FindBySlug(slug string, publishedOnly bool) (*models.Achievement, error) {
	query := r.db.Preload("Tags").Preload("Category").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", models.StatusPublished)
	}
	var achievement models.Achievement
	err := query.First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// SlugExists reports whether an achievement already uses the given slug.
func (r *AchievementRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Achievement{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new achievement into the database
func (r *AchievementRepo) Add(achievement *models.Achievement) error {
	return r.db.Create(achievement).Error
}

// Update updates an existing achievement in the database
func (r *AchievementRepo) Update(achievement *models.Achievement) error {
	return r.db.Save(achievement).Error
}

// Delete removes an achievement from the database by id
func (r *AchievementRepo) Delete(id uint) error {
	return r.db.Select("Comments", "Likes").Delete(&models.Achievement{ID: id}).Error
}

// ReplaceTags swaps the achievement's tag associations for the given set.
func (r *AchievementRepo) ReplaceTags(achievement *models.Achievement, tags []models.Tag) error {
	return r.db.Model(achievement).Association("Tags").Replace(tags)
}

// ListTags returns the tags currently attached to the achievement.
func (r *AchievementRepo) ListTags(achievement *models.Achievement) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Model(achievement).Association("Tags").Find(&tags)
	return tags, err
}

// Count returns the total number of achievements.
func (r *AchievementRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Achievement{}).Count(&count).Error
	return count, err
}
