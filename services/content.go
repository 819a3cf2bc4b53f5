package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/rs/zerolog"
)

// ProjectInput carries the mutable fields of a project.
type ProjectInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featuredImage"`
	DemoURL       string   `json:"demoUrl"`
	GithubURL     string   `json:"githubUrl"`
	Technologies  []string `json:"technologies"`
	Status        string   `json:"status"`
	IsFeatured    bool     `json:"isFeatured"`
	CategoryID    *uint    `json:"categoryId"`
	Tags          []string `json:"tags"`
}

// AchievementInput carries the mutable fields of an achievement.
type AchievementInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Content        string     `json:"content"`
	Image          string     `json:"image"`
	DateAchieved   *time.Time `json:"dateAchieved"`
	Organization   string     `json:"organization"`
	CertificateURL string     `json:"certificateUrl"`
	Status         string     `json:"status"`
	IsFeatured     bool       `json:"isFeatured"`
	CategoryID     *uint      `json:"categoryId"`
	Tags           []string   `json:"tags"`
}

// CategoryInput carries the mutable fields of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ContentService persists projects, achievements and categories. Every
// mutation that spans slug derivation, the entity row and tag links runs
// in one transaction: a failure at any step rolls back the whole mutation,
// so content-without-tags states never land.
type ContentService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewContentService(db database.Database, logger zerolog.Logger) *ContentService {
	return &ContentService{
		db:     db,
		logger: logger.With().Str("service", "content").Logger(),
	}
}

// CreateProject derives a unique slug, persists the project and links its
// normalized tags atomically.
func (s *ContentService) CreateProject(authorID uint, in ProjectInput) (*models.Project, error) {
	if err := validateContentInput(in.Title, in.Description, &in.Status); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.db.Transaction(func(tx database.Database) error {
		slug, err := DeriveSlug(in.Title, tx.ProjectRepo().SlugExists)
		if err != nil {
			return err
		}

		project = &models.Project{
			Title:         in.Title,
			Slug:          slug,
			Description:   in.Description,
			Content:       in.Content,
			FeaturedImage: in.FeaturedImage,
			DemoURL:       in.DemoURL,
			GithubURL:     in.GithubURL,
			Technologies:  encodeTechnologies(in.Technologies),
			Status:        in.Status,
			IsFeatured:    in.IsFeatured,
			CategoryID:    in.CategoryID,
			UserID:        authorID,
		}
		if err := tx.ProjectRepo().Add(project); err != nil {
			return errs.NewDatabaseError("create", "project", err)
		}

		tags, err := s.resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := tx.ProjectRepo().ReplaceTags(project, tags); err != nil {
			return errs.NewDatabaseError("link tags to", "project", err)
		}
		project.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", project.Slug).Msg("project created")
	return project, nil
}

// UpdateProject applies the input to an existing project and swaps its tag
// set, atomically. The slug is stable across edits; retitling never breaks
// published URLs.
func (s *ContentService) UpdateProject(id uint, in ProjectInput) (*models.Project, error) {
	if err := validateContentInput(in.Title, in.Description, &in.Status); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.db.Transaction(func(tx database.Database) error {
		var err error
		project, err = tx.ProjectRepo().FindByID(id)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return errs.NewNotFound("project")
		}

		project.Title = in.Title
		project.Description = in.Description
		project.Content = in.Content
		project.DemoURL = in.DemoURL
		project.GithubURL = in.GithubURL
		project.Technologies = encodeTechnologies(in.Technologies)
		project.Status = in.Status
		project.IsFeatured = in.IsFeatured
		project.CategoryID = in.CategoryID
		project.UpdatedAt = time.Now().UTC()
		if in.FeaturedImage != "" {
			project.FeaturedImage = in.FeaturedImage
		}

		tags, err := s.resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := tx.ProjectRepo().ReplaceTags(project, tags); err != nil {
			return errs.NewDatabaseError("link tags to", "project", err)
		}
		project.Tags = tags

		if err := tx.ProjectRepo().Update(project); err != nil {
			return errs.NewDatabaseError("update", "project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// CreateAchievement derives a unique slug, persists the achievement and
// links its normalized tags atomically.
func (s *ContentService) CreateAchievement(authorID uint, in AchievementInput) (*models.Achievement, error) {
	if err := validateContentInput(in.Title, in.Description, &in.Status); err != nil {
		return nil, err
	}

	var achievement *models.Achievement
	err := s.db.Transaction(func(tx database.Database) error {
		slug, err := DeriveSlug(in.Title, tx.AchievementRepo().SlugExists)
		if err != nil {
			return err
		}

		achievement = &models.Achievement{
			Title:          in.Title,
			Slug:           slug,
			Description:    in.Description,
			Content:        in.Content,
			Image:          in.Image,
			DateAchieved:   in.DateAchieved,
			Organization:   in.Organization,
			CertificateURL: in.CertificateURL,
			Status:         in.Status,
			IsFeatured:     in.IsFeatured,
			CategoryID:     in.CategoryID,
			UserID:         authorID,
		}
		if err := tx.AchievementRepo().Add(achievement); err != nil {
			return errs.NewDatabaseError("create", "achievement", err)
		}

		tags, err := s.resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := tx.AchievementRepo().ReplaceTags(achievement, tags); err != nil {
			return errs.NewDatabaseError("link tags to", "achievement", err)
		}
		achievement.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", achievement.Slug).Msg("achievement created")
	return achievement, nil
}

// UpdateAchievement applies the input to an existing achievement and swaps
// its tag set, atomically.
func (s *ContentService) UpdateAchievement(id uint, in AchievementInput) (*models.Achievement, error) {
	if err := validateContentInput(in.Title, in.Description, &in.Status); err != nil {
		return nil, err
	}

	var achievement *models.Achievement
	err := s.db.Transaction(func(tx database.Database) error {
		var err error
		achievement, err = tx.AchievementRepo().FindByID(id)
		if err != nil {
			return errs.NewDatabaseError("find", "achievement", err)
		}
		if achievement == nil {
			return errs.NewNotFound("achievement")
		}

		achievement.Title = in.Title
		achievement.Description = in.Description
		achievement.Content = in.Content
		achievement.DateAchieved = in.DateAchieved
		achievement.Organization = in.Organization
		achievement.CertificateURL = in.CertificateURL
		achievement.Status = in.Status
		achievement.IsFeatured = in.IsFeatured
		achievement.CategoryID = in.CategoryID
		achievement.UpdatedAt = time.Now().UTC()
		if in.Image != "" {
			achievement.Image = in.Image
		}

		tags, err := s.resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := tx.AchievementRepo().ReplaceTags(achievement, tags); err != nil {
			return errs.NewDatabaseError("link tags to", "achievement", err)
		}
		achievement.Tags = tags

		if err := tx.AchievementRepo().Update(achievement); err != nil {
			return errs.NewDatabaseError("update", "achievement", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return achievement, nil
}

// CreateCategory persists an admin-defined category with a derived slug.
func (s *ContentService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}

	var category *models.Category
	err := s.db.Transaction(func(tx database.Database) error {
		slug, err := DeriveSlug(in.Name, tx.CategoryRepo().SlugExists)
		if err != nil {
			return err
		}

		category = &models.Category{
			Name:        in.Name,
			Slug:        slug,
			Description: in.Description,
		}
		if in.Color != "" {
			category.Color = in.Color
		}
		if err := tx.CategoryRepo().Add(category); err != nil {
			return errs.NewDatabaseError("create", "category", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// resolveTags normalizes the given tag names and returns the matching tag
// rows, creating missing ones lazily. Names are matched case-sensitively;
// a brand-new name gets a slug unique within the tag namespace. Duplicates
// and empties in the input are dropped, so membership stays unique.
func (s *ContentService) resolveTags(tx database.Database, names []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := tx.TagRepo().FindByName(name)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "tag", err)
		}
		if tag == nil {
			slug, err := DeriveSlug(name, tx.TagRepo().SlugExists)
			if err != nil {
				return nil, err
			}
			tag = &models.Tag{Name: name, Slug: slug}
			if err := tx.TagRepo().Add(tag); err != nil {
				return nil, errs.NewDatabaseError("create", "tag", err)
			}
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func validateContentInput(title, description string, status *string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(description) == "" {
		return errs.NewMissingRequiredFieldError("description")
	}
	switch *status {
	case "":
		*status = models.StatusDraft
	case models.StatusDraft, models.StatusPublished:
	default:
		return errs.NewInvalidFieldError("status", "must be draft or published")
	}
	return nil
}

func encodeTechnologies(technologies []string) string {
	if len(technologies) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(technologies)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
