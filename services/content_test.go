package services

import (
	"path/filepath"
	"testing"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return database.New(db)
}

func newTestUser(t *testing.T, db database.Database, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com", EmailNotifications: true}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.UserRepo().Add(user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestCreateProjectDerivesUniqueSlug(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	input := ProjectInput{Title: "My Project", Description: "d", Status: models.StatusPublished}

	first, err := svc.CreateProject(author.ID, input)
	if err != nil {
		t.Fatalf("first CreateProject: %v", err)
	}
	if first.Slug != "my-project" {
		t.Errorf("first slug = %q, want %q", first.Slug, "my-project")
	}

	second, err := svc.CreateProject(author.ID, input)
	if err != nil {
		t.Fatalf("second CreateProject: %v", err)
	}
	if second.Slug != "my-project-1" {
		t.Errorf("second slug = %q, want %q", second.Slug, "my-project-1")
	}
}

func TestCreateProjectRequiresTitleAndDescription(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	if _, err := svc.CreateProject(author.ID, ProjectInput{Description: "d"}); !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("missing title err = %v, want missing required field", err)
	}
	if _, err := svc.CreateProject(author.ID, ProjectInput{Title: "t"}); !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("missing description err = %v, want missing required field", err)
	}
	if _, err := svc.CreateProject(author.ID, ProjectInput{Title: "t", Description: "d", Status: "archived"}); !errs.IsInvalidFieldError(err) {
		t.Errorf("bad status err = %v, want invalid field", err)
	}
}

func TestCreateProjectDefaultsToDraft(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	project, err := svc.CreateProject(author.ID, ProjectInput{Title: "Untouched", Description: "d"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.Status != models.StatusDraft {
		t.Errorf("Status = %q, want %q", project.Status, models.StatusDraft)
	}
}

func TestTagsReusedByNameAcrossContent(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	first, err := svc.CreateProject(author.ID, ProjectInput{
		Title: "First", Description: "d", Tags: []string{"Go", "Web"},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := svc.CreateAchievement(author.ID, AchievementInput{
		Title: "Certified", Description: "d", Tags: []string{"Go", "Cloud"},
	}); err != nil {
		t.Fatalf("CreateAchievement: %v", err)
	}

	tags, err := db.TagRepo().FindAll()
	if err != nil {
		t.Fatalf("FindAll tags: %v", err)
	}
	// Go is shared between the two items; Web and Cloud are distinct.
	if len(tags) != 3 {
		names := make([]string, 0, len(tags))
		for _, tag := range tags {
			names = append(names, tag.Name)
		}
		t.Errorf("tag count = %d (%v), want 3", len(tags), names)
	}

	if len(first.Tags) != 2 {
		t.Errorf("project tag links = %d, want 2", len(first.Tags))
	}
}

func TestUpdateProjectKeepsSlugOnRetitle(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	project, err := svc.CreateProject(author.ID, ProjectInput{Title: "Original Name", Description: "d"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	updated, err := svc.UpdateProject(project.ID, ProjectInput{Title: "Renamed Entirely", Description: "d"})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.Slug != "original-name" {
		t.Errorf("slug after retitle = %q, want %q", updated.Slug, "original-name")
	}
	if updated.Title != "Renamed Entirely" {
		t.Errorf("title = %q, want %q", updated.Title, "Renamed Entirely")
	}
}

func TestUpdateProjectSwapsTagSet(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author")
	svc := NewContentService(db, zerolog.Nop())

	project, err := svc.CreateProject(author.ID, ProjectInput{
		Title: "Tagged", Description: "d", Tags: []string{"Old"},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	updated, err := svc.UpdateProject(project.ID, ProjectInput{
		Title: "Tagged", Description: "d", Tags: []string{"New"},
	})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "New" {
		t.Errorf("tags after update = %v, want just New", updated.Tags)
	}
}

func TestUpdateMissingProjectReportsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db, zerolog.Nop())

	_, err := svc.UpdateProject(9999, ProjectInput{Title: "t", Description: "d"})
	if !errs.IsNotFound(err) {
		t.Errorf("UpdateProject(9999) err = %v, want not found", err)
	}
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db, zerolog.Nop())

	category, err := svc.CreateCategory(CategoryInput{Name: "Web Development"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Slug != "web-development" {
		t.Errorf("slug = %q, want %q", category.Slug, "web-development")
	}
}
