package database

import (
	"path/filepath"
	"testing"

	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test a fresh migrated sqlite database. A single
// connection keeps sqlite's locking out of concurrent test scenarios.
func openTestDB(t *testing.T) Database {
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

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return New(db)
}

// seedUser inserts a user with sane defaults.
func seedUser(t *testing.T, db Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:           username,
		Email:              username + "@example.com",
		EmailNotifications: true,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.UserRepo().Add(user); err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return user
}

// seedProject inserts a published project owned by the given user.
func seedProject(t *testing.T, db Database, owner *models.User, title, slug string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       title,
		Slug:        slug,
		Description: "a test project",
		Status:      models.StatusPublished,
		UserID:      owner.ID,
	}
	if err := db.ProjectRepo().Add(project); err != nil {
		t.Fatalf("seeding project %s: %v", slug, err)
	}
	return project
}

// seedAchievement inserts a published achievement owned by the given user.
func seedAchievement(t *testing.T, db Database, owner *models.User, title, slug string) *models.Achievement {
	t.Helper()

	achievement := &models.Achievement{
		Title:       title,
		Slug:        slug,
		Description: "a test achievement",
		Status:      models.StatusPublished,
		UserID:      owner.ID,
	}
	if err := db.AchievementRepo().Add(achievement); err != nil {
		t.Fatalf("seeding achievement %s: %v", slug, err)
	}
	return achievement
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db.gorm); err != nil {
		t.Fatalf("second Migrate run failed: %v", err)
	}
}
