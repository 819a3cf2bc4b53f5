package database

import (
	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type Database struct {
	gorm             *gorm.DB
	userRepo         *UserRepo
	categoryRepo     *CategoryRepo
	tagRepo          *TagRepo
	projectRepo      *ProjectRepo
	achievementRepo  *AchievementRepo
	commentRepo      *CommentRepo
	likeRepo         *LikeRepo
	mediaRepo        *MediaRepo
	notificationRepo *NotificationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		gorm:             db,
		userRepo:         NewUserRepo(db),
		categoryRepo:     NewCategoryRepo(db),
		tagRepo:          NewTagRepo(db),
		projectRepo:      NewProjectRepo(db),
		achievementRepo:  NewAchievementRepo(db),
		commentRepo:      NewCommentRepo(db),
		likeRepo:         NewLikeRepo(db),
		mediaRepo:        NewMediaRepo(db),
		notificationRepo: NewNotificationRepo(db),
	}
}

// Transaction runs fn with a Database bound to a single transaction. Any
// error from fn rolls back everything done through the transactional
// repositories, so multi-step mutations (content create plus tag attach)
// either land completely or not at all.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) AchievementRepo() *AchievementRepo {
	return d.achievementRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

func (d Database) NotificationRepo() *NotificationRepo {
	return d.notificationRepo
}

// likeUniqueIndexes close the check-then-insert race on like toggling at
// the storage layer. Partial indexes keep NULL columns out of the key, so
// the four identity-by-content-type combinations never collide with each
// other.
var likeUniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_project_like ON likes (user_id, project_id) WHERE user_id IS NOT NULL AND project_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_achievement_like ON likes (user_id, achievement_id) WHERE user_id IS NOT NULL AND achievement_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_ip_project_like ON likes (ip_address, project_id) WHERE ip_address IS NOT NULL AND project_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_ip_achievement_like ON likes (ip_address, achievement_id) WHERE ip_address IS NOT NULL AND achievement_id IS NOT NULL`,
}

// Migrate creates or updates the schema, including the composite unique
// indexes that back slug and like-identity integrity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Project{},
		&models.Achievement{},
		&models.Comment{},
		&models.Like{},
		&models.ProjectMedia{},
		&models.Notification{},
	); err != nil {
		return err
	}

	for _, stmt := range likeUniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
