package database

import (
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// identityScope narrows a query to the like row owned by this actor for
// this content item. At most one such row can exist.
func identityScope(tx *gorm.DB, actor models.Actor, ref models.ContentRef) *gorm.DB {
	if actor.UserID != nil {
		tx = tx.Where("user_id = ?", *actor.UserID)
	} else {
		tx = tx.Where("ip_address = ?", actor.IPAddress)
	}
	switch ref.Kind {
	case models.KindProject:
		tx = tx.Where("project_id = ?", ref.ID)
	default:
		tx = tx.Where("achievement_id = ?", ref.ID)
	}
	return tx
}

// refScope narrows a query to all like rows for a content item.
func refScope(tx *gorm.DB, ref models.ContentRef) *gorm.DB {
	switch ref.Kind {
	case models.KindProject:
		return tx.Where("project_id = ?", ref.ID)
	default:
		return tx.Where("achievement_id = ?", ref.ID)
	}
}

// Toggle flips the like state for (actor, ref): deletes the row when one
// exists, inserts one otherwise. Runs as a single transaction; the partial
// unique indexes close the delete-or-insert race. When a concurrent request
// wins the insert, the constraint violation is treated as "already liked"
// and the current state is re-read instead of surfacing an error.
//
// The returned count is recomputed from live rows, and the denormalized
// likes_count column on the content item is reconciled to it inside the
// same transaction.
func (r *LikeRepo) Toggle(actor models.Actor, ref models.ContentRef) (liked bool, count int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := identityScope(tx, actor, ref).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := models.Like{
				UserID:        actor.UserID,
				ProjectID:     ref.ProjectID(),
				AchievementID: ref.AchievementID(),
			}
			if actor.UserID == nil {
				ip := actor.IPAddress
				like.IPAddress = &ip
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
		} else {
			liked = false
		}

		var txErr error
		count, txErr = countLocked(tx, ref)
		if txErr != nil {
			return txErr
		}
		return reconcileCounter(tx, ref, count)
	})

	if err != nil && errs.IsUniqueViolation(err) {
		// Lost the insert race: the row exists, so the actor's like stands.
		count, err = r.Count(ref)
		return true, count, err
	}
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// Exists reports whether the actor currently likes the content item.
func (r *LikeRepo) Exists(actor models.Actor, ref models.ContentRef) (bool, error) {
	var count int64
	err := identityScope(r.db.Model(&models.Like{}), actor, ref).Count(&count).Error
	return count > 0, err
}

// Count returns the live number of like rows for the content item.
func (r *LikeRepo) Count(ref models.ContentRef) (int64, error) {
	return countLocked(r.db, ref)
}

func countLocked(tx *gorm.DB, ref models.ContentRef) (int64, error) {
	var count int64
	err := refScope(tx.Model(&models.Like{}), ref).Count(&count).Error
	return count, err
}

// reconcileCounter keeps the denormalized likes_count column consistent
// with the live rows. The live count remains the source of truth.
func reconcileCounter(tx *gorm.DB, ref models.ContentRef, count int64) error {
	switch ref.Kind {
	case models.KindProject:
		return tx.Model(&models.Project{}).
			Where("id = ?", ref.ID).
			UpdateColumn("likes_count", count).Error
	default:
		return tx.Model(&models.Achievement{}).
			Where("id = ?", ref.ID).
			UpdateColumn("likes_count", count).Error
	}
}
