package database

import (
	"testing"

	"github.com/GuilhermeFusuma/portifolio/models"
)

func TestDeleteCategoryKeepsContent(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "author")

	category := &models.Category{Name: "Web", Slug: "web"}
	if err := db.CategoryRepo().Add(category); err != nil {
		t.Fatalf("adding category: %v", err)
	}

	project := seedProject(t, db, user, "Site", "site")
	project.CategoryID = &category.ID
	if err := db.ProjectRepo().Update(project); err != nil {
		t.Fatalf("assigning category: %v", err)
	}

	achievement := seedAchievement(t, db, user, "Award", "award")
	achievement.CategoryID = &category.ID
	if err := db.AchievementRepo().Update(achievement); err != nil {
		t.Fatalf("assigning category: %v", err)
	}

	if err := db.CategoryRepo().Delete(category.ID); err != nil {
		t.Fatalf("deleting category: %v", err)
	}

	gone, err := db.CategoryRepo().FindByID(category.ID)
	if err != nil {
		t.Fatalf("looking up deleted category: %v", err)
	}
	if gone != nil {
		t.Error("category still present after delete")
	}

	kept, err := db.ProjectRepo().FindBySlug("site", false)
	if err != nil {
		t.Fatalf("looking up project: %v", err)
	}
	if kept == nil {
		t.Fatal("project deleted along with its category")
	}
	if kept.CategoryID != nil {
		t.Errorf("project category reference = %v, want nil", *kept.CategoryID)
	}

	keptAch, err := db.AchievementRepo().FindBySlug("award", false)
	if err != nil {
		t.Fatalf("looking up achievement: %v", err)
	}
	if keptAch == nil {
		t.Fatal("achievement deleted along with its category")
	}
	if keptAch.CategoryID != nil {
		t.Errorf("achievement category reference = %v, want nil", *keptAch.CategoryID)
	}
}
