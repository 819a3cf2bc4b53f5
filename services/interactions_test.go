package services

import (
	"testing"

	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/rs/zerolog"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

func TestToggleLikeReportsStatusAndCount(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(user.ID, ProjectInput{Title: "Likeable", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, "", zerolog.Nop())

	actor := models.AuthenticatedActor(user.ID)
	ref := models.ProjectRef(project.ID)

	result, err := svc.ToggleLike(actor, ref)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if result.Status != LikeStatusLiked || result.Count != 1 {
		t.Errorf("ToggleLike = %+v, want liked/1", result)
	}

	result, err = svc.ToggleLike(actor, ref)
	if err != nil {
		t.Fatalf("second ToggleLike: %v", err)
	}
	if result.Status != LikeStatusUnliked || result.Count != 0 {
		t.Errorf("second ToggleLike = %+v, want unliked/0", result)
	}
}

func TestSubmitCommentStartsPending(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(user.ID, ProjectInput{Title: "Discussed", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, "", zerolog.Nop())

	comment, err := svc.SubmitComment(user.ID, models.ProjectRef(project.ID), "  nice work  ", project.Title)
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if comment.IsApproved {
		t.Error("new comment should start unapproved")
	}
	if comment.Content != "nice work" {
		t.Errorf("Content = %q, want trimmed text", comment.Content)
	}
}

func TestSubmitCommentRejectsEmptyText(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "visitor")
	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, "", zerolog.Nop())

	if _, err := svc.SubmitComment(user.ID, models.ProjectRef(1), "   ", "t"); !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("SubmitComment err = %v, want missing required field", err)
	}
}

func TestSubmitCommentNotifiesAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := newTestUser(t, db, "admin")
	visitor := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(admin.ID, ProjectInput{Title: "Watched", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, admin.Email, zerolog.Nop())

	if _, err := svc.SubmitComment(visitor.ID, models.ProjectRef(project.ID), "hello", project.Title); err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	notifications, err := db.NotificationRepo().ForUser(admin.ID)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationComment {
		t.Errorf("notifications = %d, want one comment notification", len(notifications))
	}

	if len(mailer.sent) != 1 {
		t.Errorf("emails sent = %d, want 1", len(mailer.sent))
	}
}

func TestSubmitCommentSkipsEmailWhenOptedOut(t *testing.T) {
	db := newTestDB(t)
	admin := newTestUser(t, db, "admin")
	admin.EmailNotifications = false
	if err := db.UserRepo().Update(admin); err != nil {
		t.Fatalf("Update: %v", err)
	}
	visitor := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(admin.ID, ProjectInput{Title: "Quiet", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, admin.Email, zerolog.Nop())

	if _, err := svc.SubmitComment(visitor.ID, models.ProjectRef(project.ID), "hello", project.Title); err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if len(mailer.sent) != 0 {
		t.Errorf("emails sent = %d, want 0 when notifications disabled", len(mailer.sent))
	}
}

func TestApproveCommentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(user.ID, ProjectInput{Title: "Moderated", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, "", zerolog.Nop())

	comment, err := svc.SubmitComment(user.ID, models.ProjectRef(project.ID), "approve me", project.Title)
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if err := svc.ApproveComment(comment.ID); err != nil {
		t.Fatalf("ApproveComment: %v", err)
	}
	if err := svc.ApproveComment(comment.ID); err != nil {
		t.Fatalf("second ApproveComment: %v", err)
	}

	if err := svc.ApproveComment(9999); !errs.IsNotFound(err) {
		t.Errorf("ApproveComment(9999) err = %v, want not found", err)
	}
}

func TestDeleteCommentRemovesRegardlessOfApproval(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "visitor")
	content := NewContentService(db, zerolog.Nop())
	project, err := content.CreateProject(user.ID, ProjectInput{Title: "Cleanup", Description: "d", Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	mailer := &recordingMailer{}
	svc := NewInteractionService(db.LikeRepo(), db.CommentRepo(), db.NotificationRepo(), db.UserRepo(), mailer, "", zerolog.Nop())

	comment, err := svc.SubmitComment(user.ID, models.ProjectRef(project.ID), "bye", project.Title)
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if err := svc.DeleteComment(comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := svc.DeleteComment(comment.ID); !errs.IsNotFound(err) {
		t.Errorf("second DeleteComment err = %v, want not found", err)
	}
}
