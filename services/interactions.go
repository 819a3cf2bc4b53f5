package services

import (
	"fmt"
	"strings"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/rs/zerolog"
)

// Like toggle outcomes
const (
	LikeStatusLiked   = "liked"
	LikeStatusUnliked = "unliked"
)

// LikeResult reports the state after a toggle and the live like count for
// the content item.
type LikeResult struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// InteractionService is the ledger for likes and comments against content
// items. It is handed its dependencies at construction; there are no
// package-level handles.
type InteractionService struct {
	likes         *database.LikeRepo
	comments      *database.CommentRepo
	notifications *database.NotificationRepo
	users         *database.UserRepo
	mailer        Mailer
	adminEmail    string
	logger        zerolog.Logger
}

func NewInteractionService(
	likes *database.LikeRepo,
	comments *database.CommentRepo,
	notifications *database.NotificationRepo,
	users *database.UserRepo,
	mailer Mailer,
	adminEmail string,
	logger zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		likes:         likes,
		comments:      comments,
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		adminEmail:    adminEmail,
		logger:        logger.With().Str("service", "interactions").Logger(),
	}
}

// ToggleLike flips the actor's like on the content item: inserts on
// absence, deletes on presence. Calling it twice returns to zero net likes.
func (s *InteractionService) ToggleLike(actor models.Actor, ref models.ContentRef) (LikeResult, error) {
	liked, count, err := s.likes.Toggle(actor, ref)
	if err != nil {
		return LikeResult{}, errs.NewDatabaseError("toggle like", string(ref.Kind), err)
	}

	status := LikeStatusUnliked
	if liked {
		status = LikeStatusLiked
	}
	return LikeResult{Status: status, Count: count}, nil
}

// SubmitComment records a comment awaiting moderation. The comment is
// never publicly visible until an admin approves it, regardless of who
// submitted it. The admin notification is fire-and-forget: its failure is
// logged and never fails the submission.
func (s *InteractionService) SubmitComment(userID uint, ref models.ContentRef, text, contentTitle string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}

	comment := &models.Comment{
		Content:       text,
		IsApproved:    false,
		UserID:        userID,
		ProjectID:     ref.ProjectID(),
		AchievementID: ref.AchievementID(),
	}
	if err := s.comments.Add(comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}

	s.notifyAdmin(userID, ref, comment, contentTitle)

	return comment, nil
}

// ApproveComment makes a comment publicly visible. Idempotent: approving
// an already approved comment is a no-op.
func (s *InteractionService) ApproveComment(id uint) error {
	if err := s.comments.Approve(id); err != nil {
		return errs.NewDatabaseError("approve", "comment", err)
	}
	return nil
}

// DeleteComment permanently and unconditionally removes a comment.
func (s *InteractionService) DeleteComment(id uint) error {
	comment, err := s.comments.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "comment", err)
	}
	if comment == nil {
		return errs.NewNotFound("comment")
	}
	if err := s.comments.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "comment", err)
	}
	return nil
}

func (s *InteractionService) notifyAdmin(authorID uint, ref models.ContentRef, comment *models.Comment, contentTitle string) {
	admin, err := s.users.FindByEmail(s.adminEmail)
	if err != nil {
		s.logger.Error().Err(err).Msg("looking up admin for comment notification")
		return
	}
	if admin == nil || !admin.EmailNotifications {
		return
	}

	notification := &models.Notification{
		Type:          models.NotificationComment,
		Message:       fmt.Sprintf("New comment on %s %q", ref.Kind, contentTitle),
		UserID:        admin.ID,
		RelatedUserID: &authorID,
		ProjectID:     ref.ProjectID(),
		AchievementID: ref.AchievementID(),
		CommentID:     &comment.ID,
	}
	if err := s.notifications.Add(notification); err != nil {
		s.logger.Error().Err(err).Msg("recording comment notification")
	}

	author, err := s.users.FindByID(authorID)
	if err != nil || author == nil {
		s.logger.Error().Err(err).Uint("userID", authorID).Msg("looking up comment author")
		return
	}

	body := fmt.Sprintf("%s commented on %q.\n\nYou can moderate comments in the admin panel.", author.Username, contentTitle)
	if err := s.mailer.Send(admin.Email, "New Comment", body); err != nil {
		s.logger.Error().Err(err).Msg("sending comment notification email")
	}
}
