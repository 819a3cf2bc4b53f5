package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const oauthStateCookie = "oauth_state"

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	tokens      *services.TokenService
	oauth       *services.OAuthService
	mailer      services.Mailer
	adminEmail  string
	frontendURL string
}

func newAuthHandler(
	userRepo *database.UserRepo,
	tokens *services.TokenService,
	oauth *services.OAuthService,
	mailer services.Mailer,
	adminEmail string,
	frontendURL string,
) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		tokens:      tokens,
		oauth:       oauth,
		mailer:      mailer,
		adminEmail:  adminEmail,
		frontendURL: frontendURL,
	}
}

// SessionResponse is returned after a successful registration or login.
type SessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// register creates a local account
// @Summary Register
// @Description Creates a new account with local credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} SessionResponse "Session token and created user"
// @Failure 409 {object} ErrorResponse "Conflict - username or email taken"
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("registration", err))
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		if req.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if len(req.Password) < 8 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 8 characters"))
			return
		}

		if existing, err := h.userRepo.FindByUsername(req.Username); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewConflictErrorWithField("username already taken", "username"))
			return
		}

		if existing, err := h.userRepo.FindByEmail(req.Email); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewConflictErrorWithField("email already registered", "email"))
			return
		}

		user := &models.User{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			IsAdmin:   h.adminEmail != "" && req.Email == strings.ToLower(h.adminEmail),
		}
		if err := user.SetPassword(req.Password); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		if err := h.userRepo.Add(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		token, err := h.tokens.IssueSessionToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue session token"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, SessionResponse{Token: token, User: user})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login exchanges local credentials for a session token
// @Summary Login
// @Description Verifies local credentials and returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse "Session token and user"
// @Failure 401 {object} ErrorResponse "Unauthorized - bad credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil && strings.Contains(req.Username, "@") {
			user, err = h.userRepo.FindByEmail(strings.ToLower(req.Username))
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
				return
			}
		}

		if user == nil || !user.CheckPassword(req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, err := h.tokens.IssueSessionToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue session token"))
			return
		}

		h.responder.WriteJSON(w, SessionResponse{Token: token, User: user})
	}
}

// forgotPassword always answers with the same message whether or not the
// email belongs to an account, so the endpoint cannot be used to probe for
// registered addresses.
func (h authHandler) forgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("forgot password", err))
			return
		}

		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}

		user, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to look up account for password reset")
		}

		if user != nil {
			token, err := h.tokens.IssueResetToken(user.Email)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to issue password reset token")
			} else {
				link := fmt.Sprintf("%s/reset-password?token=%s", h.frontendURL, token)
				body := fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password. It expires in one hour.\n\n%s", user.Username, link)
				if err := h.mailer.Send(user.Email, "Password Reset", body); err != nil {
					h.logger.Error().Err(err).Msg("Failed to send password reset email")
				}
			}
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "If an account with that email exists, a reset link has been sent.",
		})
	}
}

// resetPassword consumes a reset token and sets a new password
func (h authHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token    string `json:"token"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("reset password", err))
			return
		}

		if len(req.Password) < 8 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 8 characters"))
			return
		}

		email, err := h.tokens.VerifyResetToken(req.Token)
		if err != nil {
			if errs.IsTokenExpired(err) {
				h.responder.WriteError(w, errs.NewTokenExpiredError())
			} else {
				h.responder.WriteError(w, errs.NewTokenInvalidError())
			}
			return
		}

		user, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewTokenInvalidError())
			return
		}

		if err := user.SetPassword(req.Password); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Password updated successfully."})
	}
}

// logout acknowledges the sign-out. Session tokens are stateless, so the
// client discards its token; there is nothing to revoke server side.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{"message": "Logged out successfully."})
	}
}

// getProfile returns the authenticated user's account
func (h authHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, err := h.userRepo.FindByID(*userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

type profileUpdateRequest struct {
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	Bio                *string `json:"bio"`
	ProfileImage       *string `json:"profileImage"`
	EmailNotifications *bool   `json:"emailNotifications"`
}

// updateProfile partially updates the authenticated user's account.
// Username, email and admin status are not editable here.
func (h authHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxUserID(r.Context())
		if userID == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, err := h.userRepo.FindByID(*userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile", err))
			return
		}

		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.ProfileImage != nil {
			user.ProfileImage = *req.ProfileImage
		}
		if req.EmailNotifications != nil {
			user.EmailNotifications = *req.EmailNotifications
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// oauthRedirect starts the provider login flow. The random state is kept
// in a short-lived cookie and checked again on the callback.
func (h authHandler) oauthRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")

		state := uuid.NewString()
		authURL, err := h.oauth.AuthURL(provider, state)
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("unknown oauth provider"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// oauthCallback finishes the provider flow: verifies state, exchanges the
// code, links or creates the account and hands the session token to the
// frontend via redirect.
func (h authHandler) oauthCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")

		stateCookie, err := r.Cookie(oauthStateCookie)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			h.responder.WriteError(w, errs.NewBadRequestError("oauth state mismatch"))
			return
		}

		// Expire the state cookie regardless of outcome
		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		code := r.URL.Query().Get("code")
		if code == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing authorization code"))
			return
		}

		identity, err := h.oauth.Exchange(r.Context(), provider, code)
		if err != nil {
			h.logger.Error().Err(err).Str("provider", provider).Msg("OAuth code exchange failed")
			h.responder.WriteError(w, errs.NewUnauthorizedError("oauth exchange failed"))
			return
		}

		user, err := h.oauth.LinkOrCreate(identity)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.tokens.IssueSessionToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue session token"))
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/oauth/callback?token=%s", h.frontendURL, token), http.StatusFound)
	}
}
