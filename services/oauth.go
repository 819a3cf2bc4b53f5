package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Identity is what an external provider yields after a completed
// redirect exchange. The token-exchange internals stay behind this
// boundary; callers only ever see a verified email plus the provider ids.
type Identity struct {
	Email      string
	ExternalID string
	Provider   string
}

type oauthProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// OAuthService drives the redirect-based exchange with external identity
// providers and binds the resulting identity to a local user.
type OAuthService struct {
	providers map[string]oauthProvider
	users     *database.UserRepo
	logger    zerolog.Logger
}

func NewOAuthService(users *database.UserRepo, logger zerolog.Logger) *OAuthService {
	return &OAuthService{
		providers: make(map[string]oauthProvider),
		users:     users,
		logger:    logger.With().Str("service", "oauth").Logger(),
	}
}

// Register adds a provider. userInfoURL must answer an authenticated GET
// with a JSON document carrying "id" and "email" fields.
func (s *OAuthService) Register(name string, config *oauth2.Config, userInfoURL string) {
	s.providers[name] = oauthProvider{config: config, userInfoURL: userInfoURL}
}

// AuthURL returns the provider's consent-page URL for the given CSRF state.
func (s *OAuthService) AuthURL(provider, state string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", errs.NewNotFoundError("unknown oauth provider")
	}
	return p.config.AuthCodeURL(state), nil
}

// Exchange trades the authorization code for the provider-verified identity.
func (s *OAuthService) Exchange(ctx context.Context, provider, code string) (Identity, error) {
	p, ok := s.providers[provider]
	if !ok {
		return Identity{}, errs.NewNotFoundError("unknown oauth provider")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedError("oauth code exchange failed")
	}

	resp, err := p.config.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return Identity{}, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("user info endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("reading user info: %w", err)
	}

	// Providers disagree on the id type (github sends a number, google a
	// string); keep it raw and normalize.
	var info struct {
		ID    json.RawMessage `json:"id"`
		Email string          `json:"email"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return Identity{}, fmt.Errorf("decoding user info: %w", err)
	}
	if info.Email == "" {
		return Identity{}, errs.NewUnauthorizedError("provider returned no email")
	}

	externalID := strings.Trim(string(info.ID), `"`)
	return Identity{Email: info.Email, ExternalID: externalID, Provider: provider}, nil
}

// LinkOrCreate resolves the identity to a local user. On first sight of an
// email a user is created with a random unusable local password and the
// provider binding stored; an existing account without a binding gets
// linked on its next provider login.
func (s *OAuthService) LinkOrCreate(identity Identity) (*models.User, error) {
	user, err := s.users.FindByEmail(identity.Email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}

	if user == nil {
		user = &models.User{
			Username:      usernameFromEmail(identity.Email),
			Email:         identity.Email,
			OAuthProvider: identity.Provider,
			OAuthID:       identity.ExternalID,
		}
		// Random filler password; the provider binding is the auth path.
		if err := user.SetPassword(uuid.NewString()); err != nil {
			return nil, err
		}
		if err := s.users.Add(user); err != nil {
			return nil, errs.NewDatabaseError("create", "user", err)
		}
		s.logger.Info().Str("provider", identity.Provider).Msg("user created from oauth identity")
		return user, nil
	}

	if user.OAuthProvider == "" {
		user.OAuthProvider = identity.Provider
		user.OAuthID = identity.ExternalID
		if err := s.users.Update(user); err != nil {
			return nil, errs.NewDatabaseError("update", "user", err)
		}
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
