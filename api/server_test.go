package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/models"
	"github.com/GuilhermeFusuma/portifolio/services"
	"github.com/go-chi/chi/v5"
	zl "github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminEmail = "admin@example.com"

type nullMailer struct{}

func (nullMailer) Send(to, subject, body string) error { return nil }

func newTestRouter(t *testing.T) *chi.Mux {
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

	deps := Dependencies{
		Tokens:      services.NewTokenService([]byte("test-secret"), 0, 0),
		OAuth:       services.NewOAuthService(database.New(db).UserRepo(), zl.Logger),
		Mailer:      nullMailer{},
		Store:       services.DisabledStore{},
		Actors:      services.ActorResolver{},
		AdminEmail:  testAdminEmail,
		FrontendURL: "http://frontend.test",
	}

	return newRouter(database.New(db), deps)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func registerUser(t *testing.T, router http.Handler, username, email string) (string, models.User) {
	t.Helper()

	rec := doJSON(t, router, "POST", "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	var session SessionResponse
	decodeBody(t, rec, &session)
	return session.Token, *session.User
}

func TestRegisterGrantsAdminToConfiguredEmail(t *testing.T) {
	router := newTestRouter(t)

	_, admin := registerUser(t, router, "admin", testAdminEmail)
	if !admin.IsAdmin {
		t.Error("account with the configured admin email should be admin")
	}

	_, visitor := registerUser(t, router, "visitor", "visitor@example.com")
	if visitor.IsAdmin {
		t.Error("ordinary account should not be admin")
	}
}

func TestLoginFlow(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice", "alice@example.com")

	rec := doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status %d, want 401", rec.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	router := newTestRouter(t)
	adminToken, _ := registerUser(t, router, "admin", testAdminEmail)

	// Create a published project
	rec := doJSON(t, router, "POST", "/admin/project", adminToken, map[string]any{
		"title":       "Portfolio Site",
		"description": "My personal site",
		"status":      "published",
		"tags":        []string{"Go", "Web"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Project
	decodeBody(t, rec, &created)
	if created.Slug != "portfolio-site" {
		t.Errorf("slug = %q, want %q", created.Slug, "portfolio-site")
	}
	if len(created.Tags) != 2 {
		t.Errorf("tags = %d, want 2", len(created.Tags))
	}

	// Visible in the public listing
	rec = doJSON(t, router, "GET", "/projects", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list projects: status %d", rec.Code)
	}
	var listing ProjectCollection
	decodeBody(t, rec, &listing)
	if listing.Total != 1 {
		t.Errorf("public listing total = %d, want 1", listing.Total)
	}

	// Detail bumps the view counter
	rec = doJSON(t, router, "GET", "/project/portfolio-site", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get project: status %d", rec.Code)
	}
	var detail ProjectDetail
	decodeBody(t, rec, &detail)
	if detail.Project.ViewsCount != 1 {
		t.Errorf("ViewsCount = %d, want 1", detail.Project.ViewsCount)
	}
	if detail.Liked {
		t.Error("fresh project should not be liked")
	}

	// Delete removes it from the public surface
	rec = doJSON(t, router, "DELETE", "/admin/project/"+itoa(created.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete project: status %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, "GET", "/project/portfolio-site", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted project: status %d, want 404", rec.Code)
	}
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	router := newTestRouter(t)
	adminToken, _ := registerUser(t, router, "admin", testAdminEmail)

	rec := doJSON(t, router, "POST", "/admin/project", adminToken, map[string]any{
		"title":       "Secret Work",
		"description": "not ready",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/projects", "", nil)
	var listing ProjectCollection
	decodeBody(t, rec, &listing)
	if listing.Total != 0 {
		t.Errorf("drafts leaked into public listing, total = %d", listing.Total)
	}

	rec = doJSON(t, router, "GET", "/project/secret-work", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft detail: status %d, want 404", rec.Code)
	}

	// Admin listing still sees it
	rec = doJSON(t, router, "GET", "/admin/projects", adminToken, nil)
	decodeBody(t, rec, &listing)
	if listing.Total != 1 {
		t.Errorf("admin listing total = %d, want 1", listing.Total)
	}
}

func TestLikeToggleForAnonymousAndAuthenticated(t *testing.T) {
	router := newTestRouter(t)
	adminToken, _ := registerUser(t, router, "admin", testAdminEmail)
	userToken, _ := registerUser(t, router, "fan", "fan@example.com")

	rec := doJSON(t, router, "POST", "/admin/project", adminToken, map[string]any{
		"title": "Liked Project", "description": "d", "status": "published",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d", rec.Code)
	}

	// Anonymous like
	rec = doJSON(t, router, "POST", "/project/liked-project/like", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous like: status %d, body %s", rec.Code, rec.Body.String())
	}
	var result services.LikeResult
	decodeBody(t, rec, &result)
	if result.Status != services.LikeStatusLiked || result.Count != 1 {
		t.Errorf("anonymous like = %+v, want liked/1", result)
	}

	// Authenticated user is a distinct actor
	rec = doJSON(t, router, "POST", "/project/liked-project/like", userToken, nil)
	decodeBody(t, rec, &result)
	if result.Status != services.LikeStatusLiked || result.Count != 2 {
		t.Errorf("authenticated like = %+v, want liked/2", result)
	}

	// Toggling again removes only the user's like
	rec = doJSON(t, router, "POST", "/project/liked-project/like", userToken, nil)
	decodeBody(t, rec, &result)
	if result.Status != services.LikeStatusUnliked || result.Count != 1 {
		t.Errorf("authenticated unlike = %+v, want unliked/1", result)
	}
}

func TestCommentModerationFlow(t *testing.T) {
	router := newTestRouter(t)
	adminToken, _ := registerUser(t, router, "admin", testAdminEmail)
	userToken, _ := registerUser(t, router, "critic", "critic@example.com")

	rec := doJSON(t, router, "POST", "/admin/project", adminToken, map[string]any{
		"title": "Discussed", "description": "d", "status": "published",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d", rec.Code)
	}

	// Anonymous commenting is rejected
	rec = doJSON(t, router, "POST", "/project/discussed/comment", "", map[string]string{"content": "anon"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous comment: status %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/project/discussed/comment", userToken, map[string]string{"content": "well done"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: status %d, body %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	decodeBody(t, rec, &comment)

	// Hidden until approved
	rec = doJSON(t, router, "GET", "/project/discussed", "", nil)
	var detail ProjectDetail
	decodeBody(t, rec, &detail)
	if len(detail.Comments) != 0 {
		t.Errorf("unapproved comments visible: %d", len(detail.Comments))
	}

	// Shows up in the moderation queue
	rec = doJSON(t, router, "GET", "/admin/comments", adminToken, nil)
	var queue CommentCollection
	decodeBody(t, rec, &queue)
	if queue.Total != 1 {
		t.Errorf("moderation queue total = %d, want 1", queue.Total)
	}

	rec = doJSON(t, router, "POST", "/admin/comment/"+itoa(comment.ID)+"/approve", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/project/discussed", "", nil)
	decodeBody(t, rec, &detail)
	if len(detail.Comments) != 1 {
		t.Errorf("approved comments visible = %d, want 1", len(detail.Comments))
	}

	rec = doJSON(t, router, "DELETE", "/admin/comment/"+itoa(comment.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete comment: status %d", rec.Code)
	}
	rec = doJSON(t, router, "GET", "/project/discussed", "", nil)
	decodeBody(t, rec, &detail)
	if len(detail.Comments) != 0 {
		t.Errorf("deleted comment still visible")
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router := newTestRouter(t)
	userToken, _ := registerUser(t, router, "pleb", "pleb@example.com")

	cases := []struct {
		method, path string
	}{
		{"GET", "/admin/dashboard"},
		{"GET", "/admin/projects"},
		{"POST", "/admin/project"},
		{"GET", "/admin/comments"},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, tc.method, tc.path, userToken, map[string]string{})
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: status %d, want 403", tc.method, tc.path, rec.Code)
		}

		rec = doJSON(t, router, tc.method, tc.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s unauthenticated: status %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestPasswordResetFlow(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "bob", "bob@example.com")

	// The response is identical whether or not the account exists.
	for _, email := range []string{"bob@example.com", "ghost@example.com"} {
		rec := doJSON(t, router, "POST", "/auth/forgot-password", "", map[string]string{"email": email})
		if rec.Code != http.StatusOK {
			t.Errorf("forgot-password %s: status %d, want 200", email, rec.Code)
		}
	}

	// Reset with a directly issued token
	tokens := services.NewTokenService([]byte("test-secret"), 0, 0)
	token, err := tokens.IssueResetToken("bob@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	rec := doJSON(t, router, "POST", "/auth/reset-password", "", map[string]string{
		"token":    token,
		"password": "new-password-42",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset-password: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"username": "bob",
		"password": "new-password-42",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password: status %d, want 200", rec.Code)
	}
	rec = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"username": "bob",
		"password": "password123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login with old password: status %d, want 401", rec.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "carol", "carol@example.com")

	rec := doJSON(t, router, "PUT", "/profile", token, map[string]any{
		"firstName": "Carol",
		"bio":       "I build things",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/profile", token, nil)
	var user models.User
	decodeBody(t, rec, &user)
	if user.FirstName != "Carol" || user.Bio != "I build things" {
		t.Errorf("profile = %+v, want updated fields", user)
	}

	rec = doJSON(t, router, "GET", "/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated profile: status %d, want 401", rec.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
