package api

import (
	"net/http"

	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/GuilhermeFusuma/portifolio/models"
)

// adminGate checks the admin capability per request rather than per route
// group. The check reads the account row so a revoked admin flag takes
// effect immediately, not at next login.
type adminGate struct {
	userRepo *database.UserRepo
}

func (g adminGate) requireAdmin(r *http.Request) (*models.User, error) {
	userID := ctxUserID(r.Context())
	if userID == nil {
		return nil, errs.NewMissingTokenError()
	}

	user, err := g.userRepo.FindByID(*userID)
	if err != nil {
		return nil, wrapDatabaseError("find user", "user", err)
	}
	if user == nil || !user.IsAdmin {
		return nil, errs.NewForbiddenError("admin access required")
	}
	return user, nil
}
