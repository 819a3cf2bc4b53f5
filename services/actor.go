package services

import (
	"net"
	"net/http"

	"github.com/GuilhermeFusuma/portifolio/models"
)

// ActorResolver maps a request to the single identity an interaction is
// attributed to: the authenticated user when a session is present,
// otherwise the caller's network address.
//
// TrustProxyHeaders is a configurable trust boundary, not a security
// guarantee: the X-Real-IP header is honored only when the deployment sits
// behind a reverse proxy that is known to set it, since clients can spoof
// it freely otherwise.
type ActorResolver struct {
	TrustProxyHeaders bool
}

// Resolve returns the actor for the request. userID is the authenticated
// user from the session middleware, nil when anonymous.
func (res ActorResolver) Resolve(r *http.Request, userID *uint) models.Actor {
	if userID != nil {
		return models.AuthenticatedActor(*userID)
	}
	return models.AnonymousActor(res.ClientIP(r))
}

// ClientIP returns the caller's network address, preferring the trusted
// proxy header when configured.
func (res ActorResolver) ClientIP(r *http.Request) string {
	if res.TrustProxyHeaders {
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			return realIP
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
