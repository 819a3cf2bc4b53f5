package models

// Actor is the identity an interaction is attributed to: an authenticated
// user id, or the caller's network address when anonymous. Exactly one side
// is set. The same person liking once anonymously and once logged in is
// tracked as two independent actors; that is expected behavior, not a bug.
type Actor struct {
	UserID    *uint
	IPAddress string
}

func AuthenticatedActor(userID uint) Actor {
	return Actor{UserID: &userID}
}

func AnonymousActor(ip string) Actor {
	return Actor{IPAddress: ip}
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != nil
}
