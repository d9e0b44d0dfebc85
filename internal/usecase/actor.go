package usecase

import "strings"

// Actor is the authenticated identity handed to us by the (external) auth
// layer: the organization every lookup is scoped to and the user recorded
// for audit attribution.
type Actor struct {
	OrganizationID string
	UserID         string
}

func (a Actor) normalized() Actor {
	return Actor{
		OrganizationID: strings.TrimSpace(a.OrganizationID),
		UserID:         strings.TrimSpace(a.UserID),
	}
}
