package service

import (
	"time"

	"github.com/google/uuid"

	jwtpkg "vertgarden/gardenhub/pkg/jwt"
)

// nowFunc lets tests pin the clock.
type nowFunc = func() time.Time

var defaultNow nowFunc = time.Now

func claimsSubject(claims *jwtpkg.Claims) (uuid.UUID, error) {
	return uuid.Parse(claims.Subject)
}
