package constants

import "time"

const (
	// ContextKeyUsername is the gin context key holding the authenticated caller.
	ContextKeyUsername = "username"

	MinPasswordLength = 8

	// MaxCollaborators is the number of collaborator slots on a project.
	MaxCollaborators = 2

	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 24 * time.Hour

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)
