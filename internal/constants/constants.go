package constants

import "time"

// Context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyPlan      = "plan"
)

// Invite token parameters
const (
	InviteTokenBytes = 20
	InviteTokenTTL   = 24 * time.Hour
)
