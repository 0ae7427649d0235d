package config

import "time"

const (
	// Participants
	NameMaxLen = 40
	CodeMinLen = 4
	BcryptCost = 10

	// Asks
	MessageMaxLen = 280

	// Sessions
	SessionTTL        = 7 * 24 * time.Hour
	SessionCookieName = "cotillion_session"

	// Storage
	AcceptMaxRetries = 3
)
