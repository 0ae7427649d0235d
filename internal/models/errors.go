package models

import "errors"

// Domain errors surfaced by the storage layer and mapped to HTTP
// statuses at the request boundary.
var (
	// ErrNameTaken is returned when a signup name is already registered.
	ErrNameTaken = errors.New("name already taken")
	// ErrNoSuchUser is returned when a referenced user does not exist.
	ErrNoSuchUser = errors.New("no such user")
	// ErrWrongCode is returned when the access code does not match.
	ErrWrongCode = errors.New("wrong code")
	// ErrWrongDirection is returned when an ask does not run girl -> guy.
	ErrWrongDirection = errors.New("only girls can ask out guys")
	// ErrAlreadyPaired is returned when either endpoint already has a partner.
	ErrAlreadyPaired = errors.New("already taken")
	// ErrAskNotFound is returned for an unknown ask id.
	ErrAskNotFound = errors.New("ask not found")
	// ErrNotPending is returned when resolving an already resolved ask.
	ErrNotPending = errors.New("ask already resolved")
	// ErrForbidden is returned when the actor is not the authorized endpoint.
	ErrForbidden = errors.New("not allowed")
)
