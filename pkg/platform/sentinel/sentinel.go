package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation outcomes:
// - ErrNotFound: entity does not exist in store
// - ErrNotSetUp: collaborator was never initialized
// - ErrNotReady: collaborator is initialized but has not loaded its data yet
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: service or resource temporarily unavailable
//
// For bad input use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrNotSetUp     = errors.New("not set up")
	ErrNotReady     = errors.New("not ready")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
