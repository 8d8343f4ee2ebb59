package interfaces

import "iex-insight/src/models"

// -----------------------------------------------------------------------------
// ISessionStore retains recent per-session query history as contextual hints.
// Eventually consistent: lost entries must never cause query failures.
// -----------------------------------------------------------------------------

type ISessionStore interface {

	// Append records one exchange and returns the session id (a fresh one
	// when sessionID is empty).
	Append(sessionID string, msg models.MSessionMessage) string

	// -----------------------------------------------------------------------------

	// History returns the retained messages for a session, oldest first.
	// Unknown or expired sessions return nil.
	History(sessionID string) []models.MSessionMessage

	// -----------------------------------------------------------------------------

	// Stop terminates the eviction loop.
	Stop()
}
