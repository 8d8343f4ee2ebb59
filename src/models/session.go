package models

import "time"

// -----------------------------------------------------------------------------
// Session history structures
// -----------------------------------------------------------------------------

// MSessionMessage is one question/answer exchange retained as a contextual
// hint. Losing these entries never affects query correctness.
type MSessionMessage struct {
	Text      string      `json:"text"`
	Intent    QueryIntent `json:"intent"`
	Filter    MFilterSpec `json:"filter"`
	AskedAt   time.Time   `json:"asked_at"`
	Answered  bool        `json:"answered"`
	ResultTag ResultType  `json:"result_tag,omitempty"`
}

// -----------------------------------------------------------------------------

// MQueryLog is one persisted audit entry for the history store.
type MQueryLog struct {
	SessionID  string      `json:"session_id"`
	Text       string      `json:"text"`
	Intent     QueryIntent `json:"intent"`
	ResultType ResultType  `json:"result_type"`
	MatchCount int         `json:"match_count"`
	ElapsedMs  int64       `json:"elapsed_ms"`
	CreatedAt  time.Time   `json:"created_at"`
}
