package models

// -----------------------------------------------------------------------------
// WebSocket command structures
// -----------------------------------------------------------------------------

// MQueryCommand is the message a WebSocket client sends to run a query.
type MQueryCommand struct {
	Command   string `json:"command"` // "query"
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
	Limit     int    `json:"limit,omitempty"`
}

// -----------------------------------------------------------------------------

// MWsEnvelope wraps every frame the server pushes to a WebSocket client.
type MWsEnvelope struct {
	Type   string        `json:"type"` // "WELCOME", "RESULT", "ERROR"
	Error  string        `json:"error,omitempty"`
	Result *MQueryResult `json:"result,omitempty"`
}
