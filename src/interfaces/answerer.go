package interfaces

import (
	"context"

	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------
// IAnswerer is the full pipeline contract the transport adapters (REST,
// WebSocket, MCP) depend on: free text and/or structured fields in, tagged
// result out. Implementations are stateless and safe for concurrent use.
// -----------------------------------------------------------------------------

type IAnswerer interface {

	// Answer classifies, filters, aggregates and shapes a response.
	// The only error it returns is a caller contract violation
	// (helpers.ValidationError); data absence is a success result.
	Answer(ctx context.Context, req models.MQueryRequest) (*models.MQueryResult, error)
}

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for serving data to external systems.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
