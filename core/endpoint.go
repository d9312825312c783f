package core

// Endpoint is a framework-agnostic route description. HTTP adapters bind
// a handler to each OperationID.
type Endpoint struct {
	Path      string
	Method    string
	Protected bool
	Metadata  EndpointMetadata
}

type EndpointMetadata struct {
	OperationID string
	Description string
}

// ErrorResponse represents an error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
