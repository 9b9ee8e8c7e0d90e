package api

import "github.com/himanshu0072451/homelink/domain/entities"

// PowerRequest represents the request payload for a power command
type PowerRequest struct {
	Command string `json:"command" validate:"required,oneof=ON OFF"`
}

// ApplianceResponse is the read-only display state of the control surface
type ApplianceResponse struct {
	State      entities.PowerState `json:"state"`
	Phase      string              `json:"phase"`
	Error      string              `json:"error,omitempty"`
	Listening  bool                `json:"listening"`
	Transcript string              `json:"transcript,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
