// Package models holds the wire types of the backend HTTP contract.
package models

import (
	"github.com/hardcoreai/shell/pkg/peripherals"
)

// Response discriminants used by the /chat endpoint.
const (
	ResponseTypeCode          = "code"
	ResponseTypeText          = "text"
	ResponseTypeClarification = "clarification"
)

// Status values used by the /execute and /build endpoints.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Device is one detected hardware device.
type Device struct {
	Port     string `json:"port"`
	Board    string `json:"board"`
	ChipType string `json:"chipType,omitempty"`
}

// DetectResponse is the body of GET /detect.
type DetectResponse struct {
	Devices []Device `json:"devices"`
	Message string   `json:"message,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message       string `json:"message"`
	ProjectID     string `json:"project_id,omitempty"`
	BoardType     string `json:"board_type"`
	DetectedBoard string `json:"detected_board,omitempty"`
}

// ChatResponse is the body of a /chat reply. ResponseType discriminates
// between conversational text, clarification questions, and generated
// code; Firmware is only populated for code responses.
type ChatResponse struct {
	Status       string `json:"status"`
	ResponseType string `json:"response_type"`
	Message      string `json:"message,omitempty"`
	Firmware     string `json:"firmware,omitempty"`
	State        string `json:"state,omitempty"`
}

// ExecuteRequest is the body of POST /execute, the structured
// generation endpoint fed by the peripheral configuration panel.
type ExecuteRequest struct {
	Prompt           string              `json:"prompt"`
	BoardType        string              `json:"board_type"`
	ProjectID        string              `json:"project_id,omitempty"`
	PeripheralConfig *peripherals.Config `json:"peripheral_config,omitempty"`
	DetectedBoard    string              `json:"detected_board,omitempty"`
	DetectedPort     string              `json:"detected_port,omitempty"`
}

// ExecuteResponse is the body of an /execute reply.
type ExecuteResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Firmware  string `json:"firmware,omitempty"`
	BoardUsed string `json:"board_used,omitempty"`
	IsChat    bool   `json:"is_chat,omitempty"`
}

// BuildRequest is the body of POST /build.
type BuildRequest struct {
	ProjectPath string `json:"project_path"`
	Board       string `json:"board"`
}

// BuildResponse is the body of a /build reply.
type BuildResponse struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages,omitempty"`
}

// FlashRequest is the body of POST /flash.
type FlashRequest struct {
	Port  string `json:"port"`
	Board string `json:"board"`
}

// FlashResponse is the body of a /flash reply.
type FlashResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// APIKeyRequest is the body of POST /settings/api-key.
type APIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// APIKeyResponse is the body of a /settings/api-key reply.
type APIKeyResponse struct {
	OK bool `json:"ok"`
}
