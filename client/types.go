package client

import "time"

// Device is one hub entity as reported by the bridge.
type Device struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// EntityResult is the outcome of one service call within a command.
type EntityResult struct {
	EntityID string `json:"entity_id"`
	Action   string `json:"action"`
	Success  bool   `json:"success"`
}

// CommandResult is the outcome of a natural-language control command.
// A non-empty Error means the request itself failed and the other fields
// are zero.
type CommandResult struct {
	ID        string         `json:"id"`
	Command   string         `json:"command"`
	Success   bool           `json:"success"`
	Results   []EntityResult `json:"results"`
	Timestamp time.Time      `json:"timestamp"`
	Error     string         `json:"error,omitempty"`
}

// DeviceList is the bridge's device inventory.
type DeviceList struct {
	Devices []Device `json:"devices"`
	Count   int      `json:"count"`
	Error   string   `json:"error,omitempty"`
}

// Analysis is the outcome of an image analysis request.
type Analysis struct {
	EntityID string `json:"entity_id"`
	Prompt   string `json:"prompt"`
	Analysis string `json:"analysis"`
	Error    string `json:"error,omitempty"`
}

// Suggestion is a proposed automation from the bridge.
type Suggestion struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	AutomationYAML string `json:"automation_yaml"`
}

// SuggestionResult is the outcome of an automation suggestion request.
type SuggestionResult struct {
	Trigger    string     `json:"trigger"`
	Action     string     `json:"action"`
	Suggestion Suggestion `json:"suggestion"`
	Error      string     `json:"error,omitempty"`
}

// Features reports which bridge features are enabled.
type Features struct {
	VoiceControl     bool `json:"voice_control"`
	Automations      bool `json:"automations"`
	ImageRecognition bool `json:"image_recognition"`
}

// Status is the bridge's status report.
type Status struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	Features     Features `json:"features"`
	DevicesCount int      `json:"devices_count"`
	Error        string   `json:"error,omitempty"`
}

// ConversationResult is the outcome of one conversational exchange.
type ConversationResult struct {
	Message       string `json:"message"`
	Response      string `json:"response"`
	HistoryLength int    `json:"history_length"`
	Error         string `json:"error,omitempty"`
}
