// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting.
//
// Every command that accepts --json writes exactly one JSONResponse
// envelope to stdout. Human-readable messages go to stderr in JSON mode.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/link2clash-tui/internal/convert"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Details describes a structured error, when there is one
	Details map[string]interface{} `json:"details,omitempty"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the JSON response to w, indented.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// ConvertData represents the data returned by the convert command.
type ConvertData struct {
	Proxies  string              `json:"proxies"`
	Groups   string              `json:"groups"`
	Document string              `json:"document"`
	Composed bool                `json:"composed"`
	Errors   []convert.ItemError `json:"errors"`
	Copied   string              `json:"copied,omitempty"`
	Output   string              `json:"output,omitempty"`
}

// ComposeData represents the data returned by the compose command.
type ComposeData struct {
	Document string `json:"document"`
	Output   string `json:"output,omitempty"`
}

// ConfigPathData represents the data returned by "config path".
type ConfigPathData struct {
	Dir  string `json:"dir"`
	TOML string `json:"toml"`
	JSON string `json:"json"`
}
