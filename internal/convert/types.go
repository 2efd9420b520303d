// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Request is the request body for the /api/convert endpoint.
// Input is forwarded verbatim, whitespace and empty lines included.
type Request struct {
	Input string `json:"input"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Response is the success body of the /api/convert endpoint.
// ProxyLines and GroupLines are newline-joined, pre-formatted output lines.
type Response struct {
	ProxyLines string      `json:"proxy_lines"`
	GroupLines string      `json:"group_lines"`
	Errors     []ItemError `json:"errors"`
}

// ItemError is a per-line conversion failure embedded in a successful response.
// Index is the engine's numbering of the offending input line (1-based).
type ItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// EngineError is the best-effort failure body returned with a non-2xx status.
type EngineError struct {
	Error string `json:"error"`
}

// HasEntries reports whether the engine produced any proxy entry text.
func (r *Response) HasEntries() bool {
	return r != nil && r.ProxyLines != ""
}

// HasGroups reports whether the engine produced any group member text.
func (r *Response) HasGroups() bool {
	return r != nil && r.GroupLines != ""
}

// Complete reports whether both output blobs are non-empty.
func (r *Response) Complete() bool {
	return r.HasEntries() && r.HasGroups()
}

// normalize replaces an absent error list with an empty one.
func (r *Response) normalize() {
	if r.Errors == nil {
		r.Errors = []ItemError{}
	}
}
