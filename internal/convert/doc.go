// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert provides the HTTP client for the link2clash conversion engine.
//
// The engine turns proxy share links (one per line) into Clash proxy entries and
// proxy-group member lines. This package only speaks its wire contract; it never
// inspects the link syntax or the returned lines.
//
// # Key Types
//
//   - Client: HTTP client for POST /api/convert
//   - Request / Response: the JSON bodies exchanged with the engine
//   - ItemError: a per-line failure reported inside a successful response
//   - ClientError: a failed request, classified as transport or engine failure
//
// # Usage
//
//	client := convert.NewClientWithConfig(&convert.ClientConfig{
//	    BaseURL: "http://127.0.0.1:7625",
//	})
//	resp, err := client.Convert(ctx, "vmess://...\ntrojan://...")
//	switch {
//	case convert.IsTransport(err):
//	    // network failure, nothing changed
//	case convert.IsEngine(err):
//	    // engine rejected the request, err.Error() carries its message
//	}
package convert
