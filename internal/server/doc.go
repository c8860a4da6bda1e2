// Package server implements the MCP (Model Context Protocol) server for
// image shape statistics.
//
// The server speaks JSON-RPC 2.0 over stdio: one request per line on stdin,
// one response per line on stdout. Requests are handled sequentially and no
// state is kept between them; every tool call scans or loads afresh.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - shapes_scan: Count image shapes in a directory, optionally saving the table
//   - shapes_load: Load a previously saved table
//   - shapes_summary: Distinct shapes, totals, most common shape and extremes
//   - shapes_chart: Bubble chart of the distribution as base64 PNG
//
// shapes_summary and shapes_chart take either "directory" (with the scan
// flags) or "path" to a saved table.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, naming the directory or file involved
//
// # Usage
//
//	srv := server.New(version, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
