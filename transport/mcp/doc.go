// Package mcp provides a Model Context Protocol interface for the grid
// search engine.
//
// The package implements a thin MCP client that proxies every tool call to
// the REST API server, so the MCP surface and the HTTP surface always agree
// on behavior.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_maps: List stored grid maps
//   - describe_map: Show a map's layout and dimensions
//   - list_algorithms: Registered algorithm names
//   - run_search: Run one algorithm on a map and store the run
//   - get_run: Retrieve a stored run by ID
//   - run_trace: Paginated expansion trace of a run
//   - compare_algorithms: Run several algorithms on one map side by side
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
