// Package service defines the search service interface and its supporting
// types. It is the seam between the transports (REST, WebSocket, MCP, CLI)
// and the storage and algorithm layers: transports depend on SearchService,
// and the map and run stores implement the manager interfaces declared here.
package service
