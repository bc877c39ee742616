// Package api provides the HTTP REST surface of the grid search engine.
//
// Endpoints:
//
// Run Management:
//   - POST /api/runs - Execute a search and store it as a run
//   - GET /api/runs - List runs (sort, limit query parameters)
//   - GET /api/runs/{id} - Get a specific run
//   - DELETE /api/runs/{id} - Delete a run
//   - GET /api/runs/{id}/trace - Paginated expansion trace
//   - GET /api/runs/{id}/render - ASCII or PNG rendering of the run
//   - POST /api/runs/{id}/replay - Stream the run to WebSocket viewers
//
// Comparison:
//   - POST /api/compare - Run several algorithms on one map
//
// Algorithms and Maps:
//   - GET /api/algorithms - Registered algorithm names
//   - GET /api/maps - List available maps
//   - POST /api/maps - Save a new map layout
//   - GET /api/maps/{name} - Full map detail including layout
//
// Request/Response Format:
//
// All endpoints accept and return JSON, except /api/runs/{id}/render with
// format=png which returns an image. A run request looks like:
//
//	{
//	  "map": "corridor",
//	  "algorithm": "astar",
//	  "depth_limit": 10   // only consulted by dls
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
