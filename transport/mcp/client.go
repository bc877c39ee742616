package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pvera/gridpath/pathfind/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Search Engine",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Search Engine - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server runs graph search algorithms over 2D grid maps. Maps are text
layouts where O is an obstacle, S is the start, G is the goal, and R/M/W are
road/mud/water terrain with movement costs 1/5/10.

AVAILABLE TOOLS:
- list_maps: List the stored maps
- describe_map: Show a map's layout and dimensions
- list_algorithms: Names accepted by run_search
- run_search: Run one algorithm on a map, returns path, cost and statistics
- get_run: Retrieve a stored run by ID
- run_trace: Paginated expansion trace of a run
- compare_algorithms: Run several algorithms on one map side by side

Algorithm names: bfs, dfs, dls, ucs, astar, bds. Only dls consults the
depth_limit parameter.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Maps
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List all stored grid maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_map",
		Description: "Show a map's layout, dimensions, start and goal",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier, e.g. corridor",
				},
			},
			Required: []string{"map"},
		},
	}, c.handleDescribeMap)

	// Algorithms
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_algorithms",
		Description: "List registered algorithm names",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListAlgorithms)

	// Runs
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_search",
		Description: "Run one search algorithm on a map and store the result as a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier (optional, defaults to the server's default map)",
				},
				"algorithm": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dfs", "dls", "ucs", "astar", "bds"},
					"description": "Algorithm to run",
				},
				"depth_limit": map[string]interface{}{
					"type":        "integer",
					"description": "Depth bound, only consulted by dls",
				},
			},
			Required: []string{"algorithm"},
		},
	}, c.handleRunSearch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Retrieve a stored run by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_trace",
		Description: "Get the paginated expansion trace of a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "States per page",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleRunTrace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_algorithms",
		Description: "Run several algorithms on one map and compare cost and expansions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "Map identifier (optional, defaults to the server's default map)",
				},
				"algorithms": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"bfs", "dfs", "dls", "ucs", "astar", "bds"},
					},
					"description": "Algorithms to compare (empty means all registered)",
				},
				"depth_limit": map[string]interface{}{
					"type":        "integer",
					"description": "Depth bound, only consulted by dls",
				},
			},
		},
	}, c.handleCompareAlgorithms)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var maps []service.MapInfo
	err := c.apiCall("GET", "/api/maps", nil, &maps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Maps (%d):\n\n", len(maps))
	for _, m := range maps {
		result += fmt.Sprintf("- %s (%dx%d, start (%d,%d), goal (%d,%d), %d obstacles)\n",
			m.MapID, m.Height, m.Width,
			m.Start.Row, m.Start.Col, m.Goal.Row, m.Goal.Col, m.Obstacles)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)

	var detail service.MapDetail
	err := c.apiCall("GET", fmt.Sprintf("/api/maps/%s", mapName), nil, &detail)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMapDetail(&detail)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListAlgorithms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Algorithms []string `json:"algorithms"`
	}

	err := c.apiCall("GET", "/api/algorithms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Registered Algorithms:\n\n"
	for _, name := range response.Algorithms {
		result += fmt.Sprintf("- %s\n", name)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRunSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)
	algorithm, _ := args["algorithm"].(string)

	body := map[string]interface{}{
		"map":       mapName,
		"algorithm": algorithm,
	}
	if depthLimit, ok := args["depth_limit"].(float64); ok {
		body["depth_limit"] = int(depthLimit)
	}

	var run service.RunInfo
	err := c.apiCall("POST", "/api/runs", body, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRunInfo(&run)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var run service.RunInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s", runID), nil, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRunInfo(&run)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRunTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var trace service.TracePage
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/trace%s", runID, params), nil, &trace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatTracePage(runID, &trace)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCompareAlgorithms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapName, _ := args["map"].(string)
	algorithmsRaw, _ := args["algorithms"].([]interface{})

	algorithms := make([]string, 0, len(algorithmsRaw))
	for _, a := range algorithmsRaw {
		if name, ok := a.(string); ok {
			algorithms = append(algorithms, name)
		}
	}

	body := map[string]interface{}{
		"map":        mapName,
		"algorithms": algorithms,
	}
	if depthLimit, ok := args["depth_limit"].(float64); ok {
		body["depth_limit"] = int(depthLimit)
	}

	var result service.CompareResult
	err := c.apiCall("POST", "/api/compare", body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatCompareResult(&result)
	return mcp.NewToolResultText(response), nil
}

// Formatting helpers

func formatMapDetail(detail *service.MapDetail) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Map: %s (%dx%d)\n", detail.MapID, detail.Height, detail.Width))
	b.WriteString(fmt.Sprintf("Start: (%d,%d) | Goal: (%d,%d) | Obstacles: %d\n\n",
		detail.Start.Row, detail.Start.Col,
		detail.Goal.Row, detail.Goal.Col, detail.Obstacles))
	for _, line := range detail.Layout {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nLegend: O obstacle, S start, G goal, F free, R road (1), M mud (5), W water (10)")
	return b.String()
}

func formatRunInfo(run *service.RunInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run: %s\nMap: %s | Algorithm: %s | Elapsed: %.2fms\n\n",
		run.ID, run.MapName, run.Algorithm, run.ElapsedMS))

	r := run.Result
	if r == nil {
		b.WriteString("No result available")
		return b.String()
	}

	if r.Found {
		b.WriteString(fmt.Sprintf("Path found: cost %v, %d edges\n", r.Cost, r.PathLen()))
		b.WriteString("Path: ")
		for i, s := range r.Path {
			if i > 0 {
				b.WriteString(" -> ")
			}
			b.WriteString(fmt.Sprintf("(%d,%d)", s.Row, s.Col))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No path found\n")
	}

	b.WriteString(fmt.Sprintf("Expanded: %d states | Frontier max: %d\n", r.Expanded, r.FrontierMax))
	return b.String()
}

func formatTracePage(runID string, trace *service.TracePage) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Expansion Trace for %s (Page %d/%d) - Total: %d\n\n",
		runID, trace.Page, trace.TotalPages, trace.TotalStates))

	for i, s := range trace.Trace {
		num := (trace.Page-1)*trace.PageSize + i + 1
		b.WriteString(fmt.Sprintf("%d. (%d,%d)\n", num, s.Row, s.Col))
	}

	if trace.HasNext {
		b.WriteString(fmt.Sprintf("\nNext: page=%d", trace.Page+1))
	}
	return b.String()
}

func formatCompareResult(result *service.CompareResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Comparison on map %s:\n\n", result.MapName))
	b.WriteString(fmt.Sprintf("%-8s %-6s %-8s %-8s %-9s %-9s %s\n",
		"algo", "found", "cost", "pathlen", "expanded", "frontier", "elapsed"))

	for _, row := range result.Rows {
		if row.Error != "" {
			b.WriteString(fmt.Sprintf("%-8s error: %s\n", row.Algorithm, row.Error))
			continue
		}
		b.WriteString(fmt.Sprintf("%-8s %-6v %-8.1f %-8d %-9d %-9d %.2fms\n",
			row.Algorithm, row.Found, row.Cost, row.PathLen,
			row.Expanded, row.FrontierMax, row.ElapsedMS))
	}
	return b.String()
}
