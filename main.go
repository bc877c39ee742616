// Command gridpath is the grid search engine server.
//
// The default mode serves the REST API, the WebSocket replay stream and an
// /mcp JSON endpoint over one HTTP listener. The stdio-mcp mode speaks MCP
// over stdin/stdout instead, reusing a running API server when one is
// reachable and spinning up a loopback-only one when not.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/pvera/gridpath/api"
	"github.com/pvera/gridpath/pathfind/mapstore"
	"github.com/pvera/gridpath/pathfind/runstore"
	"github.com/pvera/gridpath/pathfind/service"
	"github.com/pvera/gridpath/transport/mcp"
	"github.com/pvera/gridpath/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Grid Search Engine Server"
)

var (
	port         = flag.Int("port", 8080, "port the HTTP listener binds to")
	host         = flag.String("host", "localhost", "interface the HTTP listener binds to")
	mapDir       = flag.String("map-dir", defaultMapDir(), "directory holding .txt grid maps")
	debug        = flag.Bool("debug", false, "log with file:line prefixes")
	version      = flag.Bool("version", false, "print version and exit")
	ngrokEnabled = flag.Bool("ngrok", false, "expose the server through an ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "ngrok auth token; NGROK_AUTHTOKEN is also honored")
	ngrokDomain  = flag.String("ngrok-domain", "", "reserved ngrok domain to claim for the tunnel")
)

// defaultMapDir honors MAP_DIR when set so deployments can relocate the map
// directory without flags.
func defaultMapDir() string {
	if dir := os.Getenv("MAP_DIR"); dir != "" {
		return dir
	}
	return "assets/maps"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [mode]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Modes:\n")
		fmt.Fprintf(os.Stderr, "  server     serve the REST API, WebSocket replay and /mcp endpoint (default; alias: http)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp  speak MCP over stdin/stdout (aliases: mcp-stdio, mcp)\n")
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -port 9090              serve on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -map-dir ./maps server  serve maps from ./maps\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp               run as an MCP stdio backend\n", os.Args[0])
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env: %v", err)
		}
	} else {
		log.Println("Applied environment overrides from .env")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	mode := "server"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
	}

	log.Printf("%s v%s starting in %s mode", AppName, Version, mode)

	searchService, err := initializeServices()
	if err != nil {
		log.Fatalf("Service wiring failed: %v", err)
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(searchService)
	case "server", "http":
		runHTTPServer(searchService)
	default:
		log.Fatalf("Unknown mode %q; valid modes are server (default) and stdio-mcp", mode)
	}
}

// runHTTPServer serves the API, the replay hub and the /mcp endpoint until a
// shutdown signal arrives. An ngrok tunnel is added when requested by flag or
// environment.
func runHTTPServer(searchService service.SearchService) {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(searchService, hub)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("Listening on %s", addr)
		log.Printf("  REST API   http://%s/api", addr)
		log.Printf("  replay WS  ws://%s/ws?run=<run_id>", addr)
		log.Printf("  MCP        http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	wantTunnel := *ngrokEnabled
	if !wantTunnel {
		if v := os.Getenv("NGROK_ENABLED"); v == "true" || v == "1" {
			wantTunnel = true
		}
	}
	if wantTunnel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrokTunnel(ctx, mux)
		}()
	}

	sig := <-sigCh
	log.Printf("Caught %v, shutting down", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// mcpHTTPHandler answers MCP JSON-RPC messages posted over plain HTTP, so
// clients without stdio access can still reach the tools.
func mcpHTTPHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// serveNgrokTunnel claims a tunnel and serves the given handler through it
// until ctx is canceled. Missing credentials log a warning rather than abort
// the local server.
func serveNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}
	if authToken == "" {
		log.Println("WARNING: ngrok requested but no auth token found (-ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	tunnel := ngrokConfig.HTTPEndpoint()
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Claiming ngrok domain %s", domain)
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("ngrok tunnel failed to start: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("ngrok tunnel close error: %v", err)
		}
	}()

	log.Printf("ngrok tunnel up at %s", tun.URL())
	log.Printf("  REST API   %s/api", tun.URL())
	log.Printf("  replay WS  %s/ws?run=<run_id>", tun.URL())
	log.Printf("  MCP        %s/mcp", tun.URL())

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("ngrok serve error: %v", err)
	}
	log.Println("ngrok tunnel closed")
}

// initializeServices builds the map and run managers, restores persisted
// runs, and starts the background maintenance routines.
func initializeServices() (service.SearchService, error) {
	mapManager, err := mapstore.NewManager(*mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create map manager: %w", err)
	}

	persistence, err := runstore.NewFilePersistence("runs")
	if err != nil {
		return nil, fmt.Errorf("failed to create run persistence: %w", err)
	}

	runManager := runstore.NewManagerWithPersistence(persistence)
	if err := runManager.LoadPersistedRuns(); err != nil {
		log.Printf("Warning: could not restore persisted runs: %v", err)
	}

	searchService := service.NewSearchService(runManager, mapManager, nil)

	go runCleanupRoutine(runManager)
	go filesystemSyncRoutine(runManager, persistence)

	return searchService, nil
}

// runCleanupRoutine hourly drops runs idle for longer than a day.
func runCleanupRoutine(manager *runstore.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := manager.CleanupExpiredRuns(24 * time.Hour); removed > 0 {
			log.Printf("Expired %d idle runs", removed)
		}
	}
}

// filesystemSyncRoutine drops in-memory runs whose persistence files were
// deleted out-of-band, so removing a file under runs/ is enough to retire a
// run.
func filesystemSyncRoutine(manager *runstore.Manager, persistence runstore.RunPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		pruned := 0
		for _, run := range manager.List() {
			if !persistence.Exists(run.ID) {
				if err := manager.DeleteFromMemory(run.ID); err == nil {
					pruned++
					log.Printf("Dropped run %s (persistence file removed)", run.ID)
				}
			}
		}
		if pruned > 0 {
			log.Printf("Filesystem sync dropped %d runs", pruned)
		}
	}
}

// runStdioMCPWithInternalServer serves MCP over stdio. The MCP client needs a
// REST API to proxy; an already-running server on localhost:8080 is reused,
// otherwise a loopback-only one is started on a random port.
func runStdioMCPWithInternalServer(searchService service.SearchService) {
	externalURL := "http://localhost:8080"
	log.Printf("Looking for a running API server at %s", externalURL)

	var baseURL string
	pingClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := pingClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("Reusing API server at %s", externalURL)
		baseURL = externalURL
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Could not bind a loopback port: %v", err)
		}
		internalAddr := fmt.Sprintf("127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
		log.Printf("No API server found; serving one internally on %s", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(searchService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Give the listener a beat before the first proxied call.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio ready, proxying %s", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
