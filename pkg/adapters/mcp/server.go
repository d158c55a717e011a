package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MatchResult is a single occurrence reported by a search tool.
type MatchResult struct {
	Position int    `json:"position" jsonschema_description:"Rune index in the text where the occurrence starts"`
	Pattern  string `json:"pattern" jsonschema_description:"The pattern occurring at this position"`
}

// MatchResponse aligns with the HTTP search schema and provides a unified structure across adapters.
type MatchResponse struct {
	Matches []MatchResult `json:"matches" jsonschema_description:"Occurrences in ascending position order"`
	Count   int           `json:"count" jsonschema_description:"Total number of occurrences"`
}

// BuildResponse summarizes a compiled automaton.
type BuildResponse struct {
	Algorithm string `json:"algorithm" jsonschema_description:"Algorithm backing the automaton"`
	States    int    `json:"states" jsonschema_description:"Number of states in the automaton"`
	Patterns  int    `json:"patterns" jsonschema_description:"Number of patterns compiled in"`
	Saved     string `json:"saved,omitempty" jsonschema_description:"Record name the automaton was persisted under, if requested"`
}

// Server exposes the matching engine and its record archive as an MCP Server.
type Server struct {
	archive   *espalier.Archive
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(archive *espalier.Archive, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		archive:   archive,
		logger:    logger,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: match_text
	matchTool := mcp.NewTool("match_text",
		mcp.WithDescription("Find all occurrences of the given patterns in a text. Positions are rune indices."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to search")),
		mcp.WithString("patterns", mcp.Required(), mcp.Description("JSON array of patterns; a plain string is treated as a single pattern")),
		mcp.WithString("algorithm", mcp.Description("Matching algorithm: kmp or aho-corasick (default)")),
		mcp.WithBoolean("precompute", mcp.Description("Materialize the full transition table up front (default true)")),
		mcp.WithString("alphabet", mcp.Description("Fixed alphabet; derived from the patterns when omitted")),
		mcp.WithOutputSchema[MatchResponse](),
	)
	s.mcpServer.AddTool(matchTool, mcp.NewStructuredToolHandler(s.handleMatchText))

	// TOOL: build_automaton
	buildTool := mcp.NewTool("build_automaton",
		mcp.WithDescription("Compile patterns into a matching automaton and optionally persist it under a name."),
		mcp.WithString("patterns", mcp.Required(), mcp.Description("JSON array of patterns; a plain string is treated as a single pattern")),
		mcp.WithString("algorithm", mcp.Description("Matching algorithm: kmp or aho-corasick (default)")),
		mcp.WithBoolean("precompute", mcp.Description("Materialize the full transition table up front (default true)")),
		mcp.WithString("alphabet", mcp.Description("Fixed alphabet; derived from the patterns when omitted")),
		mcp.WithString("name", mcp.Description("Record name to persist the automaton under (optional)")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(buildTool, mcp.NewStructuredToolHandler(s.handleBuildAutomaton))

	// TOOL: search_record
	searchTool := mcp.NewTool("search_record",
		mcp.WithDescription("Search a text with a previously persisted automaton record."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the persisted record")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to search")),
		mcp.WithOutputSchema[MatchResponse](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearchRecord))

	// TOOL: list_records
	s.mcpServer.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List the names of all persisted automaton records."),
	), s.handleListRecords)
}

// Handler methods for structured tools

func (s *Server) handleMatchText(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MatchResponse, error) {
	text, _ := args["text"].(string)

	patterns, err := parsePatterns(args)
	if err != nil {
		return MatchResponse{}, err
	}
	alg, opts, err := toolOptions(args)
	if err != nil {
		return MatchResponse{}, err
	}
	opts = append(opts, matcher.WithLogger(s.logger))

	m, err := matcher.Build(alg, patterns, opts...)
	if err != nil {
		s.logger.Warn("match_text: build rejected", "error", err)
		return MatchResponse{}, fmt.Errorf("build failed: %w", err)
	}

	return collectMatches(m, text), nil
}

func (s *Server) handleBuildAutomaton(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
	patterns, err := parsePatterns(args)
	if err != nil {
		return BuildResponse{}, err
	}
	alg, opts, err := toolOptions(args)
	if err != nil {
		return BuildResponse{}, err
	}
	opts = append(opts, matcher.WithLogger(s.logger))

	m, err := matcher.Build(alg, patterns, opts...)
	if err != nil {
		s.logger.Warn("build_automaton: build rejected", "error", err)
		return BuildResponse{}, fmt.Errorf("build failed: %w", err)
	}

	resp := BuildResponse{
		Algorithm: string(m.Algorithm()),
		States:    automatonStates(m),
		Patterns:  len(patterns),
	}

	if name, ok := args["name"].(string); ok && name != "" {
		if err := s.archive.Save(ctx, name, m); err != nil {
			return BuildResponse{}, fmt.Errorf("save failed: %w", err)
		}
		resp.Saved = name
	}

	return resp, nil
}

func (s *Server) handleSearchRecord(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MatchResponse, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return MatchResponse{}, fmt.Errorf("name is required")
	}
	text, _ := args["text"].(string)

	m, err := s.archive.Open(ctx, name)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("open %q failed: %w", name, err)
	}

	return collectMatches(m, text), nil
}

func (s *Server) handleListRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.archive.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://records
	s.mcpServer.AddResource(mcp.NewResource("espalier://records", "Persisted Automaton Records",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.archive.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list records: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://records",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func parsePatterns(args map[string]interface{}) ([]string, error) {
	raw, _ := args["patterns"].(string)
	if raw == "" {
		return nil, fmt.Errorf("patterns is required")
	}

	var patterns []string
	if err := json.Unmarshal([]byte(raw), &patterns); err != nil {
		// Not a JSON array, so the raw value is a single pattern.
		return []string{raw}, nil
	}
	return patterns, nil
}

func toolOptions(args map[string]interface{}) (matcher.Algorithm, []matcher.Option, error) {
	alg := matcher.AlgorithmAhoCorasick
	if raw, ok := args["algorithm"].(string); ok && raw != "" {
		parsed, err := matcher.ParseAlgorithm(raw)
		if err != nil {
			return "", nil, err
		}
		alg = parsed
	}

	pre := true
	if v, ok := args["precompute"].(bool); ok {
		pre = v
	}
	opts := []matcher.Option{matcher.WithPrecompute(pre)}

	if alphabet, ok := args["alphabet"].(string); ok && alphabet != "" {
		opts = append(opts, matcher.WithAlphabet(alphabet))
	}
	return alg, opts, nil
}

func collectMatches(m matcher.Matcher, text string) MatchResponse {
	found := m.FindAll(text)
	resp := MatchResponse{
		Matches: make([]MatchResult, 0, len(found)),
		Count:   len(found),
	}
	for _, match := range found {
		resp.Matches = append(resp.Matches, MatchResult{Position: match.Position, Pattern: match.Pattern})
	}
	return resp
}

func automatonStates(m matcher.Matcher) int {
	switch v := m.(type) {
	case *matcher.KMP:
		return v.Automaton().NumStates()
	case *matcher.AhoCorasick:
		return v.Automaton().NumStates()
	}
	return 0
}
