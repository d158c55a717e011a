package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/observability"
)

//go:embed openapi.yaml
var openapiSpec []byte

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Text       string   `json:"text"`
	Patterns   []string `json:"patterns"`
	Algorithm  string   `json:"algorithm,omitempty"`
	Precompute *bool    `json:"precompute,omitempty"`
	Alphabet   string   `json:"alphabet,omitempty"`
}

// BuildRequest is the body of POST /build.
type BuildRequest struct {
	Patterns   []string `json:"patterns"`
	Algorithm  string   `json:"algorithm,omitempty"`
	Precompute *bool    `json:"precompute,omitempty"`
	Alphabet   string   `json:"alphabet,omitempty"`
}

// MatchResult is one reported occurrence.
type MatchResult struct {
	Position int    `json:"position"`
	Pattern  string `json:"pattern"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Matches []MatchResult `json:"matches"`
}

// Server implements the build and search endpoints over the matching engine.
type Server struct {
	logger     *slog.Logger
	metrics    *observability.Metrics
	registry   *prometheus.Registry
	apiVersion string
	cache      *matcherCache
}

// NewServer creates a Server. A nil logger discards all output.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		logger:     logger,
		metrics:    observability.NewMetrics(),
		registry:   prometheus.NewRegistry(),
		apiVersion: "unknown",
		cache:      newMatcherCache(),
	}

	if err := s.metrics.Register(s.registry); err != nil {
		logger.Error("Failed to register metrics", "error", err)
	}

	if doc, err := openapi3.NewLoader().LoadFromData(openapiSpec); err == nil && doc.Info != nil {
		s.apiVersion = doc.Info.Version
	} else if err != nil {
		logger.Warn("Failed to parse embedded OpenAPI spec", "error", err)
	}

	return s
}

// NewHandler creates the HTTP handler for the matching engine.
func NewHandler(logger *slog.Logger) http.Handler {
	server := NewServer(logger)
	r := chi.NewRouter()

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/search", server.Search)
	r.Post("/build", server.Build)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Espalier API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Search handles the POST /search request.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Search: Invalid request body", "error", err)
		return
	}

	alg, opts, precompute, err := resolveBuild(body.Algorithm, body.Precompute, body.Alphabet)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid algorithm: %v", err), http.StatusBadRequest)
		s.logger.Warn("Search: Invalid algorithm", "error", err)
		return
	}

	key := cacheKey(alg, body.Patterns, body.Alphabet, precompute)
	ent, err := s.cache.fetch(key, !precompute, func() (matcher.Matcher, error) {
		return s.buildMatcher(alg, body.Patterns, opts)
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Build error: %v", err), http.StatusBadRequest)
		s.logger.Warn("Search: Build rejected", "error", err)
		return
	}

	matches := ent.findAll(body.Text)
	s.metrics.ObserveSearch(string(alg), modeLabel(precompute), len(matches))

	resp := SearchResponse{Matches: make([]MatchResult, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, MatchResult{Position: m.Position, Pattern: m.Pattern})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Search response encode failed", "error", err)
	}
}

// Build handles the POST /build request.
func (s *Server) Build(w http.ResponseWriter, r *http.Request) {
	var body BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Build: Invalid request body", "error", err)
		return
	}

	alg, opts, _, err := resolveBuild(body.Algorithm, body.Precompute, body.Alphabet)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid algorithm: %v", err), http.StatusBadRequest)
		s.logger.Warn("Build: Invalid algorithm", "error", err)
		return
	}

	m, err := s.buildMatcher(alg, body.Patterns, opts)
	if err != nil {
		http.Error(w, fmt.Sprintf("Build error: %v", err), http.StatusBadRequest)
		s.logger.Warn("Build: Rejected", "error", err)
		return
	}

	data, err := matcher.MarshalRecord(m.Record())
	if err != nil {
		http.Error(w, "Failed to encode record", http.StatusInternalServerError)
		s.logger.Error("Build: Record encode failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":         "espalier-http",
		"version":     strings.TrimSpace(espalier.Version),
		"api_version": s.apiVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) buildMatcher(alg matcher.Algorithm, patterns []string, opts []matcher.Option) (matcher.Matcher, error) {
	start := time.Now()
	m, err := matcher.Build(alg, patterns, append(opts, matcher.WithLogger(s.logger))...)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveBuild(string(alg), matcherStates(m), time.Since(start))
	return m, nil
}

func resolveBuild(algorithm string, precompute *bool, alphabet string) (matcher.Algorithm, []matcher.Option, bool, error) {
	alg := matcher.AlgorithmAhoCorasick
	if algorithm != "" {
		parsed, err := matcher.ParseAlgorithm(algorithm)
		if err != nil {
			return "", nil, false, err
		}
		alg = parsed
	}

	pre := true
	if precompute != nil {
		pre = *precompute
	}

	opts := []matcher.Option{matcher.WithPrecompute(pre)}
	if alphabet != "" {
		opts = append(opts, matcher.WithAlphabet(alphabet))
	}

	return alg, opts, pre, nil
}

func modeLabel(precompute bool) string {
	if precompute {
		return "precomputed"
	}
	return "on-the-fly"
}

func matcherStates(m matcher.Matcher) int {
	switch v := m.(type) {
	case *matcher.KMP:
		return v.Automaton().NumStates()
	case *matcher.AhoCorasick:
		return v.Automaton().NumStates()
	}
	return 0
}

// matcherCache reuses built automatons across requests that carry the same
// configuration. Entries built without precompute keep filling in failure
// edges while they search, so those entries serialize their searches.
type matcherCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	mu   sync.Mutex
	m    matcher.Matcher
	lazy bool
}

const cacheLimit = 128

func newMatcherCache() *matcherCache {
	return &matcherCache{
		entries: make(map[string]*cacheEntry),
	}
}

func (c *matcherCache) fetch(key string, lazy bool, build func() (matcher.Matcher, error)) (*cacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e, nil
	}

	m, err := build()
	if err != nil {
		return nil, err
	}

	if len(c.entries) >= cacheLimit {
		// Crude bound: drop everything rather than track recency.
		c.entries = make(map[string]*cacheEntry)
	}

	e := &cacheEntry{m: m, lazy: lazy}
	c.entries[key] = e
	return e, nil
}

func (e *cacheEntry) findAll(text string) []matcher.Match {
	if e.lazy {
		e.mu.Lock()
		defer e.mu.Unlock()
	}
	return e.m.FindAll(text)
}

func cacheKey(alg matcher.Algorithm, patterns []string, alphabet string, precompute bool) string {
	return fmt.Sprintf("%s|%t|%s|%s", alg, precompute, alphabet, strings.Join(patterns, "\x00"))
}
