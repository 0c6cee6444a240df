// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"browse99/converter"
	"browse99/fetcher"
	"browse99/simulator"
)

// maxBody bounds posted HTML and markup.
const maxBody = 8 << 20

var errMissingURL = errors.New("missing url parameter")

// ExtractFunc produces page data for a URL.
type ExtractFunc func(ctx context.Context, url string) (*converter.PageData, error)

// ExtractHTMLFunc produces page data for a posted HTML document.
type ExtractHTMLFunc func(ctx context.Context, html string) (*converter.PageData, error)

// Server answers conversion requests. Extractions run at most
// MaxConcurrent at a time.
type Server struct {
	Extract     ExtractFunc
	ExtractHTML ExtractHTMLFunc
	Logger      *log.Logger

	sem chan struct{}
}

// New returns a server using the given extractors.
func New(extract ExtractFunc, extractHTML ExtractHTMLFunc, maxConcurrent int) *Server {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Server{
		Extract:     extract,
		ExtractHTML: extractHTML,
		Logger:      log.New(os.Stderr, "server: ", log.LstdFlags),
		sem:         make(chan struct{}, maxConcurrent),
	}
}

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /convert", s.handleConvertURL)
	mux.HandleFunc("POST /convert", s.handleConvertHTML)
	mux.HandleFunc("POST /decode", s.handleDecode)
	return s.logRequests(withCORS(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.Logger.Printf("stopped")
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.Logger.Printf("%s %s %s %d %s", id, r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// acquire waits for an extraction slot.
func (s *Server) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) release() { <-s.sem }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error     string `json:"error"`
	Usage     string `json:"usage,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

type convertResponse struct {
	Success   bool               `json:"success"`
	SourceURL string             `json:"sourceUrl,omitempty"`
	Content   string             `json:"content"`
	Metadata  converter.Metadata `json:"metadata"`
}

type decodeResponse struct {
	Rows  []string             `json:"rows"`
	Links []simulator.LinkSpan `json:"links"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, `browse99 converter

GET  /health              service status
GET  /convert?url=<url>   convert a web page to 99ML
POST /convert             convert the posted HTML to 99ML
POST /decode              decode posted 99ML to a 40x24 screen
`)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleConvertURL(w http.ResponseWriter, r *http.Request) {
	target := fetcher.NormalizeURL(r.URL.Query().Get("url"))
	if target == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: errMissingURL.Error(),
			Usage: "/convert?url=https://example.com",
		})
		return
	}

	if err := s.acquire(r.Context()); err != nil {
		return
	}
	data, err := s.Extract(r.Context(), target)
	s.release()
	if err != nil {
		s.Logger.Printf("convert %s: %v", target, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), SourceURL: target})
		return
	}

	res := converter.Convert(data, fetcher.SourceID(target))
	writeJSON(w, http.StatusOK, convertResponse{
		Success:   true,
		SourceURL: target,
		Content:   res.Markup,
		Metadata:  res.Metadata,
	})
}

func (s *Server) handleConvertHTML(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return
	}
	if len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing HTML content in request body"})
		return
	}

	if err := s.acquire(r.Context()); err != nil {
		return
	}
	data, err := s.ExtractHTML(r.Context(), string(body))
	s.release()
	if err != nil {
		s.Logger.Printf("convert posted HTML: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	res := converter.Convert(data, fetcher.LocalSource)
	writeJSON(w, http.StatusOK, convertResponse{
		Success:  true,
		Content:  res.Markup,
		Metadata: res.Metadata,
	})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return
	}

	screen := simulator.Decode(string(body))
	links := screen.Links
	if links == nil {
		links = []simulator.LinkSpan{}
	}
	writeJSON(w, http.StatusOK, decodeResponse{Rows: screen.Text(), Links: links})
}
