package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Route paths.
const (
	PostRoute         = pipeline.PostRoute
	APIPostsRoute     = "/api/posts"
	SiteCSSRoute      = "/assets/site.css"
	HighlightCSSRoute = "/assets/highlight.css"
)

// Content types.
const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeCSS  = "text/css; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// notFoundMessage is shown for unknown posts.
const notFoundMessage = "Post not found"

// Handler returns the site's HTTP handler. Requests are logged when the
// Server has a logger.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.pageHandler(func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error {
		return s.RenderHome(ctx, buf)
	}))
	mux.HandleFunc("GET "+PostRoute, s.pageHandler(func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error {
		return s.RenderBlog(ctx, buf)
	}))
	mux.HandleFunc("GET "+PostRoute+"/{slug}", s.pageHandler(func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error {
		return s.RenderPost(ctx, buf, r.PathValue("slug"))
	}))
	mux.HandleFunc("GET "+APIPostsRoute, s.jsonHandler(func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error {
		return s.WritePostsJSON(ctx, buf)
	}))
	mux.HandleFunc("GET "+APIPostsRoute+"/{slug}", s.jsonHandler(func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error {
		return s.WritePostJSON(ctx, buf, r.PathValue("slug"))
	}))
	mux.HandleFunc("GET "+SiteCSSRoute, cssHandler(s.SiteCSS))
	mux.HandleFunc("GET "+HighlightCSSRoute, cssHandler(s.HighlightCSS))

	if s.mediaDir != "" {
		route := s.MediaRoute()
		mux.Handle("GET "+route, http.StripPrefix(route, http.FileServer(http.Dir(s.mediaDir))))
	}

	if s.logger == nil {
		return mux
	}
	return logRequests(s.logger, mux)
}

type renderFunc func(ctx context.Context, r *http.Request, buf *bytes.Buffer) error

func (s *Server) pageHandler(render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render(r.Context(), r, &buf); err != nil {
			if isNotFound(err) {
				http.Error(w, notFoundMessage, http.StatusNotFound)
				return
			}
			s.logError(r, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) jsonHandler(render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render(r.Context(), r, &buf); err != nil {
			status, msg := http.StatusNotFound, "post not found"
			if !isNotFound(err) {
				s.logError(r, err)
				status, msg = http.StatusInternalServerError, "internal error"
			}
			writeJSONError(w, status, msg)
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) logError(r *http.Request, err error) {
	if s.logger != nil {
		s.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func cssHandler(css func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeCSS)
		_, _ = w.Write([]byte(css()))
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request: method, path, status, duration.
func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

// NewLogger returns the request logger used by the serve command.
func NewLogger(w io.Writer) *log.Logger {
	return log.New(w, "[mdsite] ", log.LstdFlags)
}
