package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Middleware wraps a handler, e.g. for rate limiting
type Middleware func(http.Handler) http.Handler

type route struct {
	method  string
	pattern string
	handler HandlerFunc
}

// Router is a small method+path router with "*" wildcard segments and a
// colored access log. Routes match in registration order, so register the
// most specific patterns first.
type Router struct {
	routes      []route
	middlewares []Middleware
}

func New() *Router {
	return &Router{}
}

// Use appends a middleware applied to every request.
func (r *Router) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *Router) Handle(method, pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, route{method: method, pattern: pattern, handler: handler})
}

func (r *Router) GET(pattern string, h HandlerFunc)    { r.Handle(http.MethodGet, pattern, h) }
func (r *Router) POST(pattern string, h HandlerFunc)   { r.Handle(http.MethodPost, pattern, h) }
func (r *Router) PUT(pattern string, h HandlerFunc)    { r.Handle(http.MethodPut, pattern, h) }
func (r *Router) PATCH(pattern string, h HandlerFunc)  { r.Handle(http.MethodPatch, pattern, h) }
func (r *Router) DELETE(pattern string, h HandlerFunc) { r.Handle(http.MethodDelete, pattern, h) }

// ServeHTTP dispatches to the first matching route and logs the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	var inner http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		pathMatched := false
		for _, rt := range r.routes {
			if !matchPattern(req.URL.Path, rt.pattern) {
				continue
			}
			pathMatched = true
			if rt.method == req.Method {
				rt.handler(w, req)
				return
			}
		}

		if pathMatched {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(w, "Not Found", http.StatusNotFound)
		}
	})

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		inner = r.middlewares[i](inner)
	}
	inner.ServeHTTP(lrw, req)

	logRequest(req, lrw.statusCode, time.Since(start))
}

// matchPattern checks a request path against a route pattern. A "*" segment
// matches exactly one path segment; a trailing "*" matches the rest of the
// path.
func matchPattern(path, pattern string) bool {
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	trailingWildcard := len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*"

	if trailingWildcard {
		if len(pathSegs) < len(patSegs) {
			return false
		}
	} else if len(pathSegs) != len(patSegs) {
		return false
	}

	for i, seg := range patSegs {
		if seg == "*" {
			if i == len(patSegs)-1 {
				return true // trailing wildcard swallows the rest
			}
			continue
		}
		if pathSegs[i] != seg {
			return false
		}
	}
	return true
}

// Start runs the HTTP server on addr.
func (r *Router) Start(addr string) error {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	return http.ListenAndServe(addr, r)
}

func logRequest(req *http.Request, status int, duration time.Duration) {
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, time.Now().Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(status), status, colorReset,
		colorBlue, duration, colorReset,
	)
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut, http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
