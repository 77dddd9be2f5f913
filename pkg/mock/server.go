// Package mock provides a fluent builder for standing up HTTP mock servers.
//
// A Server is configured through chainable methods and started with Start:
//
//	srv := mock.New("UserAPI").
//		SetRoutePrefix("/api").
//		EnableAuth("sekret").
//		BindCrudRoutes("users", mock.Static(map[string]string{"name": "Alice"})).
//		BindNewGETRoute("/ping", mock.Static("pong"))
//
//	log.Fatal(srv.Start(3005))
//
// Every bound route answers 200 with the JSON value produced by its schema
// function. Routing and dispatch are delegated to chi; the server only keeps
// an ordered route table of its own for the startup log.
package mock

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// DefaultPort is the port Start listens on when none is given.
const DefaultPort = 3005

// DefaultAuthHeader is the header EnableAuth inspects when none is given.
const DefaultAuthHeader = "authorization"

// Schema produces one JSON-serializable response value per invocation.
// Producers may be stateful (counters, random data); for GET routes bound
// with WithMaxResults each element of the response array comes from its own
// invocation.
type Schema func() any

// Route is one entry of the server's ordered route table. Pattern is the
// path as bound, without the route prefix.
type Route struct {
	Method  string
	Pattern string
}

// Server is a stateful builder wrapping a chi application router and a
// sub-router that route bindings land on. Configuration and binding calls
// mutate the builder until Start (or Handler) mounts the sub-router; after
// that, binding calls are rejected.
type Server struct {
	name   string
	prefix string
	delay  time.Duration

	app   *chi.Mux
	sub   *chi.Mux
	gates []func(http.Handler) http.Handler

	mu      sync.Mutex
	mounted bool
	routes  []Route

	httpServer *http.Server
	out        io.Writer
}

// New creates a mock server builder. The optional argument names the server
// in the startup log; the default name is "MockServer".
func New(name ...string) *Server {
	n := "MockServer"
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	return &Server{
		name: n,
		app:  chi.NewRouter(),
		sub:  chi.NewRouter(),
		out:  os.Stdout,
	}
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// EnableAuth installs a gate that runs ahead of all route handlers. The
// named header (default "authorization") must equal the token, or the token
// prefixed with "Bearer ", compared case-sensitively; otherwise the request
// is answered with 401 {"message":"Unauthorized"} and never reaches a route
// handler. Calling EnableAuth more than once installs independent gates that
// must all pass.
func (s *Server) EnableAuth(token string, headerKey ...string) *Server {
	header := DefaultAuthHeader
	if len(headerKey) > 0 && headerKey[0] != "" {
		header = headerKey[0]
	}
	s.gates = append(s.gates, authGate(token, header))
	return s
}

// SetRoutePrefix records where the sub-router is mounted at Start time.
// Already-bound route patterns are not rewritten.
func (s *Server) SetRoutePrefix(prefix string) *Server {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	s.prefix = prefix
	return s
}

// SetDelay sets the default artificial latency applied to routes that do not
// carry their own WithDelay option.
func (s *Server) SetDelay(d time.Duration) *Server {
	s.delay = d
	return s
}

// BindNewGETRoute registers a GET handler for path. With WithMaxResults(n)
// the response is a JSON array of n independent schema() invocations;
// otherwise it is the single value of one invocation.
func (s *Server) BindNewGETRoute(path string, schema Schema, opts ...RouteOption) *Server {
	return s.bind(http.MethodGet, path, schema, opts)
}

// BindNewPOSTRoute registers a POST handler for path.
func (s *Server) BindNewPOSTRoute(path string, schema Schema, opts ...RouteOption) *Server {
	return s.bind(http.MethodPost, path, schema, opts)
}

// BindNewPUTRoute registers a PUT handler for path.
func (s *Server) BindNewPUTRoute(path string, schema Schema, opts ...RouteOption) *Server {
	return s.bind(http.MethodPut, path, schema, opts)
}

// BindNewDELETERoute registers a DELETE handler for path.
func (s *Server) BindNewDELETERoute(path string, schema Schema, opts ...RouteOption) *Server {
	return s.bind(http.MethodDelete, path, schema, opts)
}

// BindNewPATCHRoute registers a PATCH handler for path.
func (s *Server) BindNewPATCHRoute(path string, schema Schema, opts ...RouteOption) *Server {
	return s.bind(http.MethodPatch, path, schema, opts)
}

// BindCrudRoutes derives five routes from one module name, all sharing the
// same schema producer and options:
//
//	GET    /{module}
//	POST   /{module}/create
//	PUT    /{module}/update
//	DELETE /{module}/delete
//	PATCH  /{module}/patch-update
func (s *Server) BindCrudRoutes(module string, schema Schema, opts ...RouteOption) *Server {
	base := "/" + strings.Trim(module, "/")
	s.BindNewGETRoute(base, schema, opts...)
	s.BindNewPOSTRoute(base+"/create", schema, opts...)
	s.BindNewPUTRoute(base+"/update", schema, opts...)
	s.BindNewDELETERoute(base+"/delete", schema, opts...)
	s.BindNewPATCHRoute(base+"/patch-update", schema, opts...)
	return s
}

// bind registers one handler on the sub-router and appends it to the route
// table. Bindings are append-only and never deduplicated; chi's own policy
// applies to duplicate method+path pairs. Bindings after the router has been
// mounted are rejected.
func (s *Server) bind(method, pattern string, schema Schema, opts []RouteOption) *Server {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		log.Warn().
			Str("server", s.name).
			Str("method", method).
			Str("path", pattern).
			Msg("route binding rejected: server already started")
		return s
	}

	o := newRouteOptions(opts)
	s.sub.Method(method, pattern, s.respond(method, schema, o))
	s.routes = append(s.routes, Route{Method: method, Pattern: pattern})

	log.Debug().
		Str("server", s.name).
		Str("method", method).
		Str("path", pattern).
		Msg("route bound")
	return s
}

// respond builds the handler closure for one binding. The effective delay is
// the route's own delay when set, else the server default; while it elapses
// the request is held open, and a client disconnect means the response is
// never written.
func (s *Server) respond(method string, schema Schema, o routeOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		delay := s.delay
		if o.delaySet {
			delay = o.delay
		}
		if delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-r.Context().Done():
				t.Stop()
				return
			}
		}

		var payload any
		if method == http.MethodGet && o.maxResults > 0 {
			list := make([]any, o.maxResults)
			for i := range list {
				list[i] = schema()
			}
			payload = list
		} else {
			payload = schema()
		}

		writeJSON(w, http.StatusOK, payload)
	}
}

// mount wires the sub-router (wrapped in the auth gates) into the
// application router at the configured prefix. It runs once; afterwards the
// builder no longer accepts bindings.
func (s *Server) mount() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return s.app
	}

	var h http.Handler = s.sub
	for i := len(s.gates) - 1; i >= 0; i-- {
		h = s.gates[i](h)
	}

	at := s.prefix
	if at == "" {
		at = "/"
	}
	s.app.Mount(at, h)
	s.mounted = true
	return s.app
}

// Handler mounts the router and returns the application as an http.Handler.
// Useful with httptest when no listening socket is wanted.
func (s *Server) Handler() http.Handler {
	return s.mount()
}

// Start mounts the router at the configured prefix, binds a listener on the
// given port (default 3005), prints the route table, and serves until the
// process ends or Shutdown is called.
func (s *Server) Start(port ...int) error {
	p := DefaultPort
	if len(port) > 0 && port[0] > 0 {
		p = port[0]
	}

	h := s.mount()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", p))
	if err != nil {
		return fmt.Errorf("mock: failed to bind port %d: %w", p, err)
	}

	fmt.Fprint(s.out, s.banner(p))

	s.httpServer = &http.Server{Handler: h}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// banner renders the startup log: the bind URL followed by every binding's
// method and prefix-joined path, in registration order.
func (s *Server) banner(port int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s running at http://localhost:%d\n", s.name, port)
	fmt.Fprintf(&b, "Registered Routes By %s:\n", s.name)
	for _, rt := range s.routes {
		fmt.Fprintf(&b, "%-6s -  %s\n", rt.Method, JoinPath(s.prefix, rt.Pattern))
	}
	return b.String()
}

// JoinPath joins a route prefix and a bound pattern into the effective
// request path.
func JoinPath(prefix, pattern string) string {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return pattern
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix + pattern
}
