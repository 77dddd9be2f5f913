package mockfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/mocksmith/mocksmith/pkg/mock"
)

// Build validates a definition and assembles a mock.Server from it. The
// returned server is not started.
func Build(def *Definition) (*mock.Server, error) {
	if err := Validate(def).Error(); err != nil {
		return nil, err
	}

	s := mock.New(def.Name)

	if def.Prefix != "" {
		s.SetRoutePrefix(def.Prefix)
	}
	if def.Delay != "" {
		d, err := time.ParseDuration(def.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid delay: %w", err)
		}
		s.SetDelay(d)
	}
	if def.Auth != nil {
		if def.Auth.Header != "" {
			s.EnableAuth(def.Auth.Token, def.Auth.Header)
		} else {
			s.EnableAuth(def.Auth.Token)
		}
	}

	for _, route := range def.Routes {
		schema, err := schemaFor(route)
		if err != nil {
			return nil, err
		}
		opts, err := optionsFor(route)
		if err != nil {
			return nil, err
		}

		if route.Crud != "" {
			s.BindCrudRoutes(route.Crud, schema, opts...)
			continue
		}

		switch strings.ToUpper(route.Method) {
		case "GET":
			s.BindNewGETRoute(route.Path, schema, opts...)
		case "POST":
			s.BindNewPOSTRoute(route.Path, schema, opts...)
		case "PUT":
			s.BindNewPUTRoute(route.Path, schema, opts...)
		case "DELETE":
			s.BindNewDELETERoute(route.Path, schema, opts...)
		case "PATCH":
			s.BindNewPATCHRoute(route.Path, schema, opts...)
		}
	}

	return s, nil
}

// schemaFor maps a route definition to a schema producer: a generate block
// composes named generators, anything else is the static body value.
func schemaFor(route RouteDef) (mock.Schema, error) {
	if len(route.Generate) == 0 {
		return mock.Static(route.Body), nil
	}

	fields := make(map[string]mock.Schema, len(route.Generate))
	for name, gen := range route.Generate {
		switch gen {
		case "uuid":
			fields[name] = mock.UUID()
		case "timestamp":
			fields[name] = mock.Timestamp()
		case "lorem":
			fields[name] = mock.Lorem()
		case "counter":
			fields[name] = mock.Counter()
		default:
			return nil, fmt.Errorf("unknown generator %q for field %q", gen, name)
		}
	}
	return mock.Object(fields), nil
}

func optionsFor(route RouteDef) ([]mock.RouteOption, error) {
	var opts []mock.RouteOption
	if route.MaxResults > 0 {
		opts = append(opts, mock.WithMaxResults(route.MaxResults))
	}
	if route.Delay != "" {
		d, err := time.ParseDuration(route.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid route delay: %w", err)
		}
		opts = append(opts, mock.WithDelay(d))
	}
	return opts, nil
}

// ExpandedRoute is one row of the effective route table derived from a
// definition, with CRUD bundles unrolled and the prefix applied.
type ExpandedRoute struct {
	Method     string `json:"method" yaml:"method"`
	Path       string `json:"path" yaml:"path"`
	MaxResults int    `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	Delay      string `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// Expand lists the effective route table of a definition in registration
// order.
func Expand(def *Definition) []ExpandedRoute {
	var out []ExpandedRoute

	add := func(method, path string, route RouteDef) {
		maxResults := 0
		if method == "GET" {
			maxResults = route.MaxResults
		}
		out = append(out, ExpandedRoute{
			Method:     method,
			Path:       mock.JoinPath(def.Prefix, path),
			MaxResults: maxResults,
			Delay:      route.Delay,
		})
	}

	for _, route := range def.Routes {
		if route.Crud != "" {
			base := "/" + strings.Trim(route.Crud, "/")
			add("GET", base, route)
			add("POST", base+"/create", route)
			add("PUT", base+"/update", route)
			add("DELETE", base+"/delete", route)
			add("PATCH", base+"/patch-update", route)
			continue
		}
		add(strings.ToUpper(route.Method), route.Path, route)
	}

	return out
}
