package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSingleGetInvokesSchemaOnce(t *testing.T) {
	calls := 0
	s := New().BindNewGETRoute("/thing", func() any {
		calls++
		return map[string]string{"name": "Alice"}
	})

	req := httptest.NewRequest("GET", "/thing", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("get: content-type = %q, want %q", ct, "application/json")
	}
	if calls != 1 {
		t.Errorf("get: schema invoked %d times, want 1", calls)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["name"] != "Alice" {
		t.Errorf("get: name = %q, want %q", resp["name"], "Alice")
	}
}

func TestGetWithMaxResults(t *testing.T) {
	s := New().BindNewGETRoute("/seq", Counter(), WithMaxResults(5))

	req := httptest.NewRequest("GET", "/seq", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []int
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp) != 5 {
		t.Fatalf("list: got %d elements, want 5", len(resp))
	}
	// Each element comes from its own schema invocation.
	for i, v := range resp {
		if v != i+1 {
			t.Errorf("list[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestMaxResultsIgnoredOnNonGet(t *testing.T) {
	s := New().BindNewPATCHRoute("/thing", Static(map[string]string{"ok": "yes"}), WithMaxResults(3))

	req := httptest.NewRequest("PATCH", "/thing", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("patch: status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("patch: expected a single object, decode failed: %v", err)
	}
	if resp["ok"] != "yes" {
		t.Errorf("patch: ok = %q, want %q", resp["ok"], "yes")
	}
}

func TestAuthGate(t *testing.T) {
	calls := 0
	s := New().
		EnableAuth("test-secret").
		BindNewGETRoute("/secure", func() any {
			calls++
			return "ok"
		})
	h := s.Handler()

	// No header → 401, schema not invoked.
	req := httptest.NewRequest("GET", "/secure", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no auth: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["message"] != "Unauthorized" {
		t.Errorf("no auth: message = %q, want %q", body["message"], "Unauthorized")
	}
	if calls != 0 {
		t.Errorf("no auth: schema invoked %d times, want 0", calls)
	}

	// Wrong token → 401.
	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Wrong case → 401 (comparison is case-sensitive).
	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Test-Secret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong case: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Raw token → 200.
	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "test-secret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("raw token: status = %d, want %d", w.Code, http.StatusOK)
	}

	// Bearer form → 200.
	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer test-secret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("bearer token: status = %d, want %d", w.Code, http.StatusOK)
	}
	if calls != 2 {
		t.Errorf("schema invoked %d times, want 2", calls)
	}
}

func TestAuthGateCustomHeader(t *testing.T) {
	s := New().
		EnableAuth("key-123", "x-api-key").
		BindNewGETRoute("/secure", Static("ok"))
	h := s.Handler()

	// Token on the default header does not pass a custom-header gate.
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "key-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("default header: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("X-API-Key", "key-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("custom header: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestMultipleAuthGatesAllMustPass(t *testing.T) {
	s := New().
		EnableAuth("outer").
		EnableAuth("inner", "x-api-key").
		BindNewGETRoute("/secure", Static("ok"))
	h := s.Handler()

	// Only the first gate satisfied → 401 from the second.
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "outer")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("one gate: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "outer")
	req.Header.Set("X-API-Key", "inner")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("both gates: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRoutePrefix(t *testing.T) {
	s := New().
		SetRoutePrefix("/api").
		BindNewGETRoute("/test", Static("ok"))
	h := s.Handler()

	req := httptest.NewRequest("GET", "/api/test", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("prefixed path: status = %d, want %d", w.Code, http.StatusOK)
	}

	// The unprefixed path must not be reachable.
	req = httptest.NewRequest("GET", "/test", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unprefixed path: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCrudRoutes(t *testing.T) {
	s := New().BindCrudRoutes("users", Static(map[string]string{"name": "Alice"}))
	h := s.Handler()

	want := []Route{
		{Method: "GET", Pattern: "/users"},
		{Method: "POST", Pattern: "/users/create"},
		{Method: "PUT", Pattern: "/users/update"},
		{Method: "DELETE", Pattern: "/users/delete"},
		{Method: "PATCH", Pattern: "/users/patch-update"},
	}
	if len(s.routes) != len(want) {
		t.Fatalf("crud: %d routes registered, want %d", len(s.routes), len(want))
	}
	for i, rt := range want {
		if s.routes[i] != rt {
			t.Errorf("crud route[%d] = %+v, want %+v", i, s.routes[i], rt)
		}
	}

	for _, rt := range want {
		req := httptest.NewRequest(rt.Method, rt.Pattern, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d, want %d", rt.Method, rt.Pattern, w.Code, http.StatusOK)
		}
	}
}

func TestDuplicateBindingsKept(t *testing.T) {
	s := New().
		BindNewGETRoute("/dup", Static(1)).
		BindNewGETRoute("/dup", Static(2))

	if len(s.routes) != 2 {
		t.Fatalf("duplicate bindings: %d route table entries, want 2", len(s.routes))
	}
}

func TestBanner(t *testing.T) {
	s := New("UserAPI").
		SetRoutePrefix("/api").
		BindNewGETRoute("/users", Static("x")).
		BindNewPOSTRoute("/users/create", Static("x"))

	got := s.banner(3005)
	want := "UserAPI running at http://localhost:3005\n" +
		"Registered Routes By UserAPI:\n" +
		"GET    -  /api/users\n" +
		"POST   -  /api/users/create\n"
	if got != want {
		t.Errorf("banner:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBindAfterMountRejected(t *testing.T) {
	s := New().BindNewGETRoute("/before", Static("ok"))
	h := s.Handler()

	s.BindNewGETRoute("/after", Static("ok"))

	if len(s.routes) != 1 {
		t.Fatalf("post-start bind: %d route table entries, want 1", len(s.routes))
	}

	req := httptest.NewRequest("GET", "/after", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("post-start route: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRouteDelay(t *testing.T) {
	s := New().
		BindNewGETRoute("/slow", Static("slow"), WithDelay(80*time.Millisecond)).
		BindNewGETRoute("/fast", Static("fast"))

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	slowDone := make(chan time.Time, 1)
	start := time.Now()
	go func() {
		resp, err := http.Get(ts.URL + "/slow")
		if err == nil {
			resp.Body.Close()
		}
		slowDone <- time.Now()
	}()

	// A concurrent request to the undelayed route returns while the delayed
	// one is still held open.
	time.Sleep(10 * time.Millisecond)
	resp, err := http.Get(ts.URL + "/fast")
	if err != nil {
		t.Fatalf("fast request: %v", err)
	}
	resp.Body.Close()
	fastAt := time.Now()

	slowAt := <-slowDone
	if elapsed := slowAt.Sub(start); elapsed < 80*time.Millisecond {
		t.Errorf("delayed response arrived after %v, want >= 80ms", elapsed)
	}
	if !fastAt.Before(slowAt) {
		t.Error("undelayed response did not arrive before the delayed one")
	}
}

func TestRouteDelayOverridesServerDelay(t *testing.T) {
	s := New().
		SetDelay(80*time.Millisecond).
		BindNewGETRoute("/default", Static("x")).
		BindNewGETRoute("/override", Static("x"), WithDelay(0))
	h := s.Handler()

	start := time.Now()
	req := httptest.NewRequest("GET", "/override", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if elapsed := time.Since(start); elapsed >= 80*time.Millisecond {
		t.Errorf("override route took %v, want well under the 80ms default", elapsed)
	}

	start = time.Now()
	req = httptest.NewRequest("GET", "/default", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("default route took %v, want >= 80ms", elapsed)
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		prefix, pattern, want string
	}{
		{"", "/test", "/test"},
		{"/api", "/test", "/api/test"},
		{"/api/", "/test", "/api/test"},
		{"api", "/test", "/api/test"},
		{"/api", "test", "/api/test"},
	}
	for _, c := range cases {
		if got := JoinPath(c.prefix, c.pattern); got != c.want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", c.prefix, c.pattern, got, c.want)
		}
	}
}

func TestDefaultName(t *testing.T) {
	if got := New().Name(); got != "MockServer" {
		t.Errorf("default name = %q, want %q", got, "MockServer")
	}
	if got := New("Custom").Name(); got != "Custom" {
		t.Errorf("name = %q, want %q", got, "Custom")
	}
}

func TestPathParamPattern(t *testing.T) {
	s := New().BindNewGETRoute("/users/{id}", Static(map[string]string{"name": "Alice"}))
	h := s.Handler()

	req := httptest.NewRequest("GET", "/users/42", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("param route: status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Alice") {
		t.Errorf("param route: body = %q", w.Body.String())
	}
}
