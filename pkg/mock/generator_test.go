package mock

import (
	"testing"
	"time"
)

func TestStatic(t *testing.T) {
	v := map[string]string{"name": "Alice"}
	schema := Static(v)

	first := schema()
	second := schema()
	if firstMap, ok := first.(map[string]string); !ok || firstMap["name"] != "Alice" {
		t.Errorf("static: first = %#v", first)
	}
	if secondMap, ok := second.(map[string]string); !ok || secondMap["name"] != "Alice" {
		t.Errorf("static: second = %#v", second)
	}
}

func TestUUIDUnique(t *testing.T) {
	schema := UUID()
	seen := make(map[any]bool)
	for i := 0; i < 100; i++ {
		v := schema()
		if seen[v] {
			t.Fatalf("uuid: duplicate value %v", v)
		}
		seen[v] = true
	}
}

func TestCounterMonotonic(t *testing.T) {
	schema := Counter()
	for i := int64(1); i <= 10; i++ {
		if v := schema(); v != i {
			t.Fatalf("counter: got %v, want %d", v, i)
		}
	}

	// Independent counters do not share state.
	other := Counter()
	if v := other(); v != int64(1) {
		t.Errorf("fresh counter: got %v, want 1", v)
	}
}

func TestLoremNonEmpty(t *testing.T) {
	schema := Lorem()
	for i := 0; i < 10; i++ {
		s, ok := schema().(string)
		if !ok || s == "" {
			t.Fatalf("lorem: got %#v", schema())
		}
	}
}

func TestTimestampFormat(t *testing.T) {
	s, ok := Timestamp()().(string)
	if !ok {
		t.Fatal("timestamp: not a string")
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		t.Errorf("timestamp %q: %v", s, err)
	}
}

func TestObjectComposition(t *testing.T) {
	schema := Object(map[string]Schema{
		"id":  Counter(),
		"tag": Static("fixed"),
	})

	first, ok := schema().(map[string]any)
	if !ok {
		t.Fatal("object: not a map")
	}
	second := schema().(map[string]any)

	if first["tag"] != "fixed" || second["tag"] != "fixed" {
		t.Errorf("object tag: %v, %v", first["tag"], second["tag"])
	}
	if first["id"] == second["id"] {
		t.Errorf("object id should advance per invocation, got %v twice", first["id"])
	}
}
