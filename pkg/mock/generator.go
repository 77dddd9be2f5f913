package mock

import (
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Static returns a schema producing the same value on every invocation.
func Static(v any) Schema {
	return func() any { return v }
}

// Lorem returns a schema producing 3-7 random lorem ipsum sentences per
// invocation.
func Lorem() Schema {
	return func() any { return randomLorem() }
}

// UUID returns a schema producing a fresh UUID string per invocation.
func UUID() Schema {
	return func() any { return uuid.NewString() }
}

// Timestamp returns a schema producing the current UTC time in RFC 3339
// format per invocation.
func Timestamp() Schema {
	return func() any { return time.Now().UTC().Format(time.RFC3339) }
}

// Counter returns a schema producing 1, 2, 3, ... across invocations. Safe
// for concurrent requests.
func Counter() Schema {
	var n atomic.Int64
	return func() any { return n.Add(1) }
}

// Object composes field schemas into a map producer; every invocation
// invokes each field's schema once.
func Object(fields map[string]Schema) Schema {
	return func() any {
		out := make(map[string]any, len(fields))
		for k, f := range fields {
			out[k] = f()
		}
		return out
	}
}

func randomLorem() string {
	sentences := rand.Intn(5) + 3
	var result []string
	for i := 0; i < sentences; i++ {
		result = append(result, loremSentences[rand.Intn(len(loremSentences))])
	}
	return strings.Join(result, " ")
}

var loremSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum.",
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa.",
	"Nemo enim ipsam voluptatem quia voluptas sit aspernatur aut odit.",
	"Neque porro quisquam est, qui dolorem ipsum quia dolor sit amet.",
	"Quis autem vel eum iure reprehenderit qui in ea voluptate velit esse.",
	"At vero eos et accusamus et iusto odio dignissimos ducimus.",
}
