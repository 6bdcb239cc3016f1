// Package ids generates the identifiers used across the dispatch pipeline:
// ULIDs for correlating queued commands in logs and metrics, and
// Cloud-Trace-compatible trace/span identifiers.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// CreateULID returns a time-sortable ULID encoded as a 26-character string.
// Every enqueued command gets one so background failures can be correlated
// with the enqueue site.
func CreateULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}

// CreateTraceID returns a 32-character lowercase hex trace identifier
// derived from a random UUID (128 bits).
func CreateTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// CreateSpanID returns a 16-character lowercase hex span identifier: a
// random UUID truncated to its low 64 bits.
func CreateSpanID() string {
	id := uuid.New()
	return hex.EncodeToString(id[8:])
}
