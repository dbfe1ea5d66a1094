// Package cursor provides opaque infinite-scroll token encoding/decoding.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
)

// Cursor is the state a "load more" link carries back to the server.
type Cursor struct {
	// Generation is the list generation the link was rendered under.
	Generation uint64 `json:"gen"`
	// Offset is the number of visible items already on the page. It is only
	// consulted when none of the After keys is still listed.
	Offset int `json:"off"`
	// After holds the keys of the last rendered items, oldest first. The
	// list resumes behind the newest one still present, so rows removed in
	// the meantime do not shift the continuation.
	After []string `json:"aft,omitempty"`
	// QueryHash ties the token to the filters it was rendered with.
	QueryHash string `json:"qh,omitempty"`
}

// MaxAnchors bounds how many trailing keys a cursor carries.
const MaxAnchors = 4

// New creates a cursor for the given generation, offset and query. Only the
// last MaxAnchors of after are kept.
func New(generation uint64, offset int, query string, after ...string) Cursor {
	if len(after) > MaxAnchors {
		after = after[len(after)-MaxAnchors:]
	}
	return Cursor{
		Generation: generation,
		Offset:     offset,
		After:      append([]string(nil), after...),
		QueryHash:  HashQuery(query),
	}
}

// Resume returns where a list of keys continues for c: just behind the
// newest anchor still present. When every anchor is gone they are taken as
// removed and the rendered count shrinks by that many.
func Resume(c Cursor, keys []string) int {
	for i := len(c.After) - 1; i >= 0; i-- {
		for pos := len(keys) - 1; pos >= 0; pos-- {
			if keys[pos] == c.After[i] {
				return pos + 1
			}
		}
	}
	return min(max(c.Offset-len(c.After), 0), len(keys))
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 string to a cursor.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.Offset < 0 {
		return Cursor{}, fmt.Errorf("invalid cursor offset: %d", c.Offset)
	}
	if len(c.After) > MaxAnchors {
		return Cursor{}, fmt.Errorf("too many cursor anchors: %d", len(c.After))
	}
	return c, nil
}

// HashQuery computes a short hash of the query string for cursor validation.
// Returns empty string for empty query.
func HashQuery(query string) string {
	if query == "" {
		return ""
	}
	h := sha256.Sum256([]byte(query))
	return hex.EncodeToString(h[:8])
}

// ValidateQuery checks that the cursor was issued for the current query.
func ValidateQuery(c Cursor, currentQuery string) error {
	if c.QueryHash != HashQuery(currentQuery) {
		return fmt.Errorf("query changed since cursor was created")
	}
	return nil
}

// Stale reports whether the cursor was issued under an older list generation.
func Stale(c Cursor, currentGeneration uint64) bool {
	return c.Generation != currentGeneration
}
