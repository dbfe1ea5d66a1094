package petapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/platform/pagination"
)

// listing is one decoded list response. Total and HasMore are nil when the
// endpoint did not report them.
type listing[T any] struct {
	Items   []T
	Total   *int
	HasMore *bool
}

// decodeListing accepts either a bare JSON array or an object holding the
// items under field plus optional total/hasMore metadata.
func decodeListing[T any](raw []byte, field string) (listing[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return listing[T]{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return listing[T]{}, fmt.Errorf("decode %s array: %w", field, err)
		}
		return listing[T]{Items: items}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return listing[T]{}, fmt.Errorf("decode %s envelope: %w", field, err)
	}
	var out listing[T]
	if rawItems, ok := envelope[field]; ok {
		if err := json.Unmarshal(rawItems, &out.Items); err != nil {
			return listing[T]{}, fmt.Errorf("decode %s: %w", field, err)
		}
	}
	if rawTotal, ok := envelope["total"]; ok {
		var total int
		if err := json.Unmarshal(rawTotal, &total); err == nil {
			out.Total = &total
		}
	}
	if rawHasMore, ok := envelope["hasMore"]; ok {
		var hasMore bool
		if err := json.Unmarshal(rawHasMore, &hasMore); err == nil {
			out.HasMore = &hasMore
		}
	}
	return out, nil
}

// page converts a listing fetched at pageNumber into the canonical page
// shape: an explicit flag wins, then the total, then page fill.
func (l listing[T]) page(pageNumber, limit int) collection.Page[T] {
	hasMore := pagination.HasMoreByFill(len(l.Items), limit)
	switch {
	case l.HasMore != nil:
		hasMore = *l.HasMore
	case l.Total != nil:
		hasMore = pagination.HasMoreByTotal(pageNumber, limit, *l.Total)
	}
	out := collection.Page[T]{Items: l.Items, HasMore: hasMore}
	if hasMore {
		out.Next = pagination.FormatPage(pageNumber + 1)
	}
	return out
}
