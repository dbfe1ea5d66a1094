package collection

// Status is the lifecycle state of a collection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoadingFirstPage
	StatusLoadingNextPage
	StatusReady
	StatusError
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoadingFirstPage:
		return "loading_first_page"
	case StatusLoadingNextPage:
		return "loading_next_page"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Loading reports whether a page request is in flight.
func (s Status) Loading() bool {
	return s == StatusLoadingFirstPage || s == StatusLoadingNextPage
}
