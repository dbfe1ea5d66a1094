// Package collection materializes paginated remote lists for views.
//
// A Cache fetches pages on demand, keeps a key-unique ordered list, and lets
// callers apply optimistic local edits that reconcile with later page loads.
// Every Reset starts a new generation; responses that belong to an older
// generation are dropped without touching state.
package collection
