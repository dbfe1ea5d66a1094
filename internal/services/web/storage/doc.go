// Package storage declares persistence interfaces for web-owned session data.
//
// Pets, campaigns and accounts live in the remote API; the web service only
// persists the sessions it issues.
package storage
