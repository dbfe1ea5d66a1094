// Package sqlite provides the web session persistence adapter backed by SQLite.
//
// Session ids are stored hashed so the database never holds a usable cookie
// value.
package sqlite
