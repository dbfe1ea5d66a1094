// Package views keeps the mounted list views of each visitor.
//
// A view is a collection cache bound to one visitor and one page (the public
// pet grid, the admin user table, and so on). A full page load mounts the
// view, which starts a fresh generation; HTMX fragments look the view up to
// load further pages or apply optimistic edits. Views idle past their TTL are
// evicted and their caches closed.
package views
