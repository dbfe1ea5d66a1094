// Package timeouts defines shared timeout constants used across pawprint.
package timeouts

import "time"

// APIRequest caps a single call to the remote pet API, retries included.
const APIRequest = 10 * time.Second

// FirstPage bounds how long a page render waits for a collection's first
// page before rendering the loading state.
const FirstPage = 3 * time.Second

// Upload caps a single image-host upload.
const Upload = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
