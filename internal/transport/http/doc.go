// Package http contains the HTTP transport layer: chi handlers that
// bind requests, delegate to the dashboard service, and render JSON
// responses or RFC 7807 problems.
package http
