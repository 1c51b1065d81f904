// Package httpd owns the request/response half of the relay controller:
// parsing one buffered request, the fixed routing table, relay store
// mutation, and response synthesis.
//
// Ownership boundary:
// - request-line and body extraction from one raw buffer
// - explicit scanner for the JSON "state" field
// - route dispatch and the relay mutations each route implies
// - complete response bytes (status line, headers, body)
//
// The protocol is a deliberately small HTTP/1.1 subset: headers are never
// interpreted, connections are never persistent, and responses always
// carry an exact Content-Length plus Connection: close.
package httpd
