// Package content encodes and decodes request and response bodies for
// records: application/x-www-form-urlencoded, JSON objects that keep entry
// order, and content type sniffing for bodies that arrive without one.
package content
