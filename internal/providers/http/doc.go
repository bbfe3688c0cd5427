// Package http exposes the HTTP client and its URL and header tooling as a
// tool provider.
//
// Modules:
//   - requests: GET and POST with JSON or form bodies
//   - config: default headers, timeout and authentication
//   - config (resilience): retry and rate limit settings
//   - utils: URL building, parsing, path joining, query coding, escaping
//
// Example Usage:
//
//	p := http.NewProvider(client.NewDefault())
//	result, err := p.Execute(ctx, "http.buildURL", map[string]interface{}{
//		"base":   "https://api.example.com",
//		"path":   "v1/items",
//		"params": map[string]interface{}{"q": "go"},
//	}, nil)
package http
