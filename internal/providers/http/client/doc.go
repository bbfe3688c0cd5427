// Package client is the transport adapter between the URL and header models
// and the network.
//
// Built on go-resty/resty over a hashicorp/go-retryablehttp transport:
//   - Requests are built from url.URL and headers.Headers and answered with
//     a headers.Headers parsed from the response
//   - Automatic retries with exponential backoff
//   - Client-side rate limiting
//   - An X-Request-Id on every request
//   - gzip, deflate and zstd response decoding
//   - Prometheus metrics and zap logging with credential headers redacted
//
// Example Usage:
//
//	c := client.New(cfg.Client, client.WithLogger(logger))
//	u, _ := url.Parse("https://example.com/search?q=go")
//	resp, err := c.Do(ctx, &client.Request{Method: "GET", URL: u})
package client
