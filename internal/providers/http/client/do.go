package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GriffinCanCode/httpdata/internal/providers/http/content"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/url"
	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Request is one outbound call. Headers may be nil.
type Request struct {
	Method  string
	URL     *url.URL
	Headers *headers.Headers
	Body    []byte
}

// Response is a fully read response. Body is decoded according to its
// Content-Encoding when the encoding is gzip, deflate or zstd.
type Response struct {
	StatusCode  int
	Status      string
	Headers     *headers.Headers
	Body        []byte
	ContentType string
	RequestID   string
	Duration    time.Duration
}

// Do sends req and reads the whole response. The URL is built from the
// URL model and header lines come from the defaults overlaid with the
// request headers; an X-Request-Id is added when none is set.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := req.URL.Build()
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}

	defaults, err := c.DefaultLines()
	if err != nil {
		return nil, fmt.Errorf("default headers: %w", err)
	}
	var own []headers.Line
	if req.Headers != nil {
		if own, err = req.Headers.ToWireLines(); err != nil {
			return nil, fmt.Errorf("request headers: %w", err)
		}
	}
	lines := mergeLines(defaults, own)
	id := requestID(lines)
	if id == "" {
		id = uuid.NewString()
		lines = append(lines, headers.Line{Name: RequestIDHeader, Value: id})
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = "GET"
	}
	host := req.URL.Host()

	c.Mu.RLock()
	r := c.Resty.R().SetContext(ctx).SetDoNotParseResponse(true)
	c.Mu.RUnlock()
	for _, l := range lines {
		r.Header[l.Name] = append(r.Header[l.Name], l.Value)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	c.metrics.RecordHeaderLines("out", len(lines))
	c.log.Debug("http request",
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", id),
		zap.Array("headers", lineArray{lines: lines, verbose: c.verbose}))

	start := time.Now()
	resp, err := r.Execute(method, target)
	if err != nil {
		c.metrics.RecordError(method, host, errorType(err))
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	out := &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Headers:    headers.New(),
		RequestID:  id,
	}
	if err := out.Headers.FromHTTP(resp.Header()); err != nil {
		c.log.Warn("response header values kept as text",
			zap.String("request_id", id), zap.Error(err))
	}

	encoded, err := io.ReadAll(raw)
	if err != nil {
		c.metrics.RecordError(method, host, errorType(err))
		return nil, fmt.Errorf("read response body: %w", err)
	}
	out.Body = c.decode(out.Headers.ContentEncoding(), encoded, id)
	out.ContentType = content.TypeOf(out.Headers.ContentType(), out.Body)
	out.Duration = time.Since(start)

	inLines, _ := out.Headers.ToWireLines()
	c.metrics.RecordHeaderLines("in", len(inLines))
	c.metrics.RecordRequest(method, host, out.StatusCode, out.Duration, int64(len(out.Body)))
	c.log.Debug("http response",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", out.StatusCode),
		zap.Duration("duration", out.Duration),
		zap.String("request_id", id),
		zap.Array("headers", out.Headers.LogView(c.verbose)))
	return out, nil
}

// decode undoes the Content-Encoding of a body. Unknown encodings and
// corrupt bodies are returned as received.
func (c *Client) decode(encoding string, body []byte, id string) []byte {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if len(body) == 0 || encoding == "" || encoding == "identity" {
		return body
	}

	var (
		r   io.ReadCloser
		err error
	)
	switch encoding {
	case "gzip", "x-gzip":
		r, err = gzip.NewReader(bytes.NewReader(body))
	case "deflate":
		r = flate.NewReader(bytes.NewReader(body))
	case "zstd":
		var d *zstd.Decoder
		if d, err = zstd.NewReader(bytes.NewReader(body)); err == nil {
			r = d.IOReadCloser()
		}
	default:
		c.log.Warn("unsupported content encoding",
			zap.String("encoding", encoding), zap.String("request_id", id))
		return body
	}
	if err != nil {
		c.log.Warn("response body not decoded",
			zap.String("encoding", encoding), zap.String("request_id", id), zap.Error(err))
		return body
	}
	defer r.Close()

	decoded, err := io.ReadAll(r)
	if err != nil {
		c.log.Warn("response body not decoded",
			zap.String("encoding", encoding), zap.String("request_id", id), zap.Error(err))
		return body
	}
	return decoded
}

type lineArray struct {
	lines   []headers.Line
	verbose bool
}

func (a lineArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, l := range a.lines {
		enc.AppendString(l.Name + ": " + headers.Redact(l.Name, l.Value, a.verbose))
	}
	return nil
}
