package requests

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/GriffinCanCode/httpdata/internal/data/arraymap"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/content"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/url"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
	"github.com/bytedance/sonic"
)

// RequestsOps handles HTTP request methods
type RequestsOps struct {
	*client.HTTPOps
}

// GetTools returns HTTP request tool definitions
func (r *RequestsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "http.get",
			Name:        "HTTP GET",
			Description: "Fetch data from URL with optional headers and params",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "params", Type: "object", Description: "Query parameters (arrays repeat the name)", Required: false},
				{Name: "headers", Type: "object", Description: "HTTP headers (string or array of strings)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.post",
			Name:        "HTTP POST",
			Description: "Send data to URL with optional headers",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Request URL", Required: true},
				{Name: "data", Type: "object", Description: "Request body", Required: true},
				{Name: "headers", Type: "object", Description: "HTTP headers (string or array of strings)", Required: false},
				{Name: "json", Type: "boolean", Description: "Send as JSON, otherwise as a form (default: true)", Required: false},
			},
			Returns: "object",
		},
	}
}

// Get executes HTTP GET request
func (r *RequestsOps) Get(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	target, h, err := prepare(params)
	if err != nil {
		return client.Failure(err.Error())
	}

	for name, v := range ordered(client.GetMap(params, "params")).All() {
		if v == nil {
			continue
		}
		if err := target.Set(name, queryValues(v)); err != nil {
			return client.Failure(err.Error())
		}
	}

	return r.send(ctx, &client.Request{Method: http.MethodGet, URL: target, Headers: h}, appCtx)
}

// Post executes HTTP POST request with a JSON or form body
func (r *RequestsOps) Post(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	target, h, err := prepare(params)
	if err != nil {
		return client.Failure(err.Error())
	}

	data := client.GetMap(params, "data")
	if data == nil {
		return client.Failure("data object required")
	}

	var body []byte
	if client.GetBool(params, "json", true) {
		if body, err = content.JSON(ordered(data)); err != nil {
			return client.Failure(fmt.Sprintf("failed to encode JSON: %v", err))
		}
		if h.ContentType() == "" {
			h.SetContentType(content.JSONType)
		}
	} else {
		body = content.URLEncoded(ordered(data))
		if h.ContentType() == "" {
			h.SetContentType(content.FormType)
		}
	}

	return r.send(ctx, &client.Request{Method: http.MethodPost, URL: target, Headers: h, Body: body}, appCtx)
}

func prepare(params map[string]interface{}) (*url.URL, *headers.Headers, error) {
	urlStr, err := client.GetString(params, "url", true)
	if err != nil {
		return nil, nil, err
	}
	target, err := url.Parse(urlStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid URL: %w", err)
	}
	h, err := client.HeadersFromParam(params, "headers")
	if err != nil {
		return nil, nil, err
	}
	return target, h, nil
}

// queryValues flattens a parameter into the strings sent for its name.
func queryValues(v interface{}) []string {
	if arr, ok := v.([]interface{}); ok {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

// ordered copies an object into a map whose entries follow name order.
func ordered(obj map[string]interface{}) *arraymap.Map[string, any] {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	slices.Sort(names)

	m := arraymap.New[string, any](len(names))
	for _, name := range names {
		m.Add(name, obj[name])
	}
	return m
}

func (r *RequestsOps) send(ctx context.Context, req *client.Request, appCtx *types.Context) (*types.Result, error) {
	resp, err := r.Client.Do(ctx, req)
	if err != nil {
		return client.Failure(fmt.Sprintf("request failed: %v", err))
	}

	verbose := appCtx != nil && appCtx.VerboseHeaders
	result := client.ResponseToMap(resp, verbose)
	if content.IsJSON(resp.ContentType) && len(resp.Body) > 0 {
		var parsed interface{}
		if err := sonic.Unmarshal(resp.Body, &parsed); err == nil {
			result["json"] = parsed
		}
	}
	return client.Success(result)
}
