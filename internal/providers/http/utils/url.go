package utils

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/arraymap"
	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
	"github.com/GriffinCanCode/httpdata/internal/data/record"
	"github.com/GriffinCanCode/httpdata/internal/escape"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/url"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
)

// URLOps handles URL manipulation
type URLOps struct {
	*client.HTTPOps
}

// GetTools returns URL tool definitions
func (u *URLOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "http.buildURL",
			Name:        "Build URL",
			Description: "Construct URL from components with proper encoding",
			Parameters: []types.Parameter{
				{Name: "base", Type: "string", Description: "Base URL", Required: true},
				{Name: "path", Type: "string", Description: "Encoded path to append", Required: false},
				{Name: "params", Type: "object", Description: "Query parameters (arrays repeat the name)", Required: false},
				{Name: "fragment", Type: "string", Description: "URL fragment (#)", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "http.parseURL",
			Name:        "Parse URL",
			Description: "Parse URL into components",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "URL to parse", Required: true},
				{Name: "verbatim", Type: "boolean", Description: "Keep components undecoded", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "http.joinPath",
			Name:        "Join Path",
			Description: "Join URL path segments correctly",
			Parameters: []types.Parameter{
				{Name: "base", Type: "string", Description: "Base URL or path", Required: true},
				{Name: "segments", Type: "array", Description: "Path segments to join", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "http.encodeQuery",
			Name:        "Encode Query",
			Description: "Encode object as URL query string in name order",
			Parameters: []types.Parameter{
				{Name: "params", Type: "object", Description: "Parameters to encode", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "http.decodeQuery",
			Name:        "Decode Query",
			Description: "Decode query string to object",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Query string to decode", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "http.escape",
			Name:        "Escape",
			Description: "Percent-encode or decode text for a URL component",
			Parameters: []types.Parameter{
				{Name: "text", Type: "string", Description: "Text to transform", Required: true},
				{Name: "mode", Type: "string", Description: "form|uri|path|path-reserved|userinfo|query|fragment (default: form)", Required: false},
				{Name: "decode", Type: "boolean", Description: "Decode instead of encode", Required: false},
			},
			Returns: "string",
		},
	}
}

var escapers = map[string]func(string) string{
	"form":          escape.EscapeURI,
	"uri":           escape.EscapeURIConformant,
	"path":          escape.EscapeURIPath,
	"path-reserved": escape.EscapeURIPathWithoutReserved,
	"userinfo":      escape.EscapeURIUserInfo,
	"query":         escape.EscapeURIQuery,
	"fragment":      escape.EscapeURIFragment,
}

// paramValues flattens a tool parameter into its string values.
func paramValues(v interface{}) []string {
	if arr, ok := v.([]interface{}); ok {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

// sortedParams copies a parameter object into an ordered map, names sorted.
func sortedParams(params map[string]interface{}) *arraymap.Map[string, any] {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	m := arraymap.New[string, any](len(names))
	for _, name := range names {
		if params[name] == nil {
			continue
		}
		m.Add(name, paramValues(params[name]))
	}
	return m
}

// queryMap renders record entries with single values unwrapped.
func queryMap(rec *record.Record) map[string]interface{} {
	out := make(map[string]interface{})
	for name, v := range rec.All() {
		var values []string
		for _, e := range coerce.Values(v) {
			if s, ok := coerce.Format(e); ok {
				values = append(values, s)
			}
		}
		if len(values) == 1 {
			out[name] = values[0]
		} else {
			out[name] = values
		}
	}
	return out
}

// BuildURL constructs URL from components with validation
func (u *URLOps) BuildURL(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	base, err := client.GetString(params, "base", true)
	if err != nil {
		return client.Failure(err.Error())
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return client.Failure(fmt.Sprintf("invalid base URL: %v", err))
	}

	if path, _ := client.GetString(params, "path", false); path != "" {
		if err := joinRawPath(parsed, path); err != nil {
			return client.Failure(fmt.Sprintf("invalid path: %v", err))
		}
	}

	for name, values := range sortedParams(client.GetMap(params, "params")).All() {
		if err := parsed.Set(name, values); err != nil {
			return client.Failure(err.Error())
		}
	}

	if fragment, _ := client.GetString(params, "fragment", false); fragment != "" {
		parsed.SetFragment(strings.TrimPrefix(fragment, "#"))
	}

	built, err := parsed.Build()
	if err != nil {
		return client.Failure(err.Error())
	}
	return client.Success(map[string]interface{}{
		"url": built,
	})
}

// ParseURL parses URL into structured components
func (u *URLOps) ParseURL(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	urlStr, err := client.GetString(params, "url", true)
	if err != nil {
		return client.Failure(err.Error())
	}

	parse := url.Parse
	if client.GetBool(params, "verbatim", false) {
		parse = url.ParseVerbatim
	}
	parsed, err := parse(urlStr)
	if err != nil {
		return client.Failure(fmt.Sprintf("invalid URL: %v", err))
	}

	result := map[string]interface{}{
		"scheme": parsed.Scheme(),
		"host":   parsed.Host(),
		"query":  queryMap(&parsed.Record),
		"raw":    urlStr,
	}
	if built, err := parsed.Build(); err == nil {
		result["normalized"] = built
	}
	if ascii, err := parsed.ASCIIHost(); err == nil && ascii != parsed.Host() {
		result["ascii_host"] = ascii
	}
	if port := parsed.Port(); port != -1 {
		result["port"] = port
	}
	if path, ok := parsed.RawPath(); ok {
		result["path"] = path
		result["path_parts"] = parsed.PathParts()
	}
	if fragment, ok := parsed.Fragment(); ok {
		result["fragment"] = fragment
	}
	// Credentials stay out of results
	if _, ok := parsed.UserInfo(); ok {
		result["has_user_info"] = true
	}

	return client.Success(result)
}

// joinRawPath appends an encoded path as new segments of u's path.
func joinRawPath(u *url.URL, path string) error {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	parts := u.PathParts()
	if len(parts) == 0 || parts[len(parts)-1] != "" {
		path = "/" + path
	}
	return u.AppendRawPath(path)
}

// JoinPath joins URL path segments properly
func (u *URLOps) JoinPath(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	base, err := client.GetString(params, "base", true)
	if err != nil {
		return client.Failure(err.Error())
	}

	segments := client.GetArray(params, "segments")
	if len(segments) == 0 {
		return client.Failure("segments array required")
	}

	// A base without a scheme is a bare path
	full := strings.Contains(base, "://")
	var target *url.URL
	if full {
		if target, err = url.Parse(base); err != nil {
			return client.Failure(fmt.Sprintf("invalid base: %v", err))
		}
	} else {
		target = url.New()
		if err := target.SetRawPath(base); err != nil {
			return client.Failure(fmt.Sprintf("invalid base: %v", err))
		}
	}

	for _, seg := range segments {
		if err := joinRawPath(target, strings.TrimSuffix(fmt.Sprint(seg), "/")); err != nil {
			return client.Failure(fmt.Sprintf("invalid segment: %v", err))
		}
	}

	var result string
	if full {
		result, err = target.Build()
		if err != nil {
			return client.Failure(err.Error())
		}
	} else {
		result, _ = target.RawPath()
	}

	return client.Success(map[string]interface{}{
		"path": result,
	})
}

// EncodeQuery encodes params as query string
func (u *URLOps) EncodeQuery(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	queryParams := client.GetMap(params, "params")
	if queryParams == nil {
		return client.Failure("params object required")
	}

	encoded := url.EncodeParams(sortedParams(queryParams).All(), escape.EscapeURI, escape.EscapeURI)

	return client.Success(map[string]interface{}{
		"query":  encoded,
		"length": len(encoded),
	})
}

// DecodeQuery decodes query string to object
func (u *URLOps) DecodeQuery(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	queryStr, err := client.GetString(params, "query", true)
	if err != nil {
		return client.Failure(err.Error())
	}

	rec := record.New(catalog.CaseSensitive)
	if err := url.ParseQuery(strings.TrimPrefix(queryStr, "?"), rec, true); err != nil {
		return client.Failure(fmt.Sprintf("invalid query string: %v", err))
	}

	result := queryMap(rec)
	return client.Success(map[string]interface{}{
		"params": result,
		"count":  len(result),
	})
}

// Escape percent-encodes or decodes text for one URL component
func (u *URLOps) Escape(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	text, err := client.GetString(params, "text", false)
	if err != nil {
		return client.Failure(err.Error())
	}
	mode, _ := client.GetString(params, "mode", false)
	if mode == "" {
		mode = "form"
	}

	if client.GetBool(params, "decode", false) {
		decode := escape.DecodeURIPath
		if mode == "form" {
			decode = escape.DecodeURI
		}
		decoded, err := decode(text)
		if err != nil {
			return client.Failure(err.Error())
		}
		return client.Success(map[string]interface{}{"text": decoded, "mode": mode})
	}

	esc, ok := escapers[mode]
	if !ok {
		return client.Failure(fmt.Sprintf("invalid mode: %s", mode))
	}
	return client.Success(map[string]interface{}{"text": esc(text), "mode": mode})
}
